package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	ServerPort    string
	MongoURI      string
	MongoDatabase string
	RedisAddr     string
	RedisDB       int

	PythonBin      string
	OCRScriptPath  string
	TessdataPrefix string
	OCRTimeout     time.Duration
	CacheTTL       time.Duration

	GroqAPIKey  string
	GroqModel   string
	GroqBaseURL string
	GroqTimeout time.Duration

	LogLevel string
}

// Load reads configuration from the environment, with a .env file as an
// optional local override. Missing keys fall back to defaults.
func Load() *Config {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DATABASE", "certportal")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("PYTHON_BIN", "python3")
	v.SetDefault("OCR_SCRIPT_PATH", "./scripts/ocr_extract.py")
	v.SetDefault("TESSDATA_PREFIX", "/usr/share/tesseract-ocr/5/tessdata/")
	v.SetDefault("OCR_TIMEOUT_SECONDS", 45)
	v.SetDefault("OCR_CACHE_TTL_MINUTES", 60)
	v.SetDefault("GROQ_MODEL", "llama-3.3-70b-versatile")
	v.SetDefault("GROQ_BASE_URL", "https://api.groq.com/openai/v1")
	v.SetDefault("GROQ_TIMEOUT_SECONDS", 30)
	v.SetDefault("LOG_LEVEL", "info")

	return &Config{
		ServerPort:     v.GetString("SERVER_PORT"),
		MongoURI:       v.GetString("MONGO_URI"),
		MongoDatabase:  v.GetString("MONGO_DATABASE"),
		RedisAddr:      v.GetString("REDIS_ADDR"),
		RedisDB:        v.GetInt("REDIS_DB"),
		PythonBin:      v.GetString("PYTHON_BIN"),
		OCRScriptPath:  v.GetString("OCR_SCRIPT_PATH"),
		TessdataPrefix: v.GetString("TESSDATA_PREFIX"),
		OCRTimeout:     time.Duration(v.GetInt("OCR_TIMEOUT_SECONDS")) * time.Second,
		CacheTTL:       time.Duration(v.GetInt("OCR_CACHE_TTL_MINUTES")) * time.Minute,
		GroqAPIKey:     v.GetString("GROQ_API_KEY"),
		GroqModel:      v.GetString("GROQ_MODEL"),
		GroqBaseURL:    v.GetString("GROQ_BASE_URL"),
		GroqTimeout:    time.Duration(v.GetInt("GROQ_TIMEOUT_SECONDS")) * time.Second,
		LogLevel:       v.GetString("LOG_LEVEL"),
	}
}
