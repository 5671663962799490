package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Mode selects what the OCR process is asked to extract.
type Mode string

const (
	ModeDigits       Mode = "digits"
	ModeFullText     Mode = "fullText"
	ModeAlphanumeric Mode = "alphanumeric"
)

// OCRError is the typed failure for any extraction attempt: non-zero exit,
// empty output, timeout, or output that does not match the requested mode.
type OCRError struct {
	Path string
	Mode Mode
	Err  error
}

func (e *OCRError) Error() string {
	return fmt.Sprintf("ocr %s extraction failed for %s: %v", e.Mode, e.Path, e.Err)
}

func (e *OCRError) Unwrap() error { return e.Err }

// OCRClient is the narrow interface the gateway uses for raw text extraction.
type OCRClient interface {
	ExtractText(ctx context.Context, filePath string, mode Mode) (string, error)
}

// PythonOCRClient invokes the external OCR script as a subprocess. Arguments
// are passed as an argument vector, never interpolated into a shell string.
// The script prints a single JSON object: {"status": "...", "text": "..."}.
type PythonOCRClient struct {
	pythonBin  string
	scriptPath string
	timeout    time.Duration
	log        *zap.SugaredLogger
}

func NewPythonOCRClient(pythonBin, scriptPath string, timeout time.Duration, log *zap.SugaredLogger) *PythonOCRClient {
	return &PythonOCRClient{
		pythonBin:  pythonBin,
		scriptPath: scriptPath,
		timeout:    timeout,
		log:        log,
	}
}

type ocrScriptOutput struct {
	Status string `json:"status"`
	Text   string `json:"text"`
}

func (c *PythonOCRClient) ExtractText(ctx context.Context, filePath string, mode Mode) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, c.pythonBin, c.scriptPath,
		"--file", filePath,
		"--mode", string(mode),
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", &OCRError{Path: filePath, Mode: mode, Err: fmt.Errorf("timed out after %s", c.timeout)}
		}
		return "", &OCRError{Path: filePath, Mode: mode, Err: fmt.Errorf("process failed: %v, stderr: %s", err, strings.TrimSpace(stderr.String()))}
	}

	var out ocrScriptOutput
	if err := json.Unmarshal(stdout.Bytes(), &out); err != nil {
		return "", &OCRError{Path: filePath, Mode: mode, Err: fmt.Errorf("invalid script output: %w", err)}
	}
	if out.Status != "success" {
		return "", &OCRError{Path: filePath, Mode: mode, Err: fmt.Errorf("script status %q", out.Status)}
	}
	if strings.TrimSpace(out.Text) == "" {
		return "", &OCRError{Path: filePath, Mode: mode, Err: fmt.Errorf("no text extracted")}
	}

	c.log.Debugw("ocr subprocess extracted text", "file", filePath, "mode", mode, "chars", len(out.Text))
	return out.Text, nil
}
