package client

import (
	"fmt"

	"github.com/otiai10/gosseract/v2"
)

// TesseractClient is the in-process fallback used when the OCR subprocess
// fails or returns nothing usable.
type TesseractClient struct {
	dataPath string
}

func NewTesseractClient(dataPath string) *TesseractClient {
	return &TesseractClient{
		dataPath: dataPath,
	}
}

// ExtractTextFromFile extracts raw text from an image file using Tesseract.
func (tc *TesseractClient) ExtractTextFromFile(filePath string) (string, error) {
	c := gosseract.NewClient()
	defer c.Close()

	c.SetTessdataPrefix(tc.dataPath)

	if err := c.SetLanguage("eng"); err != nil {
		return "", fmt.Errorf("failed to set language: %w", err)
	}
	if err := c.SetImage(filePath); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := c.Text()
	if err != nil {
		return "", fmt.Errorf("failed to extract text: %w", err)
	}
	return text, nil
}

// ExtractTextAndConfidence also reports the mean word confidence, used to
// decide whether a fallback pass produced anything trustworthy.
func (tc *TesseractClient) ExtractTextAndConfidence(filePath string) (string, float64, error) {
	c := gosseract.NewClient()
	defer c.Close()

	c.SetTessdataPrefix(tc.dataPath)
	if err := c.SetLanguage("eng"); err != nil {
		return "", 0, fmt.Errorf("failed to set language: %w", err)
	}
	if err := c.SetImage(filePath); err != nil {
		return "", 0, fmt.Errorf("failed to set image: %w", err)
	}

	text, err := c.Text()
	if err != nil {
		return "", 0, fmt.Errorf("failed to extract text: %w", err)
	}

	boxes, err := c.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return text, 0, nil
	}

	var totalConf float64
	var count int
	for _, box := range boxes {
		totalConf += box.Confidence
		count++
	}

	avgConf := 0.0
	if count > 0 {
		avgConf = totalConf / float64(count)
	}
	return text, avgConf, nil
}
