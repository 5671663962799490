package client

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"regexp"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
)

var aadhaarRunRe = regexp.MustCompile(`\b\d{4}\s?\d{4}\s?\d{4}\b`)

// QRClient decodes the secure QR printed on Aadhaar letters. It is a cheap
// fast path for digits-mode extraction; any failure just means the caller
// falls back to OCR.
type QRClient struct{}

func NewQRClient() *QRClient {
	return &QRClient{}
}

// DecodeAadhaarDigits tries to read a 12-digit identifier out of a QR code
// in the given image file. Returns "" when no QR or no identifier is found.
func (q *QRClient) DecodeAadhaarDigits(filePath string) (string, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", fmt.Errorf("failed to build bitmap: %w", err)
	}

	reader := qrcode.NewQRCodeReader()
	result, err := reader.Decode(bmp, nil)
	if err != nil {
		return "", fmt.Errorf("no QR code found: %w", err)
	}

	run := aadhaarRunRe.FindString(result.GetText())
	return run, nil
}
