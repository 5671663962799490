package service

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/certportal/verification/client"
	"github.com/certportal/verification/metrics"
	"github.com/certportal/verification/utils"
)

// Extractor is what the verification engine sees of OCR: a mode-parameterized,
// possibly slow, possibly failing call returning a bare string.
type Extractor interface {
	Extract(ctx context.Context, filePath string, mode client.Mode) (string, error)
}

// TextCache stores shaped extraction results keyed by file path and mode, so
// re-verifying an unchanged application does not re-spawn OCR.
type TextCache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string)
}

var (
	digitRunRe = regexp.MustCompile(`\b\d{4}[\s-]?\d{4}[\s-]?\d{4}\b`)
	panTokenRe = regexp.MustCompile(`\b[A-Z]{5}[0-9]{4}[A-Z]\b`)
	alnumRe    = regexp.MustCompile(`\b[A-Za-z0-9]{6,}\b`)
)

// OCRGateway runs the extraction fallback chain: cached result, QR fast path
// for digits, embedded PDF text, the OCR subprocess, then Tesseract. The
// chain mirrors how scanned government documents actually fail: digital PDFs
// carry text, photographed letters need OCR, and the QR on Aadhaar letters
// beats both when it decodes.
type OCRGateway struct {
	primary   client.OCRClient
	tesseract *client.TesseractClient
	qr        *client.QRClient
	pdfs      PDFProcessor
	cache     TextCache
	log       *zap.SugaredLogger
}

func NewOCRGateway(
	primary client.OCRClient,
	tesseract *client.TesseractClient,
	qr *client.QRClient,
	pdfs PDFProcessor,
	cache TextCache,
	log *zap.SugaredLogger,
) *OCRGateway {
	return &OCRGateway{
		primary:   primary,
		tesseract: tesseract,
		qr:        qr,
		pdfs:      pdfs,
		cache:     cache,
		log:       log,
	}
}

// Extract returns text shaped for the requested mode. Digits mode requires a
// 12-digit run; absence is an error, not an empty success.
func (g *OCRGateway) Extract(ctx context.Context, filePath string, mode client.Mode) (string, error) {
	key := string(mode) + ":" + filePath
	if g.cache != nil {
		if text, ok := g.cache.Get(ctx, key); ok {
			metrics.OCRCacheHitsTotal.Inc()
			return text, nil
		}
	}

	raw, err := g.rawText(ctx, filePath, mode)
	if err != nil {
		metrics.OCRExtractionsTotal.WithLabelValues(string(mode), "failure").Inc()
		return "", err
	}

	shaped, err := shapeOutput(raw, filePath, mode)
	if err != nil {
		metrics.OCRExtractionsTotal.WithLabelValues(string(mode), "failure").Inc()
		return "", err
	}

	metrics.OCRExtractionsTotal.WithLabelValues(string(mode), "success").Inc()
	if g.cache != nil {
		g.cache.Set(ctx, key, shaped)
	}
	return shaped, nil
}

func (g *OCRGateway) rawText(ctx context.Context, filePath string, mode client.Mode) (string, error) {
	// Aadhaar letters carry the number in their QR; decoding it skips OCR
	// entirely. Any failure falls through silently.
	if mode == client.ModeDigits && g.qr != nil && isImageFile(filePath) {
		if run, err := g.qr.DecodeAadhaarDigits(filePath); err == nil && run != "" {
			g.log.Debugw("aadhaar digits decoded from QR", "file", filePath)
			return run, nil
		}
	}

	if strings.HasSuffix(strings.ToLower(filePath), ".pdf") {
		return g.pdfText(ctx, filePath, mode)
	}

	text, err := g.primary.ExtractText(ctx, filePath, mode)
	if err == nil && len(strings.TrimSpace(text)) > 5 {
		return text, nil
	}
	if err != nil {
		g.log.Warnw("ocr subprocess failed, falling back to tesseract", "file", filePath, "error", err)
	}

	if g.tesseract == nil {
		if err != nil {
			return "", err
		}
		return "", &client.OCRError{Path: filePath, Mode: mode, Err: fmt.Errorf("no usable text extracted")}
	}

	text, tessErr := g.tesseract.ExtractTextFromFile(filePath)
	if tessErr != nil || strings.TrimSpace(text) == "" {
		return "", &client.OCRError{Path: filePath, Mode: mode, Err: fmt.Errorf("all extractors failed: %v", tessErr)}
	}
	return text, nil
}

// pdfText tries embedded text first; scanned PDFs yield nothing useful there,
// so their page images go through the OCR chain one by one.
func (g *OCRGateway) pdfText(ctx context.Context, filePath string, mode client.Mode) (string, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", &client.OCRError{Path: filePath, Mode: mode, Err: fmt.Errorf("failed to read pdf: %w", err)}
	}

	text, err := g.pdfs.ExtractText(data)
	if err == nil && len(strings.TrimSpace(text)) >= 20 {
		return text, nil
	}

	g.log.Debugw("pdf has little embedded text, running image OCR", "file", filePath)

	images, imgErr := g.pdfs.ExtractImages(data)
	if imgErr != nil || len(images) == 0 {
		return "", &client.OCRError{Path: filePath, Mode: mode, Err: fmt.Errorf("no embedded text and image extraction failed: %v", imgErr)}
	}

	var combined strings.Builder
	for _, img := range images {
		tmp, err := saveImageToTempFile(img)
		if err != nil {
			continue
		}

		pageText, ocrErr := g.primary.ExtractText(ctx, tmp, mode)
		if ocrErr != nil || len(strings.TrimSpace(pageText)) < 5 {
			if g.tesseract != nil {
				pageText, _, ocrErr = g.tesseract.ExtractTextAndConfidence(tmp)
			}
		}
		os.Remove(tmp)
		if ocrErr != nil {
			continue
		}

		combined.WriteString(pageText)
		combined.WriteString("\n")
	}

	if strings.TrimSpace(combined.String()) == "" {
		return "", &client.OCRError{Path: filePath, Mode: mode, Err: fmt.Errorf("scanned pdf OCR produced no text")}
	}
	return combined.String(), nil
}

// shapeOutput reduces raw extracted text to the form the mode promises.
func shapeOutput(raw string, filePath string, mode client.Mode) (string, error) {
	switch mode {
	case client.ModeDigits:
		run := digitRunRe.FindString(raw)
		if run == "" {
			// OCR sometimes drops the grouping spaces entirely
			digits := utils.ExtractDigits(raw)
			if len(digits) == 12 {
				return digits, nil
			}
			return "", &client.OCRError{Path: filePath, Mode: mode, Err: fmt.Errorf("no 12-digit run in output")}
		}
		digits := utils.ExtractDigits(run)
		if len(digits) != 12 {
			return "", &client.OCRError{Path: filePath, Mode: mode, Err: fmt.Errorf("digit run %q is not 12 digits", run)}
		}
		return digits, nil

	case client.ModeAlphanumeric:
		if tok := panTokenRe.FindString(strings.ToUpper(raw)); tok != "" {
			return tok, nil
		}
		if tok := alnumRe.FindString(raw); tok != "" {
			return strings.ToUpper(tok), nil
		}
		return "", &client.OCRError{Path: filePath, Mode: mode, Err: fmt.Errorf("no alphanumeric token in output")}

	default:
		if strings.TrimSpace(raw) == "" {
			return "", &client.OCRError{Path: filePath, Mode: mode, Err: fmt.Errorf("empty text")}
		}
		return raw, nil
	}
}

func isImageFile(filePath string) bool {
	lower := strings.ToLower(filePath)
	return strings.HasSuffix(lower, ".png") || strings.HasSuffix(lower, ".jpg") || strings.HasSuffix(lower, ".jpeg")
}

// saveImageToTempFile saves an image.Image to a temporary PNG file.
func saveImageToTempFile(img image.Image) (string, error) {
	tempFile, err := os.CreateTemp("", "ocr-img-*.png")
	if err != nil {
		return "", fmt.Errorf("failed to create temp image file: %w", err)
	}
	defer tempFile.Close()

	if err := png.Encode(tempFile, img); err != nil {
		os.Remove(tempFile.Name())
		return "", fmt.Errorf("failed to encode image to PNG: %w", err)
	}

	return tempFile.Name(), nil
}
