package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// VerificationsTotal counts verification runs by outcome
	// (eligible, ineligible, error).
	VerificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "certportal_verifications_total",
		Help: "Verification runs by outcome",
	}, []string{"outcome"})

	// OCRExtractionsTotal counts gateway extractions by mode and result.
	OCRExtractionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "certportal_ocr_extractions_total",
		Help: "OCR gateway extractions by mode and result",
	}, []string{"mode", "result"})

	// OCRCacheHitsTotal counts extractions served from the cache.
	OCRCacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "certportal_ocr_cache_hits_total",
		Help: "OCR extractions served from cache",
	})

	// CrossCheckFailuresTotal counts advisory AI cross-checks that failed.
	CrossCheckFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "certportal_crosscheck_failures_total",
		Help: "AI cross-check calls that failed",
	})
)
