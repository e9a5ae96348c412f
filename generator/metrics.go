package generator

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	opPlan      = "plan"
	opImage     = "image"
	opAdherence = "adherence"
)

var (
	modelRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mockups_model_requests_total",
			Help: "Total number of requests to the model APIs.",
		},
		[]string{"operation", "model", "status"},
	)
	modelRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mockups_model_request_duration_seconds",
			Help:    "Histogram of model API request durations.",
			Buckets: []float64{0.25, 0.5, 1, 2.5, 5, 10, 20, 40, 80, 160},
		},
		[]string{"operation", "model"},
	)
	imagesGeneratedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mockups_images_generated_total",
			Help: "Total number of mockup images produced.",
		},
		[]string{"mode"},
	)
	plannerPromptTokens = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "mockups_planner_prompt_tokens",
			Help:    "Estimated token count of planner prompts.",
			Buckets: prometheus.LinearBuckets(500, 500, 10), // 500 .. 5000
		},
	)
)

func observeModelCall(operation, model string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	modelRequestsTotal.With(prometheus.Labels{"operation": operation, "model": model, "status": status}).Inc()
	modelRequestDuration.With(prometheus.Labels{"operation": operation, "model": model}).Observe(time.Since(start).Seconds())
}
