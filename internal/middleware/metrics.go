package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RateLimitRejections counts requests rejected by the rate limiter, per resource.
	RateLimitRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pitchside_ratelimit_rejections_total",
		Help: "Number of requests rejected by the rate limiter.",
	}, []string{"resource"})

	// PictureUploadFailures counts picture pipeline failures per stage (resize, backup).
	PictureUploadFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pitchside_picture_failures_total",
		Help: "Number of picture pipeline failures by stage.",
	}, []string{"stage"})
)

// InitMetrics creates the Prometheus HTTP middleware for the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}
