// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ToolCallsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tool_calls_completed_total",
			Help: "Total number of tool calls completed successfully",
		},
		[]string{"tool"},
	)

	ToolCallsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tool_calls_failed_total",
			Help: "Total number of tool calls that returned an error",
		},
		[]string{"tool", "error_code"},
	)

	ToolCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "tool_call_duration_seconds",
			Help: "Duration of tool call processing in seconds",
		},
		[]string{"tool"},
	)

	MatrixAPIRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matrix_api_requests_total",
			Help: "Total number of requests sent to the Matrix Booking API",
		},
		[]string{"operation", "status"},
	)
)
