// internal/tools/health.go
package tools

import (
	"context"
	"time"
)

func (h *Handlers) healthCheckTool() *Tool {
	return &Tool{
		Name:        "health_check",
		Description: "Report server liveness and build version.",
		InputSchema: map[string]interface{}{
			"type":       "object",
			"properties": map[string]interface{}{},
		},
		Handler: h.handleHealthCheck,
	}
}

func (h *Handlers) handleHealthCheck(_ context.Context, _ map[string]interface{}) (interface{}, error) {
	return map[string]interface{}{
		"status":    "healthy",
		"version":   h.version,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}, nil
}
