// internal/tools/server.go
package tools

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/chrisns/matrixbookingmcp-sub000/internal/common/errors"
	"github.com/chrisns/matrixbookingmcp-sub000/internal/common/logger"
	"github.com/chrisns/matrixbookingmcp-sub000/internal/common/metrics"
	"github.com/chrisns/matrixbookingmcp-sub000/internal/common/observability"
	"github.com/chrisns/matrixbookingmcp-sub000/internal/common/validation"
)

// Server exposes the registry over HTTP: GET /mcp/tools for discovery and
// POST /mcp/tools/execute for execution.
type Server struct {
	registry  *Registry
	responder *apperrors.Responder
	obs       *observability.Observability
	logger    logger.Logger
}

func NewServer(registry *Registry, obs *observability.Observability, log logger.Logger) *Server {
	return &Server{
		registry:  registry,
		responder: apperrors.NewResponder(log),
		obs:       obs,
		logger:    log.WithFields(map[string]interface{}{"component": "tool-server"}),
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.URL.Path == "/mcp/tools" && r.Method == http.MethodGet {
		s.handleToolDiscovery(w, r)
		return
	}

	if r.URL.Path == "/mcp/tools/execute" && r.Method == http.MethodPost {
		s.handleToolExecution(w, r)
		return
	}

	http.Error(w, `{"error":"Not found"}`, http.StatusNotFound)
}

func (s *Server) handleToolDiscovery(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"tools": s.registry.List(),
	})
}

type executeRequest struct {
	ToolName  string                 `json:"tool_name"`
	Arguments map[string]interface{} `json:"arguments"`
}

func (s *Server) handleToolExecution(w http.ResponseWriter, r *http.Request) {
	var req executeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, "", apperrors.NewValidationError("Invalid request body", err.Error()))
		return
	}

	tool, ok := s.registry.Get(req.ToolName)
	if !ok {
		s.writeError(w, req.ToolName, apperrors.NewToolNotFoundError(req.ToolName))
		return
	}

	if err := s.validateArguments(tool, req.Arguments); err != nil {
		s.writeError(w, tool.Name, err)
		return
	}

	start := time.Now()
	result, err := tool.Handler(r.Context(), req.Arguments)
	elapsed := time.Since(start)

	metrics.ToolCallDuration.WithLabelValues(tool.Name).Observe(elapsed.Seconds())
	s.obs.RecordToolDuration(r.Context(), tool.Name, elapsed)

	if err != nil {
		s.obs.RecordToolCall(r.Context(), tool.Name, "error")
		s.writeError(w, tool.Name, err)
		return
	}

	metrics.ToolCallsCompleted.WithLabelValues(tool.Name).Inc()
	s.obs.RecordToolCall(r.Context(), tool.Name, "success")

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"result":  result,
	})
}

// validateArguments runs the tool's own input schema over the arguments.
// A missing required "query" keeps its well-known message.
func (s *Server) validateArguments(tool *Tool, args map[string]interface{}) error {
	result, err := validation.ValidateInput(args, tool.InputSchema)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	if result.Valid {
		return nil
	}

	for _, vErr := range result.Errors {
		if strings.Contains(vErr.Message, "query is required") {
			return apperrors.NewMissingParameterError("query")
		}
	}
	return apperrors.NewValidationError(
		"Invalid arguments for tool "+tool.Name,
		strings.Join(result.GetErrorMessages(), "; "),
	)
}

func (s *Server) writeError(w http.ResponseWriter, toolName string, err error) {
	payload, status := s.responder.Respond(toolName, err)
	writeJSON(w, status, payload)

	code := string(apperrors.AsStandard(err).Code)
	metrics.ToolCallsFailed.WithLabelValues(toolName, code).Inc()
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// decodeArgs maps loosely-typed tool arguments onto a typed params struct.
func decodeArgs(args map[string]interface{}, out interface{}) error {
	data, err := json.Marshal(args)
	if err != nil {
		return apperrors.NewValidationError("Invalid arguments", err.Error())
	}
	if err := json.Unmarshal(data, out); err != nil {
		return apperrors.NewValidationError("Invalid arguments", err.Error())
	}
	return nil
}
