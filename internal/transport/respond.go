package transport

import (
	"encoding/json"
	"net/http"

	"purenest-be/internal/logger"

	"go.uber.org/zap"
)

// envelope is the uniform response shape:
// {"status":"success"|"error", "message":..., "data":...}
type envelope struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func respondJSON(w http.ResponseWriter, code int, env envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		logger.L().Error("failed to encode response", zap.Error(err))
	}
}

func respondSuccess(w http.ResponseWriter, code int, message string, data any) {
	respondJSON(w, code, envelope{Status: "success", Message: message, Data: data})
}

func respondError(w http.ResponseWriter, code int, message string) {
	respondJSON(w, code, envelope{Status: "error", Message: message})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON payload")
		return false
	}
	return true
}

// pagination is the standard list-response pagination block.
type pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	Total       int64 `json:"total"`
	HasNext     bool  `json:"hasNext"`
	HasPrev     bool  `json:"hasPrev"`
}

func buildPagination(page, limit int, total int64) pagination {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		Total:       total,
		HasNext:     page < totalPages,
		HasPrev:     page > 1,
	}
}
