package api

import (
	"encoding/json"
	"net/http"

	"github.com/aguxez/bmrcalc/logging"
)

const internalErrorMessage = "Internal server error"

type ErrorResponse struct {
	Success   bool     `json:"success"`
	Message   string   `json:"message"`
	Field     string   `json:"field,omitempty"`
	Reason    string   `json:"reason,omitempty"`
	Choices   []string `json:"choices,omitempty"`
	RequestID string   `json:"requestId,omitempty"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.FromContext(r.Context()).WithError(err).Error("failed to write response")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, resp ErrorResponse) {
	resp.Success = false
	resp.RequestID = RequestIDFromContext(r.Context())
	writeJSON(w, r, status, resp)
}
