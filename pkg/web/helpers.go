package web

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

func RespondJSON(w http.ResponseWriter, logger *slog.Logger, status int, payload any) {
	// Handle nil payload
	if payload == nil {
		w.WriteHeader(status)
		return
	}

	response, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Error encoding response to JSON", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(response)
}

// RespondDetail writes an error response in the {"detail": ...} shape used
// across the API for not-found and other simple failures.
func RespondDetail(w http.ResponseWriter, logger *slog.Logger, status int, detail string) {
	RespondJSON(w, logger, status, map[string]string{"detail": detail})
}
