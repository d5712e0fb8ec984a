package httpadapter

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// runResponse is the JSON body returned by the run webhook. Mirrors what the
// scheduler needs to record about the invocation, nothing more.
type runResponse struct {
	RunID   string `json:"run_id,omitempty"`
	Status  string `json:"status"`
	Fetched int    `json:"fetched,omitempty"`
	Applied int    `json:"applied,omitempty"`
	Alerts  int    `json:"alerts,omitempty"`
	Error   string `json:"error,omitempty"`
}

// handleRun executes one complete automation run synchronously. The caller
// (typically a cloud scheduler) gets 200 with a summary, or 500 when the run
// failed; the error alert has already fired by the time the 500 is written.
func (h *Handler) handleRun(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Run(r.Context())

	w.Header().Set("Content-Type", "application/json")
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(runResponse{Status: "error", Error: err.Error()})
		return
	}

	resp := runResponse{
		RunID:   res.RunID,
		Status:  "success",
		Fetched: len(res.Records),
		Applied: res.AppliedCount(),
		Alerts:  len(res.Issues),
	}
	if err = json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}
