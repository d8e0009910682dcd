package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ledhub/ledhub-core/internal/device"
)

// handleSetCommand sets the commanded LED state from the URL path.
// Commands are case-insensitive.
func (s *Server) handleSetCommand(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "cmd")

	status, err := s.tracker.SetCommand(raw)
	if err != nil {
		writeText(w, http.StatusBadRequest, "Invalid command")
		return
	}

	s.logger.Info("led command set", "command", string(status))
	writeText(w, http.StatusOK, fmt.Sprintf("Command set to %s", status))
}

// handleGetCommand returns the commanded state for the polling
// microcontroller.
func (s *Server) handleGetCommand(w http.ResponseWriter, r *http.Request) {
	writeText(w, http.StatusOK, string(s.tracker.Command()))
}

// reportRequest is the JSON body the microcontroller posts.
type reportRequest struct {
	Status string `json:"status"`
}

// handleReportStatus accepts a status report from the microcontroller.
// Reports are strict: only the exact strings ON and OFF are accepted.
func (s *Server) handleReportStatus(w http.ResponseWriter, r *http.Request) {
	var req reportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeText(w, http.StatusBadRequest, "Invalid status")
		return
	}

	status, err := s.tracker.Report(r.Context(), req.Status)
	if err != nil {
		if errors.Is(err, device.ErrInvalidStatus) {
			writeText(w, http.StatusBadRequest, "Invalid status")
			return
		}
		s.writeServerError(w, r, err)
		return
	}

	s.logger.Info("device reported", "status", string(status))
	writeText(w, http.StatusOK, "Status handled")
}

// handleGetRealStatus returns the device-reported state, the UNKNOWN
// sentinel until the first report arrives.
func (s *Server) handleGetRealStatus(w http.ResponseWriter, r *http.Request) {
	writeText(w, http.StatusOK, string(s.tracker.Reported()))
}
