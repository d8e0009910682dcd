package api

import "net/http"

// indexData feeds the home page template.
type indexData struct {
	Command  string
	Reported string
}

// handleIndex renders the LED control page.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, "index", "Home", indexData{
		Command:  string(s.tracker.Command()),
		Reported: string(s.tracker.Reported()),
	})
}

// handleHistory renders the status change log, newest first.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	entries, err := s.history.Recent(r.Context())
	if err != nil {
		s.writeServerError(w, r, err)
		return
	}

	s.renderPage(w, r, "history", "History", entries)
}
