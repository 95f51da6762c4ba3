package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
)

// handleHealth responds with 200 OK to indicate the service is running
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	services := map[string]string{
		"upstream":  "unknown",
		"sync_loop": "unknown",
	}

	if s.upstream != nil && s.upstream.Healthy() {
		services["upstream"] = "up"
	}
	if s.loop != nil && s.loop.IsRunning() {
		services["sync_loop"] = "up"
	}

	status := map[string]interface{}{
		"status":   "ok",
		"services": services,
	}
	if s.manager != nil {
		status["subscribers"] = s.manager.SubscriberCount()
	}
	if s.history != nil {
		status["historical_points"] = s.history.ItemCount()
	}

	s.sendJSONResponse(w, status)
}

// sendJSONResponse is a common wrapper for JSON responses that sets
// Content-Type and Content-Length headers
func (s *Server) sendJSONResponse(w http.ResponseWriter, data interface{}) {
	responseBytes, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "Error encoding response", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(len(responseBytes)))

	if _, err := w.Write(responseBytes); err != nil {
		log.Printf("Error writing response: %v", err)
		return
	}
}
