package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/w-h-a/premind"
)

type createSessionRequest struct {
	PolicyID string `json:"policy_id"`
}

type createSessionResponse struct {
	ID       string `json:"id"`
	PolicyID string `json:"policy_id"`
}

type messageRequest struct {
	Message string `json:"message"`
}

type messageResponse struct {
	Reply string `json:"reply"`
	Ended bool   `json:"ended"`
}

type historyResponse struct {
	Items []premind.Turn `json:"items"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	if len(strings.TrimSpace(req.PolicyID)) == 0 {
		writeError(w, http.StatusBadRequest, "policy_id is required")
		return
	}

	id, err := s.assistant.StartSession(r.Context(), req.PolicyID)
	if err != nil {
		if errors.Is(err, premind.ErrNoRecord) {
			writeError(w, http.StatusNotFound, "no record found")
			return
		}
		s.serverError(w, "failed to start session", err)
		return
	}

	writeJSON(w, http.StatusCreated, createSessionResponse{ID: id, PolicyID: req.PolicyID})
}

func (s *Server) handleMessage(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	if len(strings.TrimSpace(req.Message)) == 0 {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	reply, ended, err := s.assistant.Respond(r.Context(), id, req.Message)
	if err != nil {
		if errors.Is(err, premind.ErrSessionNotFound) {
			writeError(w, http.StatusNotFound, "session not found")
			return
		}
		s.serverError(w, "failed to respond", err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Reply: reply, Ended: ended})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	items, err := s.assistant.History(r.Context(), id)
	if err != nil {
		if errors.Is(err, premind.ErrSessionNotFound) {
			writeError(w, http.StatusNotFound, "session not found")
			return
		}
		s.serverError(w, "failed to fetch history", err)
		return
	}

	writeJSON(w, http.StatusOK, historyResponse{Items: items})
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	s.assistant.DeleteSession(r.Context(), mux.Vars(r)["id"])
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.assistant.Metrics().Snapshot())
}

func (s *Server) serverError(w http.ResponseWriter, msg string, err error) {
	if s.log != nil {
		s.log.Error(msg, logrus.Fields{"error": err.Error()})
	}

	writeError(w, http.StatusInternalServerError, msg)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
