package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/rcliao/studycards/internal/model"
	"github.com/rcliao/studycards/internal/srs"
	"github.com/rcliao/studycards/internal/store"
)

func (s *Server) handleListSets(w http.ResponseWriter, r *http.Request) {
	sets, err := s.svc.ListSets(r.Context())
	if err != nil {
		s.respondErr(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, sets)
}

func (s *Server) handleCreateSet(w http.ResponseWriter, r *http.Request) {
	var p store.SetParams
	if err := s.parseJSON(r, &p); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	set, err := s.svc.CreateSet(r.Context(), p)
	if err != nil {
		s.respondErr(w, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, set)
}

func (s *Server) handleGetSet(w http.ResponseWriter, r *http.Request) {
	set, err := s.svc.GetSet(r.Context(), r.PathValue("id"))
	if err != nil {
		s.respondErr(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, set)
}

func (s *Server) handleUpdateSet(w http.ResponseWriter, r *http.Request) {
	var p store.SetParams
	if err := s.parseJSON(r, &p); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	set, err := s.svc.UpdateSet(r.Context(), r.PathValue("id"), p)
	if err != nil {
		s.respondErr(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, set)
}

func (s *Server) handleDeleteSet(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.DeleteSet(r.Context(), r.PathValue("id")); err != nil {
		s.respondErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	limit := -1
	if v := r.URL.Query().Get("new_limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			s.respondError(w, http.StatusUnprocessableEntity, fmt.Sprintf("invalid new_limit %q", v))
			return
		}
		limit = max(n, 0)
	}
	sess, err := s.svc.Session(r.Context(), r.PathValue("id"), limit)
	if err != nil {
		s.respondErr(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, sess)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	st, err := s.svc.Stats(r.Context(), r.PathValue("id"))
	if err != nil {
		s.respondErr(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, st)
}

func (s *Server) handleResetProgress(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.ResetProgress(r.Context(), r.PathValue("id")); err != nil {
		s.respondErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type reviewRequest struct {
	CardID  string `json:"card_id"`
	Quality string `json:"quality"`
}

func (s *Server) handleReview(w http.ResponseWriter, r *http.Request) {
	var req reviewRequest
	if err := s.parseJSON(r, &req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	g, err := srs.ParseGrade(req.Quality)
	if err != nil {
		s.respondErr(w, err)
		return
	}
	p, err := s.svc.Review(r.Context(), req.CardID, g)
	if err != nil {
		s.respondErr(w, err)
		return
	}
	s.metrics.ReviewsTotal.WithLabelValues(g.String()).Inc()
	s.respondJSON(w, http.StatusOK, p)
}

// progressResponse reports a card's progress; Progress is null for a card
// that was never reviewed.
type progressResponse struct {
	CardID   string          `json:"card_id"`
	Status   srs.Status      `json:"status"`
	Progress *model.Progress `json:"progress"`
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	p, err := s.svc.Progress(r.Context(), id)
	if err != nil {
		s.respondErr(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, progressResponse{CardID: id, Status: srs.StatusOf(p), Progress: p})
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	out, err := s.svc.Preview(r.Context(), r.PathValue("id"))
	if err != nil {
		s.respondErr(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, out)
}
