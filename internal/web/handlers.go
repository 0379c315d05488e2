package web

import (
	"net/http"

	"github.com/example/exercise-tracker/internal/exercise"
	"github.com/example/exercise-tracker/internal/tracker"
)

func (s *Server) handleNewUser(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}
	f, err := bodyFields(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	ctx, cancel := s.storeCtx(r)
	defer cancel()
	u, err := s.Tracker.CreateUser(ctx, f["username"])
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) handleUsers(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodGet, http.MethodHead) {
		return
	}

	ctx, cancel := s.storeCtx(r)
	defer cancel()
	users, err := s.Tracker.ListUsers(ctx)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (s *Server) handleAdd(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}
	f, err := bodyFields(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	ctx, cancel := s.storeCtx(r)
	defer cancel()
	out, err := s.Tracker.AddExercise(ctx, tracker.AddExerciseInput{
		UserID:      f["userId"],
		Description: f["description"],
		Duration:    f["duration"],
		Date:        f["date"],
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleLog(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	q := r.URL.Query()

	ctx, cancel := s.storeCtx(r)
	defer cancel()
	out, err := s.Tracker.GetLog(ctx, tracker.LogInput{
		UserID: q.Get("userId"),
		LogQuery: exercise.LogQuery{
			From:  q.Get("from"),
			To:    q.Get("to"),
			Limit: q.Get("limit"),
		},
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
