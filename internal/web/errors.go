package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/example/exercise-tracker/internal/exercise"
)

var errRouteNotFound = exercise.E(exercise.RouteNotFound, "not found")

// statusError is a transport failure that carries its own status.
type statusError struct {
	status int
	msg    string
}

func (e *statusError) Error() string   { return e.msg }
func (e *statusError) HTTPStatus() int { return e.status }

func badRequest(msg string) error {
	return &statusError{status: http.StatusBadRequest, msg: msg}
}

// Classify decides the HTTP status and plain-text body for err.
func Classify(err error) (int, string) {
	var e *exercise.Error
	if errors.As(err, &e) {
		switch e.Kind {
		case exercise.PersistenceValidation, exercise.MissingField,
			exercise.InvalidDuration, exercise.InvalidDate:
			return http.StatusBadRequest, e.Msg
		case exercise.UserNotFound, exercise.RouteNotFound:
			return http.StatusNotFound, e.Msg
		case exercise.DuplicateUsername:
			return http.StatusConflict, e.Msg
		case exercise.PersistenceFailure:
			return http.StatusInternalServerError, e.Msg
		}
	}

	var sc interface{ HTTPStatus() int }
	if errors.As(err, &sc) {
		return sc.HTTPStatus(), err.Error()
	}
	if e != nil && e.Msg != "" {
		return http.StatusInternalServerError, e.Msg
	}
	return http.StatusInternalServerError, "Internal Server Error"
}

// legacyKinds are answered with 200 when LegacyStatus is set.
var legacyKinds = map[exercise.Kind]bool{
	exercise.MissingField:      true,
	exercise.InvalidDuration:   true,
	exercise.InvalidDate:       true,
	exercise.UserNotFound:      true,
	exercise.DuplicateUsername: true,
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := Classify(err)
	if s.LegacyStatus && legacyKinds[exercise.KindOf(err)] {
		status = http.StatusOK
	}
	if status >= http.StatusInternalServerError {
		s.logger().Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	writeText(w, status, msg)
}

func writeText(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(msg))
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
