package server

import (
	"errors"
	"net/http"

	"github.com/ec-win-24/nexuspoint/config"
	"github.com/ec-win-24/nexuspoint/core"
	"github.com/go-chi/render"
)

// Problem is the structured body of every non-2xx response. Clients always
// receive a status and body, never a stack trace; Detail is only populated
// in debug mode.
type Problem struct {
	Status int    `json:"status"`
	Title  string `json:"title"`
	Code   string `json:"code,omitempty"`
	Field  string `json:"field,omitempty"`
	Detail string `json:"detail,omitempty"`
}

// DefaultErrorHandler turns an error returned by a handler into a generic
// problem response. Known core sentinels keep their natural status; anything
// else is an internal server error.
func DefaultErrorHandler(cfg *config.Config, w http.ResponseWriter, r *http.Request, err error) {
	code, msg := func() (int, string) {
		switch {
		case errors.Is(err, core.ErrNotFound):
			return http.StatusNotFound, "not found"
		case errors.Is(err, core.ErrConflict):
			return http.StatusConflict, "conflict"
		case errors.Is(err, core.ErrNilValue), errors.Is(err, core.ErrFieldMapping):
			return http.StatusBadRequest, "bad request"
		}
		return http.StatusInternalServerError, "internal server error"
	}()

	problem := Problem{Status: code, Title: msg}
	if cfg.App.Debug {
		problem.Detail = err.Error()
	}
	render.Status(r, code)
	render.JSON(w, r, problem)
}

// RenderFailure writes a failed Result as a problem response.
func RenderFailure(cfg *config.Config, w http.ResponseWriter, r *http.Request, failure core.Error, status int) {
	problem := Problem{
		Status: status,
		Title:  failure.Message,
		Code:   failure.Code,
		Field:  failure.Field,
	}
	if status >= http.StatusInternalServerError && !cfg.App.Debug {
		// Persistence-layer messages stay server-side outside debug mode.
		problem.Title = "An unexpected error occurred."
		problem.Code = core.CodeOperationFailed
	} else if status >= http.StatusInternalServerError && cfg.App.Debug {
		problem.Detail = failure.Message
		problem.Title = "An unexpected error occurred."
	}
	render.Status(r, status)
	render.JSON(w, r, problem)
}
