package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taskboard/taskboard-go/internal/validate"
)

const maxBodyBytes = 1 << 20 // 1MB

var errInvalidBody = errors.New("invalid request body")

// Step is one stage of a request pipeline. It returns the request to hand to
// the next stage, or an error that ends the request.
type Step func(w http.ResponseWriter, r *http.Request) (*http.Request, error)

// Endpoint produces the response for a request that passed every step.
// A nil body writes no content.
type Endpoint func(r *http.Request) (status int, body any, err error)

// Pipeline runs steps in order, then the endpoint. Any error from a step or
// the endpoint is rendered by writeError.
func Pipeline(log *slog.Logger, endpoint Endpoint, steps ...Step) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		for _, step := range steps {
			next, err := step(w, r)
			if err != nil {
				writeError(w, r, log, err)
				return
			}
			r = next
		}

		status, body, err := endpoint(r)
		if err != nil {
			writeError(w, r, log, err)
			return
		}
		if body == nil {
			w.WriteHeader(status)
			return
		}
		writeJSON(w, status, body)
	}
}

type boundKey struct{}

type bodyRules[T any] interface {
	*T
	Rules() validate.Rules
}

type queryRules[T any] interface {
	*T
	Rules(url.Values) validate.Rules
}

// bindBody decodes the JSON body into a T, runs its rules and stores the
// sanitized value for bound.
func bindBody[T any, P bodyRules[T]]() Step {
	return func(w http.ResponseWriter, r *http.Request) (*http.Request, error) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

		req := new(T)
		if err := decodeJSON(r.Body, req); err != nil {
			return nil, err
		}
		if err := P(req).Rules().Validate(); err != nil {
			return nil, err
		}
		return withBound(r, req), nil
	}
}

// bindQuery fills a T from the query string, runs its rules and stores the
// result for bound.
func bindQuery[T any, P queryRules[T]]() Step {
	return func(_ http.ResponseWriter, r *http.Request) (*http.Request, error) {
		req := new(T)
		if err := P(req).Rules(r.URL.Query()).Validate(); err != nil {
			return nil, err
		}
		return withBound(r, req), nil
	}
}

func withBound(r *http.Request, v any) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), boundKey{}, v))
}

// bound returns the value stored by bindBody or bindQuery.
func bound[T any](r *http.Request) *T {
	v, _ := r.Context().Value(boundKey{}).(*T)
	return v
}

// decodeJSON reads exactly one JSON value. An empty body decodes as an empty
// object so the field rules report what is missing. Anything after the value
// other than whitespace is an invalid body.
func decodeJSON(body io.Reader, v any) error {
	dec := json.NewDecoder(body)
	err := dec.Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err == nil {
		err = dec.Decode(&json.RawMessage{})
		if errors.Is(err, io.EOF) {
			return nil
		}
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return err
	}
	return errInvalidBody
}

// pathID parses a positive integer URL parameter. Any other value yields
// notFound, the error for the resource the parameter names.
func pathID(r *http.Request, name string, notFound error) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, notFound
	}
	return id, nil
}
