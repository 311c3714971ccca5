package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"portfolio-backend/internal/api/middleware"
	"portfolio-backend/internal/env"
	"portfolio-backend/internal/queue"
)

type apiFunc func(http.ResponseWriter, *http.Request) error

func WriteJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

func (s *APIServer) corsConfig() middleware.CORSConfig {
	origins := []string{"http://localhost:3000"}
	if webURL := env.Get(env.WebUrl); webURL != "" {
		origins = append(origins, webURL)
	}

	return middleware.CORSConfig{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "X-Requested-With", "Authorization"},
		AllowCredentials: true,
	}
}

// MakeHTTPHandleFunc runs the handler on the request worker queue and
// translates returned errors into JSON responses.
func (s *APIServer) MakeHTTPHandleFunc(f apiFunc, authMiddleware ...middleware.Middleware) http.HandlerFunc {
	baseHandler := func(w http.ResponseWriter, r *http.Request) {
		errc := make(chan error, 1)

		job := queue.Job{
			Fn: func() error {
				return f(w, r)
			},
			Errc: errc,
		}

		s.requestQueueManager.EnqueueJob(job)

		writeHandlerError(w, <-errc)
	}

	return s.wrap(baseHandler, authMiddleware...)
}

// MakeStreamingHandleFunc keeps the middleware stack but skips the worker
// queue. A streamed model response can hold a connection open for tens of
// seconds; parking that on a queue worker would starve the other endpoints.
func (s *APIServer) MakeStreamingHandleFunc(f apiFunc, authMiddleware ...middleware.Middleware) http.HandlerFunc {
	baseHandler := func(w http.ResponseWriter, r *http.Request) {
		writeHandlerError(w, f(w, r))
	}

	return s.wrap(baseHandler, authMiddleware...)
}

func (s *APIServer) wrap(baseHandler http.HandlerFunc, authMiddleware ...middleware.Middleware) http.HandlerFunc {
	middlewares := []middleware.Middleware{
		middleware.CORS(s.corsConfig()),
		middleware.Logging(),
	}

	finalHandler := func(w http.ResponseWriter, r *http.Request) {
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		if len(authMiddleware) > 0 {
			authHandler := baseHandler
			for _, m := range authMiddleware {
				authHandler = m(authHandler)
			}
			authHandler(w, r)
		} else {
			baseHandler(w, r)
		}
	}

	return middleware.Chain(finalHandler, middlewares...)
}

func writeHandlerError(w http.ResponseWriter, err error) {
	if err == nil {
		return
	}

	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		fmt.Println(httpErr.ErrorLog)
		WriteJSON(w, httpErr.StatusCode, ApiError{Error: httpErr.Message})
	} else {
		WriteJSON(w, http.StatusInternalServerError, ApiError{Error: "Internal server error"})
	}
}
