// Package server exposes the compiler over HTTP.
package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jsphweid/ams/compile"
	"github.com/jsphweid/ams/constants"
	"github.com/jsphweid/ams/logger"
	"github.com/jsphweid/ams/model"
	"github.com/pkg/errors"
	"github.com/rs/cors"
)

const (
	maxSourceBytes  = 1 << 20
	requestIDHeader = "X-Request-ID"
	shutdownTimeout = 5 * time.Second
)

// NewHandler returns the router with request ids and CORS applied.
func NewHandler() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/compile/{format}", HandleCompile).Methods("POST")
	router.HandleFunc("/check", HandleCheck).Methods("POST")
	router.HandleFunc("/health", HandleHealth).Methods("GET")
	router.Use(withRequestID)
	return cors.Default().Handler(router)
}

// Serve listens on addr until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           NewHandler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", logger.Fields{"addr": addr})
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return errors.Wrap(err, "server stopped")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutdown")
	}
	return nil
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set(requestIDHeader, id)

		fields := logger.WithRequest(r, id)
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		defer func() {
			if p := recover(); p != nil {
				logger.Error("panic while handling request", errors.Errorf("%v", p), fields)
				writeJSON(rec, http.StatusInternalServerError, model.ErrorResponse{Error: "internal error"})
			}
			logger.Request(fields, rec.status, time.Since(start))
		}()

		next.ServeHTTP(rec, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func readSource(w http.ResponseWriter, r *http.Request) (string, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxSourceBytes))
	if err != nil {
		writeJSON(w, http.StatusRequestEntityTooLarge, model.ErrorResponse{Error: "Could not read request body: " + err.Error()})
		return "", false
	}
	return string(body), true
}

func HandleCompile(w http.ResponseWriter, r *http.Request) {
	format, err := compile.ParseFormat(mux.Vars(r)["format"])
	if err != nil {
		writeJSON(w, http.StatusNotFound, model.ErrorResponse{Error: err.Error()})
		return
	}
	emitter, err := compile.EmitterFor(format)
	if err != nil {
		writeJSON(w, http.StatusNotFound, model.ErrorResponse{Error: err.Error()})
		return
	}

	src, ok := readSource(w, r)
	if !ok {
		return
	}

	out, errs, err := compile.Build(src, format)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, model.ErrorResponse{Error: err.Error()})
		return
	}
	if len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{
			Error:  "compilation failed",
			Errors: model.NewDiagnostics(errs),
		})
		return
	}

	w.Header().Set("Content-Type", emitter.ContentType())
	w.WriteHeader(http.StatusOK)
	w.Write(out)
}

func HandleCheck(w http.ResponseWriter, r *http.Request) {
	src, ok := readSource(w, r)
	if !ok {
		return
	}
	score, errs := compile.Parse(src)
	writeJSON(w, http.StatusOK, model.CheckResponse{
		Ok:       len(errs) == 0,
		Segments: len(score.Segments),
		Errors:   model.NewDiagnostics(errs),
	})
}

func HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, model.HealthResponse{Status: "ok", Version: constants.FormatVersion})
}
