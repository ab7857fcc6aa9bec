package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/earnings-cli/internal/extractor"
	"github.com/sells-group/earnings-cli/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the extraction HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := cfg.ValidateCredentials(); err != nil {
			return err
		}

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
			Handler:           newAPIHandler(newExtractor(cfg), st),
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			zap.L().Info("api listening", zap.String("addr", srv.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
			zap.L().Info("shutting down api")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

type apiHandler struct {
	ext summarizer
	st  store.Store
}

func newAPIHandler(ext summarizer, st store.Store) http.Handler {
	h := &apiHandler{ext: ext, st: st}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", h.health)
	r.Post("/v1/extract", h.extract)
	r.Get("/v1/runs", h.listRuns)
	r.Get("/v1/runs/{id}", h.getRun)

	return r
}

func (h *apiHandler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type extractRequest struct {
	Source     string `json:"source"`
	Transcript string `json:"transcript"`
}

type extractError struct {
	Error       string `json:"error"`
	RateLimited bool   `json:"rate_limited"`
}

func (h *apiHandler) extract(w http.ResponseWriter, r *http.Request) {
	var req extractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, extractError{Error: "invalid JSON body"})
		return
	}
	if req.Transcript == "" {
		writeJSON(w, http.StatusUnprocessableEntity, extractError{Error: "transcript is required"})
		return
	}
	source := req.Source
	if source == "" {
		source = "api"
	}

	sum, err := runExtraction(r.Context(), h.ext, h.st, source, req.Transcript)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, extractError{
			Error:       err.Error(),
			RateLimited: extractor.HasRateLimitSignal(err),
		})
		return
	}

	writeJSON(w, http.StatusOK, sum)
}

func (h *apiHandler) listRuns(w http.ResponseWriter, r *http.Request) {
	filter := store.RunFilter{Limit: 50}
	if s := r.URL.Query().Get("status"); s != "" {
		filter.Status = store.RunStatus(s)
	}
	if l := r.URL.Query().Get("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n < 1 {
			writeJSON(w, http.StatusBadRequest, extractError{Error: "limit must be a positive integer"})
			return
		}
		filter.Limit = n
	}

	runs, err := h.st.ListRuns(r.Context(), filter)
	if err != nil {
		zap.L().Error("list runs", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, extractError{Error: "internal error"})
		return
	}
	if runs == nil {
		runs = []store.Run{}
	}
	writeJSON(w, http.StatusOK, runs)
}

func (h *apiHandler) getRun(w http.ResponseWriter, r *http.Request) {
	run, err := h.st.GetRun(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, extractError{Error: "run not found"})
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("write response", zap.Error(err))
	}
}
