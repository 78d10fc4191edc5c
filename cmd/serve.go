package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/glowlab/retention-cli/internal/config"
	"github.com/glowlab/retention-cli/internal/engine"
	"github.com/glowlab/retention-cli/internal/model"
	"github.com/glowlab/retention-cli/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the derived tables over a JSON API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		eng, dicts, err := newEngine(ctx)
		if err != nil {
			return err
		}
		st, err := store.Open(ctx, cfg.Store)
		if err != nil {
			return err
		}
		defer st.Close()

		api := &apiServer{eng: eng, dicts: dicts, store: st}

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}
		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           api.routes(cfg.Server),
			ReadHeaderTimeout: 10 * time.Second,
		}

		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}
		return nil
	},
}

type apiServer struct {
	eng   *engine.Engine
	dicts *config.Dictionaries
	store store.Store
}

func (a *apiServer) routes(cfg config.ServerConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE"},
	}))
	r.Use(rateLimit(rate.Limit(cfg.RateLimit), cfg.RateBurst))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/report", a.handleReport)
	r.Get("/brands", a.handleBrands)

	r.Route("/brands/{brand}", func(r chi.Router) {
		r.Get("/cohorts", a.brandHandler(func(eng *engine.Engine, t model.BrandTarget) any {
			return eng.Segment(t)
		}))
		r.Get("/lift", a.brandHandler(func(eng *engine.Engine, t model.BrandTarget) any {
			return eng.Lift(t)
		}))
		r.Get("/flows", a.brandHandler(func(eng *engine.Engine, t model.BrandTarget) any {
			return map[string]any{"inflow": eng.Inflow(t), "outflow": eng.Outflow(t)}
		}))
		r.Get("/flows/{adjacent}", a.handleFlowDetail)
		r.Get("/baskets", a.brandHandler(func(eng *engine.Engine, t model.BrandTarget) any {
			return eng.Basket(t)
		}))
	})

	r.Get("/aha", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, a.eng.AhaMoment())
	})
	r.Get("/share", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, a.eng.MarketShare())
	})
	r.Get("/voice", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, a.eng.VoiceGap())
	})
	r.Get("/skin", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, a.eng.SkinProfile())
	})
	r.Get("/top-products", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, a.eng.TopProducts())
	})

	r.Get("/snapshots", a.handleSnapshotList)
	r.Post("/snapshots", a.handleSnapshotSave)
	r.Get("/snapshots/{id}", a.handleSnapshotGet)
	r.Delete("/snapshots/{id}", a.handleSnapshotDelete)

	return r
}

// rateLimit applies one shared token bucket to every request.
func rateLimit(limit rate.Limit, burst int) func(http.Handler) http.Handler {
	limiter := rate.NewLimiter(limit, burst)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (a *apiServer) handleReport(w http.ResponseWriter, r *http.Request) {
	report, err := a.eng.Report(r.Context())
	if err != nil {
		zap.L().Error("report failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "report failed")
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (a *apiServer) handleBrands(w http.ResponseWriter, r *http.Request) {
	names := make([]string, len(a.dicts.Targets))
	for i, t := range a.dicts.Targets {
		names[i] = t.Name
	}
	writeJSON(w, http.StatusOK, names)
}

func (a *apiServer) brandHandler(fn func(*engine.Engine, model.BrandTarget) any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		target, err := findTarget(a.dicts, chi.URLParam(r, "brand"))
		if err != nil {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, fn(a.eng, target))
	}
}

func (a *apiServer) handleFlowDetail(w http.ResponseWriter, r *http.Request) {
	target, err := findTarget(a.dicts, chi.URLParam(r, "brand"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	adjacent := chi.URLParam(r, "adjacent")
	writeJSON(w, http.StatusOK, map[string]any{
		"adjacent_brand":   adjacent,
		"inflow_products":  a.eng.InflowDetail(target, adjacent),
		"outflow_products": a.eng.OutflowDetail(target, adjacent),
	})
}

func (a *apiServer) handleSnapshotList(w http.ResponseWriter, r *http.Request) {
	snaps, err := a.store.ListSnapshots(r.Context(), 50)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "list snapshots failed")
		return
	}
	writeJSON(w, http.StatusOK, snaps)
}

func (a *apiServer) handleSnapshotSave(w http.ResponseWriter, r *http.Request) {
	report, err := a.eng.Report(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "report failed")
		return
	}
	snap, err := a.store.SaveSnapshot(r.Context(), "api", report)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "save snapshot failed")
		return
	}
	writeJSON(w, http.StatusCreated, snap)
}

func (a *apiServer) handleSnapshotGet(w http.ResponseWriter, r *http.Request) {
	snap, err := a.store.GetSnapshot(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "snapshot not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "get snapshot failed")
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (a *apiServer) handleSnapshotDelete(w http.ResponseWriter, r *http.Request) {
	err := a.store.DeleteSnapshot(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "snapshot not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "delete snapshot failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
