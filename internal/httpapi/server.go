package httpapi

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"flaggingd/internal/model"
	"flaggingd/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	Predictions(reaches []int, hours int) (types.ModelResponse, error)
	Status() types.StatusResponse
	Ready() bool
}

// NewMux builds the router. site, when non-nil, is mounted at the root and
// serves the HTML pages and static assets.
func NewMux(svc Service, site http.Handler) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	// Compression for JSON and HTML responses
	r.Use(middleware.Compress(5))
	r.Use(MetricsMiddleware)
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
		}))
	}
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})

	r.Get("/api/v1/model", func(w http.ResponseWriter, r *http.Request) {
		handleModel(svc, w, r)
	})

	r.Get(specRoute, handleOpenAPISpec)
	MountSwagger(r)

	r.Get("/status", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(svc.Status()); err != nil {
			writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
			return
		}
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("loading"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	if site != nil {
		r.Mount("/", site)
	}

	return r
}

// handleModel serves GET /api/v1/model.
//
// @Summary  Reach safety predictions
// @Param    reach query []string false "Reach numbers to return (repeatable)" Enums(2,3,4,5)
// @Param    hours query int false "Trailing window length" Enums(1,2,3,6,12,24,36,48) default(24)
// @Success  200 {object} types.ModelResponse
// @Failure  400 {object} types.ErrorResponse
// @Router   /api/v1/model [get]
func handleModel(svc Service, w http.ResponseWriter, r *http.Request) {
	reaches, err := parseReaches(r.URL.Query())
	if err != nil {
		IncrementInvalidParam("reach")
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	hours, err := parseHours(r.URL.Query())
	if err != nil {
		IncrementInvalidParam("hours")
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	start := time.Now()
	resp, err := svc.Predictions(reaches, hours)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case model.IsSnapshotUnavailable(err):
			status = http.StatusServiceUnavailable
		case model.IsUnknownReach(err):
			status = http.StatusBadRequest
		default:
			if he, ok := err.(HTTPError); ok {
				status = he.StatusCode()
			}
		}
		writeJSONError(w, status, err.Error())
		logModelEnd(r, status, hours, time.Since(start), err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
		return
	}
	logModelEnd(r, http.StatusOK, hours, time.Since(start), nil)
}

func logModelEnd(r *http.Request, status, hours int, dur time.Duration, err error) {
	if requestLogLevel(r) < LevelInfo {
		return
	}
	if zlog != nil {
		z := zlog.Info().Str("path", r.URL.Path).Int("status", status).Int("hours", hours).Dur("dur", dur)
		if rid := middleware.GetReqID(r.Context()); rid != "" {
			z = z.Str("request_id", rid)
		}
		if err != nil {
			z = z.Err(err)
		}
		z.Msg("model query")
		return
	}
	log.Printf("model query status=%d hours=%d dur=%s err=%v", status, hours, dur, err)
}
