//go:build swagger

package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"
)

// MountSwagger serves the swagger UI at /api/docs, reading the embedded spec.
func MountSwagger(r chi.Router) {
	r.Get("/api/docs", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/api/docs/index.html", http.StatusMovedPermanently)
	})
	r.Get("/api/docs/*", httpSwagger.Handler(httpSwagger.URL(specRoute)))
}
