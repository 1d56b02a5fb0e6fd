package httpapi

import (
	_ "embed"
	"net/http"
)

// specRoute is the public path of the OpenAPI document.
const specRoute = "/api/reach_api.json"

//go:embed openapi.json
var openAPISpec []byte

func handleOpenAPISpec(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(openAPISpec)
}
