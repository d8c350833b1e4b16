package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"forumd/pkg/api/handlers"
	"forumd/pkg/security"
	"forumd/pkg/service"
	"forumd/pkg/store"
	"forumd/pkg/telemetry"
	"forumd/pkg/utils"
)

// Handler assembles the public HTTP surface: the conversation routes plus
// health, metrics and docs endpoints. Telemetry runs inside the router so
// it can label by matched route; the security middleware wraps the whole
// surface so CORS preflights and unmatched paths are covered too.
func Handler(svc service.Conversation, sec security.SecConfig) http.Handler {
	r := mux.NewRouter()
	r.Use(telemetry.Middleware)

	r.HandleFunc("/healthz", healthz).Methods(http.MethodGet)
	handlers.NewConversations(svc).Register(r)

	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	// Swagger UI at /docs and the OpenAPI spec served from ./docs
	r.PathPrefix("/docs/").Handler(httpSwagger.Handler(httpSwagger.URL("/openapi.yaml")))
	r.Handle("/openapi.yaml", http.FileServer(http.Dir("./docs"))).Methods(http.MethodGet)

	return security.Middleware(sec)(r)
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	if !store.Ready() {
		utils.JSONError(w, http.StatusServiceUnavailable, "store not ready")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
