package api

import (
	"net/http"

	_ "assetrates/docs"
	"assetrates/internal/rate/handler"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	swagger "github.com/swaggo/http-swagger"
)

func NewRouter(rateHandler *handler.Handler, apiKeyAuth func(http.Handler) http.Handler) *chi.Mux {
	router := chi.NewRouter()
	router.Use(chimiddleware.Recoverer)
	router.Use(chimiddleware.Heartbeat("/healthz"))
	router.Use(cors.AllowAll().Handler)

	// Swagger UI
	router.Get("/swagger/*", swagger.WrapHandler)

	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"Welcome to the interest rate service!"}`))
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(apiKeyAuth)
		r.Post("/asset", rateHandler.SubmitAssets)
		r.Get("/interest_rate", rateHandler.GetInterestRate)
	})
	return router
}
