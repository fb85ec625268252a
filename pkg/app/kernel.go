package app

import (
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/shashiranjanraj/helmet-store/config"
	"github.com/shashiranjanraj/helmet-store/pkg/metrics"
	"github.com/shashiranjanraj/helmet-store/pkg/middleware"
	"github.com/shashiranjanraj/helmet-store/pkg/reqid"
	"github.com/shashiranjanraj/helmet-store/pkg/response"
	"github.com/shashiranjanraj/helmet-store/pkg/router"
)

// buildRouter installs the global middleware, then calls register.
func buildRouter(register func(*router.Router)) *router.Router {
	r := router.New()

	// Outermost first:
	//  1. StripSlashes  - /api/v1/helmet/ matches /api/v1/helmet
	//  2. metrics       - total latency, labelled by route pattern
	//  3. recovery      - a panic becomes a 500 envelope
	//  4. request id    - before anything logs
	//  5. logger        - per-request logger with request/transaction ids
	//  6. CORS
	//  7. rate limiter
	r.Use(chimw.StripSlashes)
	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))
	r.Use(middleware.RateLimit(config.RateLimit()))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.NotFound(w, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	register(r)
	return r
}
