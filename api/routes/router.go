package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/stayharbor/stayharbor-backend/api/controllers"
	reservationcontrollers "github.com/stayharbor/stayharbor-backend/api/controllers/reservations"
	roomcontrollers "github.com/stayharbor/stayharbor-backend/api/controllers/rooms"
	"github.com/stayharbor/stayharbor-backend/api/middleware"
	"github.com/stayharbor/stayharbor-backend/internal/reservations"
	"github.com/stayharbor/stayharbor-backend/internal/rooms"
	"github.com/stayharbor/stayharbor-backend/pkg/config"
	"github.com/stayharbor/stayharbor-backend/pkg/db"
	"github.com/stayharbor/stayharbor-backend/pkg/logger"
	pkgredis "github.com/stayharbor/stayharbor-backend/pkg/redis"
)

// RouterDeps carries everything the HTTP surface needs. IdempotencyStore and
// CachePinger are nil when Redis is not configured.
type RouterDeps struct {
	Config           *config.Config
	Logger           *logger.Logger
	DBPinger         db.Pinger
	CachePinger      pkgredis.Pinger
	IdempotencyStore pkgredis.IdempotencyStore
	Reservations     reservations.Service
	Rooms            rooms.Repository
}

func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(deps.Logger),
		middleware.RequestID(deps.Logger),
		middleware.Logging(deps.Logger),
		middleware.Metrics(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(deps.Config))
		r.Get("/ready", controllers.HealthReady(deps.Config, deps.DBPinger, deps.CachePinger, deps.Logger))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/reservations", func(r chi.Router) {
			r.Use(middleware.Idempotency(deps.IdempotencyStore, deps.Config.Idempotency.TTL, deps.Logger))
			r.Post("/", reservationcontrollers.Create(deps.Reservations, deps.Logger))
			r.Get("/", reservationcontrollers.ListByDate(deps.Reservations, deps.Logger))
			r.Post("/{id}/payments", reservationcontrollers.AddPayment(deps.Reservations, deps.Logger))
		})

		r.Route("/rooms", func(r chi.Router) {
			r.Get("/", roomcontrollers.List(deps.Rooms, deps.Logger))
			r.Get("/{id}/availability", roomcontrollers.Availability(deps.Reservations, deps.Logger))
		})

		r.Get("/room-types", roomcontrollers.ListTypes(deps.Rooms, deps.Logger))
	})

	return r
}
