package routes

import (
	"net/http"

	"github.com/voyago/travel-agency-backend/internal/api/handlers"
	"github.com/voyago/travel-agency-backend/internal/api/middleware"
	"github.com/voyago/travel-agency-backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	destinationHandler *handlers.DestinationHandler
	reservationHandler *handlers.ReservationHandler
	dashboardHandler   *handlers.DashboardHandler
	userHandler        *handlers.UserHandler

	jwtSecret string
	metrics   *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	destinationHandler *handlers.DestinationHandler,
	reservationHandler *handlers.ReservationHandler,
	dashboardHandler *handlers.DashboardHandler,
	userHandler *handlers.UserHandler,
	jwtSecret string,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux: http.NewServeMux(),

		destinationHandler: destinationHandler,
		reservationHandler: reservationHandler,
		dashboardHandler:   dashboardHandler,
		userHandler:        userHandler,

		jwtSecret: jwtSecret,
		metrics:   metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Destination catalog (public)
	r.mux.HandleFunc("GET /api/destinations", r.destinationHandler.List)
	r.mux.HandleFunc("GET /api/destinations/{id}", r.destinationHandler.Get)

	// Reservation endpoints
	r.mux.HandleFunc("GET /api/reservations/quote", r.reservationHandler.Quote)
	r.mux.HandleFunc("POST /api/reservations", r.reservationHandler.Create)
	r.mux.HandleFunc("GET /api/reservations", r.reservationHandler.ListMine)
	r.mux.HandleFunc("POST /api/reservations/{id}/cancel", r.reservationHandler.Cancel)

	// Client-submitted activity journal entries
	r.mux.HandleFunc("POST /api/logs", r.dashboardHandler.RecordActivity)

	// Operator endpoints; role checks happen in the services
	r.mux.HandleFunc("GET /api/admin/reservations", r.reservationHandler.ListAll)
	r.mux.HandleFunc("PATCH /api/admin/reservations/{id}/status", r.reservationHandler.SetStatus)

	r.mux.HandleFunc("GET /api/admin/dashboard/kpis", r.dashboardHandler.KPIs)
	r.mux.HandleFunc("GET /api/admin/dashboard/revenue", r.dashboardHandler.MonthlyRevenue)
	r.mux.HandleFunc("GET /api/admin/dashboard/destinations", r.dashboardHandler.TopDestinations)
	r.mux.HandleFunc("GET /api/admin/dashboard/activity", r.dashboardHandler.RecentActivity)
	r.mux.HandleFunc("GET /api/admin/dashboard/reservations", r.dashboardHandler.RecentReservations)

	r.mux.HandleFunc("GET /api/admin/users", r.userHandler.List)
	r.mux.HandleFunc("GET /api/admin/users/{id}", r.userHandler.Get)
	r.mux.HandleFunc("PATCH /api/admin/users/{id}/role", r.userHandler.SetRole)
	r.mux.HandleFunc("PATCH /api/admin/users/{id}/status", r.userHandler.SetStatus)

	// Apply middleware in reverse order (last middleware wraps first)
	// CORS must be outermost so error responses also get CORS headers.
	var handler http.Handler = r.mux
	handler = middleware.AuthMiddleware(r.jwtSecret)(handler)
	handler = middleware.LoggingMiddleware(handler)
	if r.metrics != nil {
		handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	}
	handler = middleware.CORSMiddleware(handler)

	return handler
}
