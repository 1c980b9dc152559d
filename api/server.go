/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

ROUTER: chi
  Chi was chosen for:
  - Lightweight and fast
  - Context-based
  - Middleware support
  - RESTful route patterns

MIDDLEWARE STACK:
  1. RequestID:  Unique ID per request for tracing
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. requestLogger: Structured request logging (logrus)
  4. CORS:       Cross-origin requests for the SPA
  5. auth.Middleware: Bearer-token guard on everything except /api/auth

SEE ALSO:
  - handlers.go: Handler implementations
  - auth/auth.go: Token middleware
  - cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	"github.com/carioca/estrategia/auth"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(h.Log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		// Public routes
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Register)
			r.Post("/login", h.Login)
		})

		// Everything below needs a bearer token
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(h.Secret))

			r.Route("/equipe", func(r chi.Router) {
				r.Get("/", h.ListMembers)
				r.Post("/", h.CreateMember)
				r.Get("/{id}", h.GetMember)
				r.Put("/{id}", h.UpdateMember)
				r.Delete("/{id}", h.DeleteMember)
			})

			r.Route("/tarefas", func(r chi.Router) {
				r.Get("/", h.ListTasks)
				r.Post("/", h.CreateTask)
				r.Get("/{id}", h.GetTask)
				r.Put("/{id}", h.UpdateTask)
				r.Delete("/{id}", h.DeleteTask)
			})

			r.Route("/acoes", func(r chi.Router) {
				r.Get("/", h.ListActions)
				r.Post("/", h.CreateAction)
				r.Get("/{id}", h.GetAction)
				r.Put("/{id}", h.UpdateAction)
				r.Delete("/{id}", h.DeleteAction)
			})

			r.Route("/consorcio", func(r chi.Router) {
				r.Get("/", h.ListConsortiumPlans)
				r.Post("/", h.CreateConsortiumPlan)
				r.Get("/pendentes", h.ConsortiumPending)
				r.Get("/{id}", h.GetConsortiumPlan)
				r.Put("/{id}", h.UpdateConsortiumPlan)
				r.Delete("/{id}", h.DeleteConsortiumPlan)
				r.Post("/{id}/confirmar", h.ConfirmConsortiumPayment)
			})

			r.Route("/tdv", func(r chi.Router) {
				r.Get("/", h.ListTDVPlans)
				r.Post("/", h.CreateTDVPlan)
				r.Get("/vencidas", h.TDVOverdue)
				r.Get("/pendentes", h.TDVUpcoming)
				r.Get("/{id}", h.GetTDVPlan)
				r.Put("/{id}", h.UpdateTDVPlan)
				r.Delete("/{id}", h.DeleteTDVPlan)
				r.Post("/{id}/confirmar", h.ConfirmTDVPeriod)
			})

			r.Route("/esteira", func(r chi.Router) {
				r.Get("/", h.ListDeals)
				r.Post("/", h.CreateDeal)
				r.Get("/painel", h.PipelinePanel)
				r.Get("/{id}", h.GetDeal)
				r.Put("/{id}", h.UpdateDeal)
				r.Delete("/{id}", h.DeleteDeal)
			})

			r.Route("/agenda", func(r chi.Router) {
				r.Get("/", h.ListAgendaEvents)
				r.Post("/", h.CreateAgendaEvent)
				r.Get("/{id}", h.GetAgendaEvent)
				r.Put("/{id}", h.UpdateAgendaEvent)
				r.Delete("/{id}", h.DeleteAgendaEvent)
			})

			r.Route("/feedback", func(r chi.Router) {
				r.Get("/", h.ListFeedbackEntries)
				r.Post("/", h.CreateFeedbackEntry)
				r.Get("/search", h.SearchFeedback)
				r.Get("/{id}", h.GetFeedbackEntry)
				r.Put("/{id}", h.UpdateFeedbackEntry)
				r.Delete("/{id}", h.DeleteFeedbackEntry)
			})

			r.Route("/widgets", func(r chi.Router) {
				r.Get("/tarefas", h.TasksWidget)
				r.Get("/acoes", h.ActionsWidget)
				r.Get("/consorcio", h.ConsortiumWidget)
				r.Get("/tdv", h.TDVWidget)
				r.Get("/aniversariantes", h.BirthdaysWidget)
				r.Get("/feedback", h.FeedbackWidget)
				r.Get("/equipe", h.TeamWidget)
			})

			r.Get("/dashday", h.Dashday)
		})
	})

	return r
}

// requestLogger emits one structured line per request.
func requestLogger(log *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.WithFields(logrus.Fields{
				"method":     r.Method,
				"path":       r.URL.Path,
				"status":     ww.Status(),
				"duration":   time.Since(start).String(),
				"request_id": middleware.GetReqID(r.Context()),
			}).Info("request")
		})
	}
}
