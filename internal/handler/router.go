package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/taskboard/taskboard-go/internal/middleware"
	"github.com/taskboard/taskboard-go/internal/model"
	"github.com/taskboard/taskboard-go/internal/service"
)

// Deps holds everything the HTTP surface needs.
type Deps struct {
	Auth     *service.AuthService
	Projects *service.ProjectService
	Tasks    *service.TaskService
	Tokens   middleware.TokenVerifier
	Logger   *slog.Logger

	// BasePath prefixes every route, e.g. "/api". Empty mounts at the root.
	BasePath string
	// CORSOrigins lists allowed origins. Empty reflects any origin.
	CORSOrigins []string
	// TrustProxy takes the client address from X-Forwarded-For / X-Real-IP.
	// Only enable it behind a proxy that overwrites those headers.
	TrustProxy bool
	// AuthRateLimit is requests per second per IP on register and login.
	// Zero disables limiting.
	AuthRateLimit float64
	AuthRateBurst int
}

// NewRouter builds the HTTP handler. ctx bounds background work such as rate
// limiter eviction.
func NewRouter(ctx context.Context, d Deps) http.Handler {
	log := d.Logger
	if log == nil {
		log = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	if d.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(middleware.Logger(log))
	r.Use(middleware.Recoverer(log))
	r.Use(cors.Handler(corsOptions(d.CORSOrigins)))

	auth := NewAuthHandler(d.Auth)
	projects := NewProjectHandler(d.Projects)
	tasks := NewTaskHandler(d.Tasks)
	authenticate := middleware.Authenticate(d.Tokens)

	routes := func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
		})

		r.Route("/auth", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(middleware.RateLimit(ctx, d.AuthRateLimit, d.AuthRateBurst))
				r.Post("/register", Pipeline(log, auth.Register, bindBody[model.RegisterRequest]()))
				r.Post("/login", Pipeline(log, auth.Login, bindBody[model.LoginRequest]()))
			})
			r.Get("/me", Pipeline(log, auth.Me, authenticate))
		})

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", Pipeline(log, projects.List, authenticate, bindQuery[model.ListProjectsQuery]()))
			r.Post("/", Pipeline(log, projects.Create, authenticate, bindBody[model.CreateProjectRequest]()))
			r.Get("/{projectID}", Pipeline(log, projects.Get, authenticate))
			r.Put("/{projectID}", Pipeline(log, projects.Update, authenticate, bindBody[model.UpdateProjectRequest]()))
			r.Delete("/{projectID}", Pipeline(log, projects.Delete, authenticate))

			r.Route("/{projectID}/tasks", func(r chi.Router) {
				r.Get("/", Pipeline(log, tasks.List, authenticate, bindQuery[model.ListTasksQuery]()))
				r.Post("/", Pipeline(log, tasks.Create, authenticate, bindBody[model.CreateTaskRequest]()))
				r.Get("/{taskID}", Pipeline(log, tasks.Get, authenticate))
				r.Put("/{taskID}", Pipeline(log, tasks.Update, authenticate, bindBody[model.UpdateTaskRequest]()))
				r.Delete("/{taskID}", Pipeline(log, tasks.Delete, authenticate))
			})
		})
	}

	if d.BasePath == "" || d.BasePath == "/" {
		routes(r)
	} else {
		r.Route(d.BasePath, routes)
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse("Not found"))
	})

	return r
}

func corsOptions(origins []string) cors.Options {
	opts := cors.Options{
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if len(origins) == 0 {
		opts.AllowOriginFunc = func(_ *http.Request, _ string) bool { return true }
	} else {
		opts.AllowedOrigins = origins
	}
	return opts
}
