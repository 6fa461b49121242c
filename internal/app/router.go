package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/Elias0099/examenes-api/internal/auth"
	"github.com/Elias0099/examenes-api/internal/observability"
	"github.com/Elias0099/examenes-api/internal/quiz/categories"
	"github.com/Elias0099/examenes-api/internal/quiz/exams"
	"github.com/Elias0099/examenes-api/internal/quiz/questions"
	"github.com/Elias0099/examenes-api/internal/users"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger            *slog.Logger
	Config            *Config
	Metrics           *observability.Metrics
	AuthHandler       *auth.Handler
	UsersHandler      *users.Handler
	CategoriesHandler *categories.Handler
	ExamsHandler      *exams.Handler
	QuestionsHandler  *questions.Handler
}

// NewRouter constructs the chi.Router with application defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)
	r.Use(params.Metrics.Middleware)

	r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	params.AuthHandler.MountRoutes(r)
	params.UsersHandler.MountCurrentUser(r)
	r.Route("/usuarios", params.UsersHandler.MountRoutes)
	r.Route("/categoria", params.CategoriesHandler.MountRoutes)
	r.Route("/examen", params.ExamsHandler.MountRoutes)
	r.Route("/pregunta", params.QuestionsHandler.MountRoutes)

	return r
}
