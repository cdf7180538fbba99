package httpapi

import (
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"careerpath/internal/http/handlers"
	"careerpath/internal/middleware"
)

// NewRouter wires all routes. Everything under /api except health and the
// credential endpoints requires a valid session.
func NewRouter(app *handlers.App) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(app.Logger))
	r.Use(middleware.CORS(app.Cfg.CORSOrigins))
	r.Use(middleware.I18N(app.Cfg.DefaultLocale))
	r.Use(middleware.RateLimit(app.Cfg.RateLimitPerMin, time.Minute))
	r.Use(chimw.Timeout(60 * time.Second))

	r.Route("/v1", func(r chi.Router) {
		r.Get("/healthz", app.Health)
		r.Post("/auth/signup", app.Signup)
		r.Post("/auth/login", app.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthSession(app.Cfg.JWTSecret))

			r.Post("/auth/logout", app.Logout)
			r.Get("/auth/me", app.Me)

			r.Put("/profile", app.ProfileUpdate)
			r.Post("/user/credits", app.CreditsDebit)

			r.Route("/roadmap", func(r chi.Router) {
				r.Post("/generate", app.RoadmapGenerate)
				r.Get("/status", app.RoadmapStatus)
				r.Get("/", app.RoadmapFetch)
				r.Put("/nodes/{nodeID}/progress", app.ProgressUpdate)
			})

			r.Route("/resume", func(r chi.Router) {
				r.Get("/", app.ResumeGet)
				r.Put("/", app.ResumeSave)
				r.Post("/improve", app.ResumeImprove)
			})

			r.Route("/cover-letters", func(r chi.Router) {
				r.Post("/", app.CoverLetterCreate)
				r.Get("/", app.CoverLetterList)
				r.Get("/{letterID}", app.CoverLetterGet)
				r.Delete("/{letterID}", app.CoverLetterDelete)
			})

			r.Route("/assessments", func(r chi.Router) {
				r.Post("/", app.AssessmentCreate)
				r.Get("/", app.AssessmentList)
			})

			r.Route("/chat", func(r chi.Router) {
				r.Post("/", app.ChatSend)
				r.Get("/", app.ChatTranscript)
			})

			r.Get("/jobs/suggestions", app.JobSuggestions)

			r.Route("/activity", func(r chi.Router) {
				r.Post("/", app.ActivityCreate)
				r.Get("/", app.ActivityList)
			})

			r.Get("/stats", app.StatsSummary)
		})
	})

	return r
}
