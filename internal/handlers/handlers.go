package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"dev-grove/internal/database"
	"dev-grove/internal/github"
	"dev-grove/internal/middleware"
	"dev-grove/internal/utils"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// Server holds all handler dependencies
type Server struct {
	DB      database.Adapter
	Tokens  *middleware.TokenService
	Metrics *utils.MetricsCollector
	Github  *github.Client
	Logger  *slog.Logger
}

// NewServer creates a new Server instance with the given components
func NewServer(
	db database.Adapter,
	tokens *middleware.TokenService,
	metrics *utils.MetricsCollector,
	githubClient *github.Client,
	logger *slog.Logger,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		DB:      db,
		Tokens:  tokens,
		Metrics: metrics,
		Github:  githubClient,
		Logger:  logger,
	}
}

// Router builds the full HTTP surface. Protected subtrees sit behind
// the token service's Auth gate; everything else is public.
func (s *Server) Router(corsConfig *middleware.CORSConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(
		chimiddleware.RequestID,
		chimiddleware.RealIP,
		chimiddleware.Recoverer,
		chimiddleware.Timeout(30*time.Second),
		middleware.CORSMiddleware(corsConfig),
		middleware.Metrics(s.Metrics),
	)

	r.Get("/health", s.HandleHealth)

	r.Post("/identities", s.HandleRegister)
	r.Post("/sessions", s.HandleLogin)
	r.With(s.Tokens.Auth).Get("/sessions", s.HandleCurrentUser)

	r.Route("/posts", func(r chi.Router) {
		r.Use(s.Tokens.Auth)
		r.Get("/", s.HandleGetPosts)
		r.Post("/", s.HandleCreatePost)
		r.Get("/{postID}", s.HandleGetPost)
		r.Delete("/{postID}", s.HandleDeletePost)
		r.Put("/like/{postID}", s.HandleLikePost)
		r.Put("/unlike/{postID}", s.HandleUnlikePost)
		r.Post("/comment/{postID}", s.HandleAddComment)
		r.Delete("/comment/{postID}/{commentID}", s.HandleDeleteComment)
	})

	r.Route("/profiles", func(r chi.Router) {
		r.Get("/", s.HandleGetProfiles)
		r.Get("/user/{userID}", s.HandleGetProfileByUser)
		r.Get("/github/{username}", s.HandleGithubRepos)

		r.Group(func(r chi.Router) {
			r.Use(s.Tokens.Auth)
			r.Post("/", s.HandleUpsertProfile)
			r.Get("/me", s.HandleMyProfile)
			r.Delete("/", s.HandleDeleteProfile)
			r.Put("/experience", s.HandleAddExperience)
			r.Delete("/experience/{entryID}", s.HandleDeleteExperience)
			r.Put("/education", s.HandleAddEducation)
			r.Delete("/education/{entryID}", s.HandleDeleteEducation)
		})
	})

	return r
}

// HandleHealth reports uptime and request counters from the metrics
// collector.
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"uptime":   s.Metrics.Uptime().String(),
		"requests": s.Metrics.RequestCount(),
		"errors":   s.Metrics.ErrorCount(),
	})
}
