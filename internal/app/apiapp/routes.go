package apiapp

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	authsvc "github.com/Rudio1/api-meals/internal/services/auth"
	"github.com/Rudio1/api-meals/internal/services/content"
	httperrors "github.com/Rudio1/api-meals/internal/transport/http/errors"
	"github.com/Rudio1/api-meals/internal/transport/http/handlers"
)

type Dependencies struct {
	AuthService    *authsvc.Service
	PostService    *content.PostService
	CommentService *content.CommentService
	ReplyService   *content.ReplyService
	MealService    *content.MealService
	HealthChecks   map[string]handlers.Check
	APIKey         string
	Verbose        bool
	Logger         *zap.Logger
}

func RegisterRoutes(r chi.Router, deps Dependencies) {
	failures := handlers.Failures{Log: deps.Logger, Verbose: deps.Verbose}
	authHandler := handlers.NewAuthHandler(deps.AuthService, failures)
	healthHandler := handlers.NewHealthHandler(deps.HealthChecks)
	postsHandler := handlers.NewPostsHandler(deps.PostService, failures)
	commentsHandler := handlers.NewCommentsHandler(deps.CommentService, deps.ReplyService, failures)
	mealsHandler := handlers.NewMealsHandler(deps.MealService, failures)

	requireAuth := AuthMiddleware(deps.AuthService, deps.Logger)
	requireAdmin := AdminMiddleware(deps.AuthService, deps.Logger)

	r.Get("/healthz", healthHandler.Health)

	r.Route("/api", func(api chi.Router) {
		api.Use(APIKeyMiddleware(deps.APIKey, deps.Logger))

		api.Post("/users", authHandler.Register)
		api.Post("/sessions", authHandler.Login)
		api.Post("/sessions/refresh", authHandler.Refresh)
		api.Post("/users/login", authHandler.Login)
		api.Post("/users/refresh", authHandler.Refresh)
		api.With(requireAuth).Get("/users/me", authHandler.Me)

		api.Get("/meal-types", mealsHandler.ListTypes)
		api.Group(func(admin chi.Router) {
			admin.Use(requireAuth, requireAdmin)
			admin.Post("/meal-types", mealsHandler.CreateType)
			admin.Delete("/meal-types/{id}", mealsHandler.DeleteType)
		})

		api.Route("/meals", func(meals chi.Router) {
			meals.Use(requireAuth)
			meals.Get("/", mealsHandler.ListMine)
			meals.Post("/", mealsHandler.Create)
			meals.Get("/{id}", mealsHandler.Get)
			meals.Put("/{id}", mealsHandler.Update)
			meals.Delete("/{id}", mealsHandler.Delete)
		})

		api.Get("/posts", postsHandler.List)
		api.Get("/posts/slug/{slug}", postsHandler.GetBySlug)
		api.Get("/posts/{id}", postsHandler.Get)
		api.Get("/posts/{id}/comments", commentsHandler.ListByPost)
		api.With(requireAuth).Post("/posts", postsHandler.Create)
		api.With(requireAuth).Put("/posts/{id}", postsHandler.Update)
		api.With(requireAuth).Delete("/posts/{id}", postsHandler.Delete)

		api.Get("/comments/{id}", commentsHandler.Get)
		api.Get("/comments/{id}/replies", commentsHandler.ListReplies)
		api.With(requireAuth).Post("/comments", commentsHandler.Create)
		api.With(requireAuth).Put("/comments/{id}", commentsHandler.Update)
		api.With(requireAuth).Delete("/comments/{id}", commentsHandler.Delete)

		api.Get("/comment-replies/{id}", commentsHandler.GetReply)
		api.With(requireAuth).Post("/comment-replies", commentsHandler.CreateReply)
		api.With(requireAuth).Put("/comment-replies/{id}", commentsHandler.UpdateReply)
		api.With(requireAuth).Delete("/comment-replies/{id}", commentsHandler.DeleteReply)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httperrors.Write(w, http.StatusNotFound, httperrors.APIError{
			Code:    "ROUTE_NOT_FOUND",
			Message: "route not found",
		})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		httperrors.Write(w, http.StatusMethodNotAllowed, httperrors.APIError{
			Code:    "METHOD_NOT_ALLOWED",
			Message: "method not allowed",
		})
	})
}
