package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/AlenesK/howudoin/infrastructure/di"
	"github.com/AlenesK/howudoin/interfaces/http/rest/handlers"
	"github.com/AlenesK/howudoin/interfaces/http/rest/middleware"
	"github.com/AlenesK/howudoin/pkg/common"
	pkgerrors "github.com/AlenesK/howudoin/pkg/errors"
)

// Router creates and configures the HTTP router
type Router struct {
	container *di.Container
	logger    *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(container *di.Container) *Router {
	return &Router{
		container: container,
		logger:    container.Logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))

	if rt.container.Config.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"http://localhost:3000"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	// Health check
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	errorHandler := pkgerrors.NewErrorHandler(rt.logger, rt.container.Config.IsDevelopment())

	// Public auth endpoints
	authHandler := handlers.NewAuthHandler(rt.container.AuthService, errorHandler, rt.logger)
	router.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})

	authenticate := middleware.Authenticate(
		rt.container.JWTValidator,
		rt.container.IPRateLimiter,
		rt.container.UserRateLimiter,
		rt.logger,
	)

	// Friend endpoints
	router.Route("/friends", func(r chi.Router) {
		r.Use(authenticate)

		friendHandler := handlers.NewFriendHandler(rt.container.FriendService, errorHandler, rt.logger)
		r.Post("/add", friendHandler.SendRequest)
		r.Post("/accept", friendHandler.AcceptRequest)
		r.Get("/", friendHandler.ListFriends)
		r.Get("/pending", friendHandler.ListPendingRequests)
	})

	// Group endpoints
	router.Route("/groups", func(r chi.Router) {
		r.Use(authenticate)

		groupHandler := handlers.NewGroupHandler(rt.container.GroupService, errorHandler, rt.logger)
		r.Post("/create", groupHandler.CreateGroup)
		r.Post("/{groupID}/add-member", groupHandler.AddMember)
		r.Post("/{groupID}/send", groupHandler.SendMessage)
		r.Get("/{groupID}/messages", groupHandler.GetMessages)
		r.Get("/{groupID}/members", groupHandler.GetMembers)
		r.Get("/{groupID}", groupHandler.GetDetails)
		r.Get("/", groupHandler.ListGroups)
	})

	// Message endpoints
	router.Route("/messages", func(r chi.Router) {
		r.Use(authenticate)

		messageHandler := handlers.NewMessageHandler(rt.container.MessageService, errorHandler, rt.logger)
		r.Post("/send", messageHandler.Send)
		r.Get("/", messageHandler.GetConversation)
		r.Post("/{messageID}/read", messageHandler.MarkRead)
		r.Delete("/{messageID}", messageHandler.Delete)
		r.Get("/unread/count", messageHandler.UnreadCount)
		r.Get("/unread", messageHandler.Unread)
		r.Get("/recent", messageHandler.Recent)
	})

	return router
}

// healthCheck handles GET /health
func (rt *Router) healthCheck(w http.ResponseWriter, r *http.Request) {
	common.RespondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}

// readinessCheck handles GET /ready
func (rt *Router) readinessCheck(w http.ResponseWriter, r *http.Request) {
	common.RespondJSON(w, http.StatusOK, map[string]string{
		"status": "ready",
	})
}
