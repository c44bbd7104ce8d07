package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/dashboard-api/internal/constants"
	apierrors "github.com/yukikurage/dashboard-api/internal/errors"
	"github.com/yukikurage/dashboard-api/internal/handlers"
	"github.com/yukikurage/dashboard-api/internal/middleware"
	"github.com/yukikurage/dashboard-api/internal/repository"
	"github.com/yukikurage/dashboard-api/internal/services"
	"go.uber.org/zap"
)

// RouterDependencies holds everything the HTTP layer needs.
type RouterDependencies struct {
	Logger         *zap.Logger
	AllowedOrigins []string

	UserRepo repository.UserRepository

	TokenService     *services.TokenService
	AuthService      *services.AuthService
	UserService      *services.UserService
	TeamService      *services.TeamService
	TaskService      *services.TaskService
	EventService     *services.EventService
	DashboardService *services.DashboardService
}

// NewRouter wires middleware and routes.
func NewRouter(deps *RouterDependencies) *gin.Engine {
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logger(deps.Logger),
		middleware.Recovery(),
		cors.New(cors.Config{
			AllowOrigins:     deps.AllowedOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", constants.HeaderRequestID},
			ExposeHeaders:    []string{constants.HeaderRequestID},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
	)

	authHandler := handlers.NewAuthHandler(deps.AuthService, deps.TokenService)
	userHandler := handlers.NewUserHandler(deps.UserService)
	teamHandler := handlers.NewTeamHandler(deps.TeamService)
	taskHandler := handlers.NewTaskHandler(deps.TaskService)
	eventHandler := handlers.NewEventHandler(deps.EventService)
	dashboardHandler := handlers.NewDashboardHandler(deps.DashboardService)

	requireAuth := middleware.RequireAuth(deps.TokenService, deps.UserRepo)

	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status":  "ok",
				"message": "Dashboard API is running",
			})
		})

		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		users := api.Group("/users")
		users.Use(requireAuth)
		{
			users.GET("/me", userHandler.GetMe)
			users.PUT("/me", userHandler.UpdateMe)
			users.GET("/search", userHandler.Search)
		}

		team := api.Group("/team-members")
		team.Use(requireAuth)
		{
			team.GET("", teamHandler.ListMembers)
			team.POST("", teamHandler.AddMember)
			team.DELETE("/:id", teamHandler.RemoveMember)
		}

		tasks := api.Group("/tasks")
		tasks.Use(requireAuth)
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.POST("/generate", taskHandler.GenerateTasks)
			tasks.PUT("/:id", taskHandler.UpdateTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
		}

		events := api.Group("/events")
		events.Use(requireAuth)
		{
			events.GET("", eventHandler.ListEvents)
			events.POST("", eventHandler.CreateEvent)
			events.PUT("/:id", eventHandler.UpdateEvent)
			events.DELETE("/:id", eventHandler.DeleteEvent)
		}

		api.GET("/dashboard/stats", requireAuth, dashboardHandler.GetStats)

		admin := api.Group("/admin")
		admin.Use(requireAuth, middleware.RequireAdmin(deps.TeamService))
		{
			admin.GET("/users", userHandler.ListUsers)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		apierrors.NotFound(c, "Route not found")
	})

	return r
}
