package main

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/mkravets/business-management-api/internal/config"
	"github.com/mkravets/business-management-api/internal/database"
	"github.com/mkravets/business-management-api/internal/handlers"
	"github.com/mkravets/business-management-api/internal/middleware"
	"github.com/mkravets/business-management-api/internal/models"
	"github.com/mkravets/business-management-api/internal/repository"
	"github.com/mkravets/business-management-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Configure logging
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Register the team role validator on gin's binding engine
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.RegisterValidation("teamrole", func(fl validator.FieldLevel) bool {
			return models.TeamRole(fl.Field().String()).Valid()
		}); err != nil {
			logrus.Fatalf("Failed to register teamrole validator: %v", err)
		}
	}

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		logrus.Fatalf("Failed to run migrations: %v", err)
	}
	if err := database.AddIndexes(database.GetDB()); err != nil {
		logrus.Fatalf("Failed to add indexes: %v", err)
	}

	// Connect to Redis (token revocation list)
	if err := database.ConnectRedis(cfg); err != nil {
		logrus.Fatalf("Failed to connect to redis: %v", err)
	}

	db := database.GetDB()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	evalRepo := repository.NewEvaluationRepository(db)
	meetingRepo := repository.NewMeetingRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	blacklist := repository.NewTokenBlacklist(database.GetRedis())

	// Initialize services
	tokenService := services.NewTokenService(cfg.SecretKey, cfg.TokenTTLMinutes, blacklist)
	authService := services.NewAuthService(userRepo, tokenService)
	userService := services.NewUserService(userRepo)
	teamService := services.NewTeamService(teamRepo, userRepo, evalRepo)
	taskService := services.NewTaskService(taskRepo, teamRepo, evalRepo)
	meetingService := services.NewMeetingService(meetingRepo, teamRepo)
	commentService := services.NewCommentService(commentRepo, taskRepo)
	calendarService := services.NewCalendarService(taskRepo, meetingRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	teamHandler := handlers.NewTeamHandler(teamService)
	taskHandler := handlers.NewTaskHandler(taskService)
	meetingHandler := handlers.NewMeetingHandler(meetingService)
	commentHandler := handlers.NewCommentHandler(commentService)
	calendarHandler := handlers.NewCalendarHandler(calendarService)
	healthHandler := handlers.NewHealthHandler()

	// Initialize Gin router
	r := gin.New()
	r.Use(middleware.RequestLogger(), gin.Recovery())

	// Health check endpoint
	r.GET("/health", healthHandler.Check)

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
		}

		// Profile routes (authenticated)
		users := api.Group("/users")
		users.Use(middleware.RequireAuth(authService))
		{
			users.GET("", userHandler.GetCurrentUser)
			users.PUT("", userHandler.UpdateUser)
			users.DELETE("", userHandler.DeleteUser)
		}

		// Team routes (authenticated)
		teams := api.Group("/teams")
		teams.Use(middleware.RequireAuth(authService))
		{
			teams.POST("", teamHandler.CreateTeam)
			teams.GET("", teamHandler.GetMyTeams)

			// Routes on one team (member guard, manager guard where
			// the operation mutates shared state)
			team := teams.Group("/:id")
			team.Use(middleware.RequireTeamMember())
			{
				team.GET("", teamHandler.GetMembers)
				team.GET("/avg-score", teamHandler.GetAverageScore)

				team.POST("/users", middleware.RequireTeamManager(), teamHandler.AssignRole)
				team.DELETE("/users/:user_id", middleware.RequireTeamManager(), teamHandler.RemoveMember)

				team.POST("/tasks", middleware.RequireTeamManager(), taskHandler.CreateTask)
				team.GET("/tasks", taskHandler.GetTeamTasks)
				team.GET("/tasks/mine", taskHandler.GetMyTasks)
				team.PUT("/tasks/:task_id", taskHandler.UpdateTask)
				team.PUT("/tasks/:task_id/score", middleware.RequireTeamManager(), taskHandler.EvaluateTask)
				team.DELETE("/tasks/:task_id", taskHandler.DeleteTask)

				team.POST("/tasks/:task_id/comments", commentHandler.CreateComment)
				team.GET("/tasks/:task_id/comments", commentHandler.GetTaskComments)
				team.DELETE("/tasks/:task_id/comments/:comment_id", commentHandler.DeleteComment)

				team.POST("/meetings", middleware.RequireTeamManager(), meetingHandler.CreateMeeting)
				team.GET("/meetings", meetingHandler.GetTeamMeetings)
				team.GET("/meetings/mine", meetingHandler.GetMyMeetings)
				team.PUT("/meetings/:meeting_id", middleware.RequireTeamManager(), meetingHandler.UpdateMeeting)
				team.DELETE("/meetings/:meeting_id", middleware.RequireTeamManager(), meetingHandler.DeleteMeeting)

				team.GET("/calendar/date", calendarHandler.GetByDate)
				team.GET("/calendar/month", calendarHandler.GetByMonth)
			}
		}
	}

	// Start server
	logrus.Infof("Server starting on :%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		logrus.Fatalf("Failed to start server: %v", err)
	}
}
