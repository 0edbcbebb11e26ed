package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/hustudent/backend/controllers"
	"github.com/hustudent/backend/database"
	"github.com/hustudent/backend/docs"
	"github.com/hustudent/backend/middleware"
	"github.com/hustudent/backend/rsvp"
	"github.com/hustudent/backend/websocket"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Hustudent API
// @version         1.0
// @description     API Server for the Hustudent study platform
// @host            localhost:8080
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Initialize database
	database.Connect()
	database.Migrate()

	// RSVP records live in memory for the lifetime of the process
	rsvpStore := rsvp.NewStore()
	rsvpController := controllers.NewRSVPController(rsvpStore)

	// Set up Swagger info
	docs.SwaggerInfo.Title = "Hustudent API"
	docs.SwaggerInfo.Description = "API Server for the Hustudent study platform"
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.Host = "localhost:" + os.Getenv("PORT")
	if docs.SwaggerInfo.Host == "localhost:" {
		docs.SwaggerInfo.Host = "localhost:8080"
	}
	docs.SwaggerInfo.BasePath = "/"
	docs.SwaggerInfo.Schemes = []string{"http"}

	// Set up router
	router := gin.Default()

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Authentication routes
	auth := router.Group("/api")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
	}

	// Protected routes
	api := router.Group("/api")
	api.Use(middleware.JWTAuth())
	{
		// Study group routes
		api.GET("/groups", controllers.GetGroups)
		api.POST("/groups", controllers.CreateGroup)
		api.GET("/groups/:id", controllers.GetGroup)
		api.PUT("/groups/:id", controllers.UpdateGroup)
		api.DELETE("/groups/:id", controllers.DeleteGroup)
		api.POST("/groups/:id/join", controllers.JoinGroup)
		api.POST("/groups/:id/leave", controllers.LeaveGroup)
		api.GET("/groups/:id/unread", controllers.GetUnreadCount)

		// Study session routes
		api.GET("/groups/:id/sessions", controllers.GetSessions)
		api.POST("/groups/:id/sessions", controllers.CreateSession)
		api.GET("/sessions/:id", controllers.GetSession)

		// RSVP routes
		api.POST("/sessions/:id/rsvp", rsvpController.Submit)
		api.GET("/sessions/:id/rsvps", rsvpController.List)
		api.GET("/sessions/:id/attendees/count", rsvpController.AttendeeCount)

		// Message routes
		api.GET("/messages", controllers.GetMessages)
		api.POST("/messages", controllers.CreateMessage)

		// Flashcard routes
		api.GET("/decks", controllers.GetDecks)
		api.POST("/decks", controllers.CreateDeck)
		api.GET("/decks/:id", controllers.GetDeck)
		api.DELETE("/decks/:id", controllers.DeleteDeck)
		api.POST("/decks/:id/cards", controllers.CreateCard)
		api.DELETE("/decks/:id/cards/:cardId", controllers.DeleteCard)

		// Quiz routes
		api.GET("/groups/:id/quizzes", controllers.GetQuizzes)
		api.POST("/groups/:id/quizzes", controllers.CreateQuiz)
		api.GET("/quizzes/:id", controllers.GetQuiz)
		api.POST("/quizzes/:id/attempts", controllers.SubmitAttempt)
		api.GET("/quizzes/:id/attempts", controllers.GetAttempts)

		// Q&A routes
		api.GET("/questions", controllers.GetQuestions)
		api.POST("/questions", controllers.CreateQuestion)
		api.GET("/questions/:id", controllers.GetQuestion)
		api.POST("/questions/:id/answers", controllers.CreateAnswer)
		api.POST("/questions/:id/answers/:answerId/accept", controllers.AcceptAnswer)

		// Friend routes
		api.GET("/friends", controllers.GetFriends)
		api.POST("/friends/requests", controllers.SendFriendRequest)
		api.GET("/friends/requests/pending", controllers.GetPendingFriendRequests)
		api.POST("/friends/requests/respond", controllers.RespondToFriendRequest)

		// Notification routes
		api.GET("/notifications", controllers.GetNotifications)
		api.PUT("/notifications/:id/read", controllers.MarkNotificationRead)
	}

	// WebSocket route
	router.GET("/ws", websocket.HandleConnection)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server running on port %s", port)
	log.Printf("Swagger documentation available at http://localhost:%s/swagger/index.html", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
