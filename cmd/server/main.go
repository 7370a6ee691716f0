package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/pmfaria/shopfloor-api/internal/config"
	"github.com/pmfaria/shopfloor-api/internal/database"
	"github.com/pmfaria/shopfloor-api/internal/handlers"
	"github.com/pmfaria/shopfloor-api/internal/middleware"
	"github.com/pmfaria/shopfloor-api/internal/repository"
	"github.com/pmfaria/shopfloor-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize repositories
	db := database.GetDB()
	orderRepo := repository.NewOrderRepository(db)
	machineRepo := repository.NewMachineRepository(db)
	userRepo := repository.NewUserRepository(db)
	operationRepo := repository.NewOperationRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	// Initialize services
	orderService := services.NewOrderService(orderRepo)
	machineService := services.NewMachineService(machineRepo)
	userService := services.NewUserService(userRepo)
	operationService := services.NewOperationService(operationRepo, orderRepo, machineRepo)
	taskService := services.NewTaskService(taskRepo, operationRepo, userRepo)

	// Initialize handlers
	orderHandler := handlers.NewOrderHandler(orderService, operationService)
	machineHandler := handlers.NewMachineHandler(machineService)
	userHandler := handlers.NewUserHandler(userService)
	operationHandler := handlers.NewOperationHandler(operationService, taskService)
	taskHandler := handlers.NewTaskHandler(taskService)

	// Initialize Gin router
	r := gin.Default()

	// The shopfloor terminals and the planning frontend live on other
	// origins, so CORS stays wide open.
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
	}))
	r.Use(middleware.RequestID())

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Shopfloor Orders API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		orders := api.Group("/orders")
		{
			orders.GET("", orderHandler.ListOrders)
			orders.POST("", orderHandler.CreateOrder)
			orders.GET("/:order_number", orderHandler.GetOrder)
			orders.PATCH("/:order_number", orderHandler.UpdateOrder)
			orders.DELETE("/:order_number", orderHandler.DeleteOrder)
			orders.GET("/:order_number/operations", orderHandler.ListOrderOperations)
			orders.GET("/:order_number/operations/:operation_code", orderHandler.GetOrderOperation)
		}

		machines := api.Group("/machines")
		{
			machines.GET("", machineHandler.ListMachines)
			machines.POST("", machineHandler.CreateMachine)
			machines.GET("/:id", machineHandler.GetMachine)
			machines.PATCH("/:id", machineHandler.UpdateMachine)
			machines.DELETE("/:id", machineHandler.DeleteMachine)
		}

		operations := api.Group("/operations")
		{
			operations.POST("", operationHandler.CreateOperation)
			operations.GET("/:id", operationHandler.GetOperation)
			operations.PATCH("/:id", operationHandler.UpdateOperation)
			operations.DELETE("/:id", operationHandler.DeleteOperation)
			operations.GET("/:id/pieces", operationHandler.GetOperationPieces)
			operations.GET("/:id/tasks", operationHandler.ListOperationTasks)
			operations.POST("/:id/tasks", taskHandler.CreateTask)
		}

		tasks := api.Group("/tasks")
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.PATCH("/:id", taskHandler.UpdateTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
		}

		users := api.Group("/users")
		{
			users.GET("", userHandler.ListUsers)
			users.POST("", userHandler.CreateUser)
			users.GET("/:id", userHandler.GetUser)
			users.PATCH("/:id", userHandler.UpdateUser)
			users.DELETE("/:id", userHandler.DeleteUser)
		}
	}

	// Start server
	log.Printf("Server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
