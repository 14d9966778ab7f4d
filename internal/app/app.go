package app

import (
	"database/sql"
	"fmt"
	"log"

	"tablebook/internal/cache"
	"tablebook/internal/config"
	"tablebook/internal/handlers"
	"tablebook/internal/pdf"
	"tablebook/internal/repositories"
	"tablebook/internal/routes"
	"tablebook/internal/services"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"

	_ "tablebook/docs"
)

func Run() {
	cfg := config.LoadConfig()

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("Ошибка подключения к БД: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Ошибка закрытия БД: %v", err)
		}
	}()

	// === Repos ===
	userRepo := repositories.NewUserRepository(db)
	restaurantRepo := repositories.NewRestaurantRepository(db)
	tableRepo := repositories.NewTableRepository(db)
	reservationRepo := repositories.NewReservationRepository(db)
	foodRepo := repositories.NewFoodRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)

	// === Services ===
	authService := services.NewAuthService(cfg.JWT.Secret)
	userService := services.NewUserService(userRepo, authService)

	var emailService services.EmailService
	if cfg.Email.Enabled {
		emailService = services.NewEmailService(
			cfg.Email.SMTPHost,
			cfg.Email.SMTPPort,
			cfg.Email.SMTPUser,
			cfg.Email.SMTPPassword,
			cfg.Email.FromEmail,
		)
	}
	// nil — уведомления в Telegram выключены
	telegram := services.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ManagersChatID)

	restaurantService := services.NewRestaurantService(restaurantRepo)
	tableService := services.NewTableService(tableRepo, restaurantRepo)
	foodService := services.NewFoodService(foodRepo)
	reservationService := services.NewReservationService(
		reservationRepo,
		tableRepo,
		foodRepo,
		userRepo,
		emailService,
		telegram,
	)

	ttlStore := cache.NewMemoryStore()
	bank := services.NewBankSimulator()
	paymentService := services.NewPaymentService(
		paymentRepo,
		reservationRepo,
		ttlStore,
		bank,
		cfg.Payments.DefaultCurrency,
	)

	receiptGen := pdf.NewReceiptGenerator(cfg.Payments.ReceiptsDir, cfg.Payments.FontPath)

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(userService, authService)
	restaurantHandler := handlers.NewRestaurantHandler(restaurantService)
	tableHandler := handlers.NewTableHandler(tableService)
	reservationHandler := handlers.NewReservationHandler(reservationService)
	foodHandler := handlers.NewFoodHandler(foodService)
	paymentHandler := handlers.NewPaymentHandler(paymentService, receiptGen, cfg.Payments.ExposeSMSCode)
	managerHandler := handlers.NewManagerHandler(userService)
	adminHandler := handlers.NewAdminHandler(userService)

	// === Cron: протухшие pending-брони ===
	c := cron.New()
	if _, err := c.AddFunc("@daily", func() {
		if err := reservationService.ExpireStale(); err != nil {
			log.Printf("[cron][reservations] expire failed: %v", err)
		}
	}); err != nil {
		log.Printf("[cron] schedule failed: %v", err)
	}
	c.Start()
	defer c.Stop()

	// === Gin ===
	router := gin.Default()
	router.Use(corsMiddleware())

	// Роуты (JWT/RBAC — внутри SetupRoutes)
	routes.SetupRoutes(
		router,
		[]byte(cfg.JWT.Secret),
		userRepo,
		authHandler,
		restaurantHandler,
		tableHandler,
		reservationHandler,
		foodHandler,
		paymentHandler,
		managerHandler,
		adminHandler,
	)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Сервер запущен на %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("Ошибка запуска сервера: ", err)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
