package main

import (
	"context"
	"log"
	"time"

	"e-kasir/internal/ai"
	"e-kasir/internal/auth"
	"e-kasir/internal/cart"
	"e-kasir/internal/catalog"
	"e-kasir/internal/config"
	"e-kasir/internal/database"
	"e-kasir/internal/handlers"
	"e-kasir/internal/ledger"
	"e-kasir/internal/logger"
	"e-kasir/internal/metrics"
	"e-kasir/internal/middleware"
	"e-kasir/internal/settings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	if err := logger.Init(cfg.Server.Env); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	zlog := logger.Get()

	auth.SetSecret(cfg.Auth.JWTSecret)

	db, err := database.Connect(cfg.DB)
	if err != nil {
		zlog.Fatal("database connection failed", zap.Error(err))
	}

	// Redis is optional: with it, open cart sessions survive a restart
	// of the register process. Without it, drafts live in memory only.
	var redisClient *redis.Client
	var draftStore cart.Store = cart.NewMemoryStore()
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			zlog.Warn("redis unreachable, drafts stay in memory", zap.Error(err))
			redisClient = nil
		} else {
			draftStore = cart.NewRedisStore(redisClient)
			zlog.Info("draft carts persisted to redis", zap.String("addr", cfg.Redis.Addr))
		}
		cancel()
	}

	cat := catalog.New(db)
	carts := cart.NewManager(draftStore)
	led := ledger.New(db)
	set := settings.New(db)
	rep := database.NewReports(db)

	var agent *ai.Agent
	if cfg.AI.GeminiAPIKey != "" {
		agent = ai.NewAgent(cat, rep, cfg.AI.GeminiAPIKey)
	}

	h := handlers.New(cfg, db, redisClient, cat, carts, led, set, rep, agent)

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(metrics.Middleware())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.Server.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "online"}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.POST("/login", h.Login)
	r.Static("/uploads", "./uploads")

	// Only opens if we explicitly allow it in .env
	if cfg.Server.AllowRegistration {
		r.POST("/register", h.Register)
		zlog.Warn("registration route is OPEN, disable this in production")
	} else {
		zlog.Info("registration route is disabled")
	}

	// --- PROTECTED ROUTES ---
	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware())
	{
		// CASHIER & ADMIN
		api.GET("/products", h.GetProducts)
		api.GET("/products/scan/:barcode", h.ScanProduct)

		api.GET("/carts", h.GetCarts)
		api.POST("/carts", h.CreateCart)
		api.PUT("/carts/:id/activate", h.ActivateCart)
		api.DELETE("/carts/:id", h.DeleteCart)
		api.POST("/carts/:id/items", h.AddCartItem)
		api.PUT("/carts/:id/items/:productID", h.SetCartItemQuantity)
		api.DELETE("/carts/:id/items/:productID", h.RemoveCartItem)
		api.DELETE("/carts/:id/items", h.ClearCart)

		api.POST("/checkout", h.Checkout)
		api.GET("/checkout/suggestions", h.QuickCash)

		api.GET("/transactions", h.GetTransactions)
		api.GET("/transactions/:id", h.GetTransaction)

		api.GET("/stock", h.GetStock)
		api.GET("/stock/low", h.GetLowStock)

		api.GET("/settings", h.GetSettings)
		api.GET("/sync/status", h.GetSyncStatus)

		// ADMIN ONLY
		admin := api.Group("/")
		admin.Use(middleware.RequireRole("admin"))
		{
			admin.POST("/ask", h.AskAI)

			admin.POST("/upload", h.UploadImage)
			admin.POST("/products", h.AddProduct)
			admin.PUT("/products/:id", h.UpdateProduct)
			admin.DELETE("/products/:id", h.DeleteProduct)
			admin.POST("/stock/:id/adjust", h.AdjustStock)

			admin.PUT("/transactions/:id", h.UpdateTransaction)

			admin.GET("/reports", h.GetSalesReport)
			admin.GET("/reports/export", h.ExportSalesReport)

			admin.PUT("/settings", h.SaveSettings)
		}
	}

	zlog.Info("server starting", zap.String("base_url", cfg.Server.BaseURL))
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		zlog.Fatal("server failed to start", zap.Error(err))
	}
}
