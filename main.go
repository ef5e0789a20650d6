package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/princinho/taskbackend/config"
	"github.com/princinho/taskbackend/controllers"
	"github.com/princinho/taskbackend/database"
	"github.com/princinho/taskbackend/middleware"
	"github.com/princinho/taskbackend/observability"
	"github.com/princinho/taskbackend/services"
	"github.com/princinho/taskbackend/stores"
	"github.com/princinho/taskbackend/utils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const serviceName = "taskapi"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := observability.NewLogger(cfg.Env)
	slog.SetDefault(logger)

	ctx := context.Background()

	shutdownTracer, err := observability.InitTracer(ctx, observability.TracingConfig{
		ServiceName: serviceName,
		Environment: cfg.Env,
		Endpoint:    cfg.OTLPEndpoint,
		SampleRatio: cfg.TraceSampleRatio,
	})
	if err != nil {
		logger.Error("tracer init failed", "err", err)
		os.Exit(1)
	}

	client, err := database.Connect(ctx, cfg.MongoURI, logger)
	if err != nil {
		logger.Error("database connect failed", "err", err)
		os.Exit(1)
	}
	db := client.Database(cfg.DatabaseName)

	if err := database.EnsureIndexes(ctx, db); err != nil {
		logger.Error("index bootstrap failed", "err", err)
		os.Exit(1)
	}

	// seeding dev user
	if err := utils.SeedUser(ctx, db.Collection(database.UsersCollection), cfg.SeedUsername, cfg.SeedPassword, cfg.BcryptCost, logger); err != nil {
		logger.Error("seed user failed", "err", err)
		os.Exit(1)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := observability.NewMetrics(reg)

	router := newRouter(cfg, client, db, metrics, reg, logger)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	logger.Info("server shutting down")

	shutdownCtx, cancel := config.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "err", err)
	}
	database.Disconnect(shutdownCtx, client, logger)
	if err := shutdownTracer(shutdownCtx); err != nil {
		logger.Error("tracer shutdown failed", "err", err)
	}
	logger.Info("shutdown complete")
}

func newRouter(cfg config.Config, client *mongo.Client, db *mongo.Database, metrics *observability.Metrics, reg *prometheus.Registry, logger *slog.Logger) *gin.Engine {
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	tokens := services.NewTokenService(cfg.JWTSecret, cfg.JWTRefreshSecret, cfg.AccessTTL(), cfg.RefreshTTL())
	authService := services.NewAuthService(stores.NewUserStore(db, metrics), tokens, cfg.BcryptCost, logger)
	taskService := services.NewTaskService(stores.NewTaskStore(db, metrics), logger)

	cookie := utils.CookieOptions{
		Secure: cfg.CookieSecure,
		Domain: cfg.CookieDomain,
		MaxAge: cfg.RefreshTTL(),
	}
	authController := controllers.NewAuthController(authService, cookie, cfg.RequestTimeout(), logger)
	taskController := controllers.NewTaskController(taskService, cfg.RequestTimeout(), logger)
	health := controllers.NewHealthController(func(ctx context.Context) error {
		return database.Ping(ctx, client)
	})

	allowedOrigins := cfg.Origins()
	logger.Info("cors configured", "origins", cfg.AllowedOrigins)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(serviceName))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(logger))
	r.Use(metrics.GinMiddleware())
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return allowedOrigins[origin]
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/healthz", health.Healthz())
	r.GET("/readyz", health.Readyz())
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	auth := r.Group("/auth")
	{
		auth.POST("/signup", authController.SignUp())
		auth.POST("/signin", authController.SignIn())
		auth.POST("/refresh", authController.Refresh())
	}

	task := r.Group("/task")
	task.Use(middleware.AuthMiddleware(tokens))
	{
		task.POST("", taskController.CreateTask())
		task.GET("", taskController.GetTasks())
		task.GET("/:id", taskController.GetTask())
		task.PUT("/:id", taskController.UpdateTask())
		task.DELETE("/:id", taskController.DeleteTask())
	}

	return r
}
