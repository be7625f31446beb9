package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"github.com/wyfcoding/pkg/logging"
	"golang.org/x/sync/errgroup"
	gorm_mysql "gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/wyfcoding/dealflow/internal/deal/application"
	"github.com/wyfcoding/dealflow/internal/deal/domain"
	"github.com/wyfcoding/dealflow/internal/deal/infrastructure/persistence/mysql"
	httphandler "github.com/wyfcoding/dealflow/internal/deal/interfaces/http"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "configs/reporting/config.toml", "path to config file")
	flag.Parse()

	// 1. Config
	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err != nil {
		panic(fmt.Sprintf("read config failed: %v", err))
	}

	// 2. Logger
	logger := logging.NewLogger("reporting", "main", viper.GetString("log.level"))
	slog.SetDefault(logger.Logger)

	// 3. Database
	dsn := viper.GetString("database.source")
	db, err := gorm.Open(gorm_mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		panic(fmt.Sprintf("connect db failed: %v", err))
	}
	if err := db.AutoMigrate(&domain.Deal{}, &domain.DealEvent{}); err != nil {
		panic(fmt.Sprintf("migrate db failed: %v", err))
	}

	// 4. Domain config
	policy := domain.DefaultDocumentPolicy()
	if v := viper.GetString("exposure.enhanced_threshold"); v != "" {
		if t, err := decimal.NewFromString(v); err == nil {
			policy.EnhancedThreshold = t
		}
	}
	if v := viper.GetString("exposure.full_review_threshold"); v != "" {
		if t, err := decimal.NewFromString(v); err == nil {
			policy.FullReviewThreshold = t
		}
	}

	// 5. Application
	repo := mysql.NewDealRepository(db)
	reportingService := application.NewReportingService(repo)
	exposureService := application.NewExposureService(repo, policy)

	// 6. Interfaces
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	sys := r.Group("/sys")
	{
		sys.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "UP", "service": "reporting", "timestamp": time.Now().Unix()})
		})
		sys.GET("/ready", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "READY"}) })
	}

	handler := httphandler.NewReportingHandler(reportingService, exposureService)
	handler.RegisterRoutes(r)

	// 7. Start
	g, ctx := errgroup.WithContext(context.Background())

	httpPort := viper.GetString("server.http_port")
	if httpPort == "" {
		httpPort = "8082"
	}
	server := &http.Server{Addr: ":" + httpPort, Handler: r}
	g.Go(func() error {
		slog.Info("HTTP server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	// 8. Graceful Shutdown
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-quit:
			slog.Info("shutting down server...")
		case <-ctx.Done():
			slog.Info("context cancelled, shutting down...")
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("server exited with error", "error", err)
	}
}
