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
	"github.com/spf13/viper"
	"github.com/wyfcoding/pkg/logging"
	"golang.org/x/sync/errgroup"
	gorm_mysql "gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/wyfcoding/dealflow/internal/deal/application"
	"github.com/wyfcoding/dealflow/internal/deal/domain"
	"github.com/wyfcoding/dealflow/internal/deal/infrastructure/messaging"
	"github.com/wyfcoding/dealflow/internal/deal/infrastructure/persistence/mysql"
	httphandler "github.com/wyfcoding/dealflow/internal/deal/interfaces/http"
	"github.com/wyfcoding/dealflow/pkg/mq"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "configs/intake/config.toml", "path to config file")
	flag.Parse()

	// 1. Config
	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err != nil {
		panic(fmt.Sprintf("read config failed: %v", err))
	}

	// 2. Logger
	logger := logging.NewLogger("intake", "main", viper.GetString("log.level"))
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

	// 4. Infrastructure
	producer, err := mq.NewProducer(mq.KafkaConfig{
		Brokers:      viper.GetStringSlice("kafka.brokers"),
		MaxRetries:   viper.GetInt("kafka.max_retries"),
		RetryBackoff: viper.GetInt("kafka.retry_backoff_ms"),
	})
	if err != nil {
		panic(fmt.Sprintf("create kafka producer failed: %v", err))
	}
	defer producer.Close()

	repo := mysql.NewDealRepository(db)
	publisher := messaging.NewKafkaPublisher(producer)

	// 5. Application
	intakeService := application.NewIntakeService(repo, publisher)

	// 6. Interfaces
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	sys := r.Group("/sys")
	{
		sys.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "UP", "service": "intake", "timestamp": time.Now().Unix()})
		})
		sys.GET("/ready", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "READY"}) })
	}

	handler := httphandler.NewIntakeHandler(intakeService)
	handler.RegisterRoutes(r)

	// 7. Start
	g, ctx := errgroup.WithContext(context.Background())

	httpPort := viper.GetString("server.http_port")
	if httpPort == "" {
		httpPort = "8081"
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
