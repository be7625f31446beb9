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
	"github.com/wyfcoding/dealflow/internal/deal/interfaces/consumer"
	"github.com/wyfcoding/dealflow/pkg/mq"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "configs/scoring-worker/config.toml", "path to config file")
	flag.Parse()

	// 1. Config
	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err != nil {
		panic(fmt.Sprintf("read config failed: %v", err))
	}

	// 2. Logger
	logger := logging.NewLogger("scoring-worker", "main", viper.GetString("log.level"))
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

	// 4. Messaging
	kafkaCfg := mq.KafkaConfig{
		Brokers:         viper.GetStringSlice("kafka.brokers"),
		GroupID:         viper.GetString("kafka.group_id"),
		SessionTimeout:  viper.GetInt("kafka.session_timeout"),
		MaxRetries:      viper.GetInt("kafka.max_retries"),
		RetryBackoff:    viper.GetInt("kafka.retry_backoff_ms"),
		DeadLetterTopic: viper.GetString("kafka.dead_letter_topic"),
	}
	if kafkaCfg.DeadLetterTopic == "" {
		kafkaCfg.DeadLetterTopic = domain.DealDeadLetterTopic
	}

	producer, err := mq.NewProducer(kafkaCfg)
	if err != nil {
		panic(fmt.Sprintf("create kafka producer failed: %v", err))
	}
	defer producer.Close()

	kafkaConsumer, err := mq.NewConsumer(kafkaCfg, domain.DealSubmittedTopic)
	if err != nil {
		panic(fmt.Sprintf("create kafka consumer failed: %v", err))
	}
	defer kafkaConsumer.Close()

	// 5. Application
	repo := mysql.NewDealRepository(db)
	publisher := messaging.NewKafkaPublisher(producer)
	scoringService := application.NewScoringService(repo, publisher)

	// 6. Consumer loop: 3 次尝试，退避按秒递增，耗尽进死信
	handler := consumer.NewScoringHandler(scoringService, logger.Logger)
	dlq := mq.NewDeadLetterQueue(producer, kafkaCfg.DeadLetterTopic)
	runner := mq.NewRunner(kafkaConsumer, handler, dlq, 3, time.Second)

	g, ctx := errgroup.WithContext(context.Background())
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g.Go(func() error {
		slog.Info("scoring consumer starting", "topic", domain.DealSubmittedTopic, "group", kafkaCfg.GroupID)
		if err := runner.Run(ctx); err != nil && err != context.Canceled {
			return err
		}
		return nil
	})

	// 7. Stale SCORING rescue loop
	rescueInterval := viper.GetDuration("scoring.rescue_interval")
	if rescueInterval <= 0 {
		rescueInterval = time.Minute
	}
	rescueMaxAge := viper.GetDuration("scoring.rescue_max_age")
	if rescueMaxAge <= 0 {
		rescueMaxAge = 5 * time.Minute
	}
	g.Go(func() error {
		ticker := time.NewTicker(rescueInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := scoringService.RescueStaleScoring(ctx, rescueMaxAge); err != nil {
					slog.Error("stale scoring rescue failed", "error", err)
				}
			case <-ctx.Done():
				return nil
			}
		}
	})

	// 8. HTTP probes
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	sys := r.Group("/sys")
	{
		sys.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "UP", "service": "scoring-worker", "timestamp": time.Now().Unix()})
		})
		sys.GET("/ready", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "READY"}) })
	}

	httpPort := viper.GetString("server.http_port")
	if httpPort == "" {
		httpPort = "8083"
	}
	server := &http.Server{Addr: ":" + httpPort, Handler: r}
	g.Go(func() error {
		slog.Info("HTTP server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	// 9. Graceful Shutdown
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-quit:
			slog.Info("shutting down worker...")
		case <-ctx.Done():
			slog.Info("context cancelled, shutting down...")
		}
		cancel()
		shutdownCtx, scancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer scancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("worker exited with error", "error", err)
	}
}
