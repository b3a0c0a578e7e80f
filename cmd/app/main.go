package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	httpin "appointer/internal/adapters/in/http"
	"appointer/internal/adapters/in/rabbitmq"
	"appointer/internal/adapters/out/cache"
	"appointer/internal/adapters/out/calendar"
	"appointer/internal/adapters/out/logger"
	"appointer/internal/config"
	"appointer/internal/core/ports/out"
	"appointer/internal/core/services"
)

func main() {
	// Загрузка конфигурации; ошибки здесь фатальны, в том числе
	// некорректные строки доступности и типы бронирования
	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	mainLogger, err := logger.NewConsoleLogger(cfg.App.Timezone)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	log := mainLogger.WithModule("Main")

	log.Info("app.starting", out.LogFields{
		"version":          cfg.App.Version,
		"env":              cfg.App.Env,
		"timezone":         cfg.App.Timezone,
		"calendarProvider": cfg.Calendar.Provider,
		"bookingTypes":     len(cfg.BookingTypes.Policies),
		"rabbitmqEnabled":  cfg.RabbitMQ.Enabled,
		"cacheEnabled":     cfg.Cache.Enabled,
	})

	if cfg.IsNotLocal() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Инициализация адаптера внешнего календаря
	var calendarAdapter out.CalendarPort
	switch cfg.Calendar.Provider {
	case config.CalendarProviderICS:
		calendarAdapter = calendar.NewICSAdapter(cfg, log.WithModule("ICSAdapter"))
	default:
		calendarAdapter = calendar.NewCronofyAdapter(cfg, log.WithModule("CronofyAdapter"))
	}

	var cacheAdapter out.CachePort
	if cfg.Cache.Enabled {
		weekGridCache, err := cache.NewWeekGridCache(cfg, log.WithModule("WeekGridCache"))
		if err != nil {
			log.Error("app.cache.init_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}
		cacheAdapter = weekGridCache
	}

	weekViewService := services.NewWeekViewService(
		cfg,
		calendarAdapter,
		cacheAdapter,
		log,
	)

	router := gin.Default()
	controller := httpin.NewWeekViewController(
		weekViewService,
		cfg,
		log.WithModule("HttpController"),
	)
	controller.RegisterRoutes(router)

	if cfg.RabbitMQ.Enabled {
		listener, err := rabbitmq.NewCacheListener(
			weekViewService,
			cfg,
			log.WithModule("RabbitMQListener"),
		)
		if err != nil {
			log.Error("app.rabbitmq.init_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		if err := listener.Start(ctx); err != nil {
			log.Error("app.rabbitmq.start_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}

		defer func() {
			if err := listener.Stop(); err != nil {
				log.Error("app.rabbitmq.stop_failed", out.LogFields{
					"error": err.Error(),
				})
			}
		}()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info("app.http.starting", out.LogFields{
			"host": cfg.HTTP.Host,
			"port": cfg.HTTP.Port,
		})

		if err := router.Run(cfg.HTTP.Host + ":" + cfg.HTTP.Port); err != nil {
			log.Error("app.http.failed", out.LogFields{
				"error": err.Error(),
			})
			sigChan <- syscall.SIGTERM
		}
	}()

	sig := <-sigChan
	log.Info("app.shutdown.initiated", out.LogFields{
		"signal": sig.String(),
	})
}
