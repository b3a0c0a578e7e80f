package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"

	"appointer/internal/core/domain"
)

type Environment string

const (
	EnvLocal      Environment = "local"
	EnvDev        Environment = "dev"
	EnvStage      Environment = "stage"
	EnvProduction Environment = "production"
)

type CalendarProvider string

const (
	CalendarProviderCronofy CalendarProvider = "cronofy"
	CalendarProviderICS     CalendarProvider = "ics"
)

type ConfigBasicClient struct {
	Username string
	Password string
}

type Config struct {
	App struct {
		Version  string      `env:"APP_VERSION" envDefault:"local"`
		Env      Environment `env:"APP_ENV" envDefault:"local"`
		Timezone string      `env:"APP_TIMEZONE" envDefault:"Europe/London"`
		Location *time.Location
	}

	HTTP struct {
		Port string `env:"HTTP_SERVER_PORT" envDefault:"8080"`
		Host string `env:"HTTP_SERVER_HOST" envDefault:"localhost"`
	}

	Auth struct {
		BasicClientsString string `env:"AUTH_BASIC_CLIENTS" envDefault:"booking_engine:booking_engine"`
		BasicClients       []ConfigBasicClient
	}

	Calendar struct {
		Provider CalendarProvider `env:"CALENDAR_PROVIDER" envDefault:"cronofy"`

		CronofyURL         string `env:"CRONOFY_URL" envDefault:"https://api.cronofy.com"`
		CronofyAccessToken string `env:"CRONOFY_ACCESS_TOKEN"`
		// Имена проверяемых календарей через запятую, пустой список -
		// проверяются все
		CalendarNamesString string `env:"CALENDAR_NAMES"`
		CalendarNames       []string

		ICSFeedURL string `env:"ICS_FEED_URL"`
	}

	// Глобальная доступность по дням недели, грамматика
	// "HH:MM-HH:MM[,...]" | "" | "none"
	Availability struct {
		Mon string `env:"AVAILABILITY_MON" envDefault:"9:30-12:30,13:30-16:30"`
		Tue string `env:"AVAILABILITY_TUE" envDefault:"9:30-12:30,13:30-16:30"`
		Wed string `env:"AVAILABILITY_WED" envDefault:"9:30-12:30,13:30-16:30"`
		Thu string `env:"AVAILABILITY_THU" envDefault:"9:30-12:30,13:30-16:30"`
		Fri string `env:"AVAILABILITY_FRI" envDefault:"9:30-12:30,13:30-16:30"`
		Sat string `env:"AVAILABILITY_SAT" envDefault:"none"`
		Sun string `env:"AVAILABILITY_SUN" envDefault:"none"`

		Week domain.WeekAvailability
	}

	BookingTypes struct {
		File     string `env:"BOOKING_TYPES_FILE" envDefault:"booking_types.yaml"`
		Policies map[string]*domain.BookingPolicy
	}

	RabbitMQ struct {
		Enabled  bool   `env:"RABBITMQ_ENABLED"`
		URL      string `env:"RABBITMQ_URL"`
		Queue    string `env:"RABBITMQ_QUEUE" envDefault:"booking-engine.cache"`
		Exchange string `env:"RABBITMQ_EXCHANGE"`
		Bind     string `env:"RABBITMQ_QUEUE_BIND" envDefault:"#"`
	}

	Cache struct {
		Enabled    bool `env:"CACHE_ENABLED"`
		Size       int  `env:"CACHE_SIZE" envDefault:"1000"`
		TTLSeconds int  `env:"CACHE_TTL_SECONDS" envDefault:"60"`
	}
}

func NewConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	// Приведение окружения к нижнему регистру для унификации
	cfg.App.Env = Environment(strings.ToLower(string(cfg.App.Env)))

	location, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		return nil, &domain.ConfigError{Field: "APP_TIMEZONE", Value: cfg.App.Timezone, Msg: "unknown timezone"}
	}
	cfg.App.Location = location

	// Разбор строк доступности; ошибка здесь фатальна, дефолтов нет
	week, err := parseWeekAvailability(cfg)
	if err != nil {
		return nil, err
	}
	cfg.Availability.Week = week

	// Загрузка типов бронирования из YAML файла
	policies, err := LoadBookingTypes(cfg.BookingTypes.File)
	if err != nil {
		return nil, err
	}
	cfg.BookingTypes.Policies = policies

	// Разделение клиентов basic-авторизации
	cfg.Auth.BasicClients = []ConfigBasicClient{}
	for _, pair := range strings.Split(cfg.Auth.BasicClientsString, ",") {
		parts := strings.Split(pair, ":")
		if len(parts) == 2 {
			cfg.Auth.BasicClients = append(cfg.Auth.BasicClients, ConfigBasicClient{
				Username: parts[0],
				Password: parts[1],
			})
		}
	}

	if cfg.Calendar.CalendarNamesString != "" {
		for _, name := range strings.Split(cfg.Calendar.CalendarNamesString, ",") {
			name = strings.TrimSpace(name)
			if name != "" {
				cfg.Calendar.CalendarNames = append(cfg.Calendar.CalendarNames, name)
			}
		}
	}

	switch cfg.Calendar.Provider {
	case CalendarProviderCronofy, CalendarProviderICS:
	default:
		return nil, &domain.ConfigError{Field: "CALENDAR_PROVIDER", Value: string(cfg.Calendar.Provider), Msg: "expected cronofy or ics"}
	}

	return cfg, nil
}

func parseWeekAvailability(cfg *Config) (domain.WeekAvailability, error) {
	var week domain.WeekAvailability

	fields := []struct {
		name string
		text string
	}{
		{"AVAILABILITY_MON", cfg.Availability.Mon},
		{"AVAILABILITY_TUE", cfg.Availability.Tue},
		{"AVAILABILITY_WED", cfg.Availability.Wed},
		{"AVAILABILITY_THU", cfg.Availability.Thu},
		{"AVAILABILITY_FRI", cfg.Availability.Fri},
		{"AVAILABILITY_SAT", cfg.Availability.Sat},
		{"AVAILABILITY_SUN", cfg.Availability.Sun},
	}

	for i, field := range fields {
		avail, err := domain.ParseAvailability(field.text)
		if err != nil {
			return week, fmt.Errorf("%s: %w", field.name, err)
		}
		week[i] = avail
	}

	return week, nil
}

func (c *Config) IsLocal() bool {
	return c.App.Env == EnvLocal
}

func (c *Config) IsNotLocal() bool {
	return c.App.Env == EnvDev || c.App.Env == EnvStage || c.App.Env == EnvProduction
}
