package config

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/spf13/viper"

	"hireboard/internal/bootstrap/logging"
	"hireboard/internal/errs"
)

type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Database DatabaseConfig `mapstructure:"database"`
	Pipeline PipelineConfig `mapstructure:"pipeline"`
	Capacity CapacityConfig `mapstructure:"capacity"`
	Forecast ForecastConfig `mapstructure:"forecast"`
	Server   ServerConfig   `mapstructure:"server"`
}

type AppConfig struct {
	Name string `mapstructure:"name"`
	Env  string `mapstructure:"env"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

// PipelineConfig carries per-stage SLA targets in days, keyed by stage name.
type PipelineConfig struct {
	TargetFillDays int            `mapstructure:"target_fill_days"`
	StageSLADays   map[string]int `mapstructure:"stage_sla_days"`
}

type CapacityConfig struct {
	RecruiterWU float64 `mapstructure:"recruiter_wu"`
}

type ForecastConfig struct {
	Trials        int     `mapstructure:"trials"`
	HorizonDays   int     `mapstructure:"horizon_days"`
	PriorStrength float64 `mapstructure:"prior_strength"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

func Load(ctx context.Context, configFile string) (Config, error) {
	if ctx == nil {
		return Config{}, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return Config{}, errs.Wrap(err, "check context")
	}

	logCtx := logging.WithAttrs(ctx, slog.String("component", "bootstrap.config"))

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("HB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile == "" && errors.As(err, &notFound) {
			// Keep default and env-backed config when no file is provided.
			logging.Warn(logCtx, "config file not found, fallback to defaults and env")
		} else {
			return Config{}, errs.Wrap(err, "read config")
		}
	} else {
		logging.Info(logCtx, "using config file", slog.String("path", v.ConfigFileUsed()))
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errs.Wrap(err, "unmarshal config")
	}

	if cfg.Database.DSN == "" {
		return Config{}, errors.New("database.dsn is required")
	}
	if cfg.Forecast.Trials <= 0 {
		return Config{}, errors.New("forecast.trials must be > 0")
	}
	if cfg.Forecast.HorizonDays <= 0 {
		return Config{}, errors.New("forecast.horizon_days must be > 0")
	}
	if cfg.Capacity.RecruiterWU <= 0 {
		return Config{}, errors.New("capacity.recruiter_wu must be > 0")
	}

	logging.Info(
		logCtx,
		"config loaded",
		slog.String("app", cfg.App.Name),
		slog.String("env", cfg.App.Env),
		slog.String("database_driver", cfg.Database.Driver),
	)

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "hireboard")
	v.SetDefault("app.env", "local")
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", ".hireboard/state/hireboard.sqlite")
	v.SetDefault("pipeline.target_fill_days", 45)
	v.SetDefault("pipeline.stage_sla_days", map[string]int{
		"applied":   5,
		"screen":    7,
		"interview": 10,
		"onsite":    10,
		"offer":     7,
	})
	v.SetDefault("capacity.recruiter_wu", 8.0)
	v.SetDefault("forecast.trials", 1000)
	v.SetDefault("forecast.horizon_days", 365)
	v.SetDefault("forecast.prior_strength", 10.0)
	v.SetDefault("server.addr", ":8714")
}
