package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/courseforge/courseforge/internal/types"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Configuration struct {
	Deployment DeploymentConfig `validate:"required"`
	Server     ServerConfig     `validate:"required"`
	Mongo      MongoConfig      `validate:"required"`
	Logging    LoggingConfig    `validate:"required"`
	Website    WebsiteConfig    `validate:"required"`
	Gateways   GatewaysConfig
	Cache      CacheConfig
}

type DeploymentConfig struct {
	Mode types.RunMode `mapstructure:"mode" validate:"required"`
}

type ServerConfig struct {
	Address string `mapstructure:"address" validate:"required"`
}

type MongoConfig struct {
	URI            string        `mapstructure:"uri" validate:"required"`
	Database       string        `mapstructure:"database" validate:"required"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout" default:"10s"`
}

type LoggingConfig struct {
	Level types.LogLevel `mapstructure:"level" validate:"required"`
}

// WebsiteConfig carries the public base URL used when building gateway
// success and cancel redirect URLs.
type WebsiteConfig struct {
	BaseURL string `mapstructure:"base_url" validate:"required,url"`
}

type CacheConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// GatewayConfig is the per-gateway configuration. Every gateway carries a
// key pair and the pair of provider-side plan identifiers for the monthly
// and yearly tiers; disabled gateways are never offered to the client.
type GatewayConfig struct {
	Enabled       bool   `mapstructure:"enabled"`
	PublicKey     string `mapstructure:"public_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MonthlyPlanID string `mapstructure:"monthly_plan_id"`
	YearlyPlanID  string `mapstructure:"yearly_plan_id"`
}

type GatewaysConfig struct {
	PayPal      GatewayConfig `mapstructure:"paypal"`
	Stripe      GatewayConfig `mapstructure:"stripe"`
	Razorpay    GatewayConfig `mapstructure:"razorpay"`
	Paystack    GatewayConfig `mapstructure:"paystack"`
	Flutterwave GatewayConfig `mapstructure:"flutterwave"`
}

// Gateway returns the configuration block for the given gateway type.
func (g GatewaysConfig) Gateway(t types.PaymentGatewayType) (GatewayConfig, bool) {
	switch t {
	case types.PaymentGatewayTypePayPal:
		return g.PayPal, true
	case types.PaymentGatewayTypeStripe:
		return g.Stripe, true
	case types.PaymentGatewayTypeRazorpay:
		return g.Razorpay, true
	case types.PaymentGatewayTypePaystack:
		return g.Paystack, true
	case types.PaymentGatewayTypeFlutterwave:
		return g.Flutterwave, true
	default:
		return GatewayConfig{}, false
	}
}

// EnabledGateways lists the gateways the client may offer as payment choices.
func (g GatewaysConfig) EnabledGateways() []types.PaymentGatewayType {
	enabled := make([]types.PaymentGatewayType, 0, len(types.AllPaymentGatewayTypes))
	for _, t := range types.AllPaymentGatewayTypes {
		if cfg, ok := g.Gateway(t); ok && cfg.Enabled {
			enabled = append(enabled, t)
		}
	}
	return enabled
}

// PlanID maps a billing cycle to the gateway's native plan identifier.
func (c GatewayConfig) PlanID(cycle types.BillingCycle) string {
	if cycle == types.BillingCycleYearly {
		return c.YearlyPlanID
	}
	return c.MonthlyPlanID
}

func NewConfig() (*Configuration, error) {
	// Load .env if present; real deployments rely on actual env vars
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/courseforge")

	v.SetEnvPrefix("COURSEFORGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	v.SetDefault("deployment.mode", types.ModeLocal)
	v.SetDefault("server.address", ":8080")
	v.SetDefault("logging.level", types.LogLevelInfo)
	v.SetDefault("mongo.connect_timeout", 10*time.Second)
	v.SetDefault("cache.enabled", true)

	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c Configuration) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// GetDefaultConfig returns a default configuration for local development
// and tests.
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: types.ModeLocal},
		Server:     ServerConfig{Address: ":8080"},
		Logging:    LoggingConfig{Level: types.LogLevelDebug},
		Website:    WebsiteConfig{BaseURL: "http://localhost:3000"},
		Mongo: MongoConfig{
			URI:            "mongodb://localhost:27017",
			Database:       "courseforge",
			ConnectTimeout: 10 * time.Second,
		},
		Cache: CacheConfig{Enabled: false},
	}
}
