package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Defaults point at a local development backend
const (
	DefaultAPIURL    = "http://localhost:8080"
	DefaultSocketURL = "ws://localhost:8080/ws"
)

type ClientConfig struct {
	APIURL         string `yaml:"api_url"`
	SocketURL      string `yaml:"socket_url"`
	Timeout        string `yaml:"timeout"`
	RetryMax       int    `yaml:"retry_max"`
	TokenStore     string `yaml:"token_store"`
	TokenPath      string `yaml:"token_path"`
	Reconnect      bool   `yaml:"reconnect"`
	ReconnectTries int    `yaml:"reconnect_tries"`
}

type AppConfig struct {
	Port    int    `yaml:"port"`
	GinMode string `yaml:"gin_mode"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	Secret    string `yaml:"secret"`
	Issuer    string `yaml:"issuer"`
	AccessTTL string `yaml:"access_ttl"`
}

type OTPConfig struct {
	TTL          string `yaml:"ttl"`
	Length       int    `yaml:"length"`
	MaxAttempts  int    `yaml:"max_attempts"`
	ResendWindow string `yaml:"resend_window"`
}

type TwilioConfig struct {
	AccountSID string `yaml:"account_sid"`
	AuthToken  string `yaml:"auth_token"`
	FromNumber string `yaml:"from_number"`
}

type ConfigFile struct {
	Client   ClientConfig   `yaml:"client"`
	App      AppConfig      `yaml:"app"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	JWT      JWTConfig      `yaml:"jwt"`
	OTP      OTPConfig      `yaml:"otp"`
	Twilio   TwilioConfig   `yaml:"twilio"`
}

// Config is the resolved configuration shared by the CLI and the dev server
type Config struct {
	// client
	APIURL         string
	SocketURL      string
	Timeout        time.Duration
	RetryMax       int
	TokenStore     string
	TokenPath      string
	Reconnect      bool
	ReconnectTries int

	// dev server
	Port             string
	GinMode          string
	DSN              string
	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	JWTSecret        string
	JWTIssuer        string
	AccessTTL        time.Duration
	OTP_TTL          time.Duration
	OTP_Length       int
	OTP_MaxAttempts  int
	OTP_ResendWindow time.Duration
	TwilioSID        string
	TwilioToken      string
	TwilioFrom       string
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// DefaultPath is where Load looks for the YAML file unless CONFIG_PATH is set
const DefaultPath = "config/config.yml"

// Load reads .env (if present), then the YAML file (if present), then applies
// environment overrides. A missing file is not an error; defaults cover it.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return LoadFile(env("CONFIG_PATH", DefaultPath))
}

// LoadFile is Load without the .env step, for an explicit config path
func LoadFile(path string) (*Config, error) {
	configFile, err := loadConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}
	applyDefaults(configFile)

	timeout, err := time.ParseDuration(env("HTTP_TIMEOUT", configFile.Client.Timeout))
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP timeout: %w", err)
	}

	accTTL, err := time.ParseDuration(configFile.JWT.AccessTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT access TTL: %w", err)
	}

	otpTTL, err := time.ParseDuration(configFile.OTP.TTL)
	if err != nil {
		return nil, fmt.Errorf("invalid OTP TTL: %w", err)
	}

	resWnd, err := time.ParseDuration(configFile.OTP.ResendWindow)
	if err != nil {
		return nil, fmt.Errorf("invalid OTP resend window: %w", err)
	}

	return &Config{
		APIURL:           env("VITE_API_URL", configFile.Client.APIURL),
		SocketURL:        env("VITE_SOCKET_URL", configFile.Client.SocketURL),
		Timeout:          timeout,
		RetryMax:         envInt("HTTP_RETRY_MAX", configFile.Client.RetryMax),
		TokenStore:       env("TOKEN_STORE", configFile.Client.TokenStore),
		TokenPath:        env("TOKEN_PATH", configFile.Client.TokenPath),
		Reconnect:        env("SOCKET_RECONNECT", strconv.FormatBool(configFile.Client.Reconnect)) == "true",
		ReconnectTries:   envInt("SOCKET_RECONNECT_TRIES", configFile.Client.ReconnectTries),
		Port:             env("PORT", fmt.Sprintf("%d", configFile.App.Port)),
		GinMode:          env("GIN_MODE", configFile.App.GinMode),
		DSN:              env("DATABASE_DSN", configFile.Database.DSN),
		RedisAddr:        env("REDIS_ADDR", configFile.Redis.Addr),
		RedisPassword:    env("REDIS_PASSWORD", configFile.Redis.Password),
		RedisDB:          envInt("REDIS_DB", configFile.Redis.DB),
		JWTSecret:        env("JWT_SECRET", configFile.JWT.Secret),
		JWTIssuer:        configFile.JWT.Issuer,
		AccessTTL:        accTTL,
		OTP_TTL:          otpTTL,
		OTP_Length:       configFile.OTP.Length,
		OTP_MaxAttempts:  configFile.OTP.MaxAttempts,
		OTP_ResendWindow: resWnd,
		TwilioSID:        env("TWILIO_ACCOUNT_SID", configFile.Twilio.AccountSID),
		TwilioToken:      env("TWILIO_AUTH_TOKEN", configFile.Twilio.AuthToken),
		TwilioFrom:       env("TWILIO_FROM_NUMBER", configFile.Twilio.FromNumber),
	}, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	var config ConfigFile
	bytes, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &config, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &config, nil
}

func applyDefaults(c *ConfigFile) {
	setDefault(&c.Client.APIURL, DefaultAPIURL)
	setDefault(&c.Client.SocketURL, DefaultSocketURL)
	setDefault(&c.Client.Timeout, "15s")
	setDefault(&c.Client.TokenStore, "file")
	setDefault(&c.Client.TokenPath, defaultTokenPath())
	if c.Client.RetryMax == 0 {
		c.Client.RetryMax = 3
	}
	if c.Client.ReconnectTries == 0 {
		c.Client.ReconnectTries = 5
	}
	if c.App.Port == 0 {
		c.App.Port = 8080
	}
	setDefault(&c.App.GinMode, "debug")
	setDefault(&c.Database.DSN, "messmilega.db")
	setDefault(&c.JWT.Secret, "change-me")
	setDefault(&c.JWT.Issuer, "messmilega")
	setDefault(&c.JWT.AccessTTL, "24h")
	setDefault(&c.OTP.TTL, "10m")
	setDefault(&c.OTP.ResendWindow, "60s")
	if c.OTP.Length == 0 {
		c.OTP.Length = 6
	}
	if c.OTP.MaxAttempts == 0 {
		c.OTP.MaxAttempts = 5
	}
}

func setDefault(field *string, def string) {
	if *field == "" {
		*field = def
	}
}

func defaultTokenPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".messmilega-token"
	}
	return filepath.Join(dir, "messmilega", "token")
}
