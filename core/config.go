package core

import (
	"log"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		AppName      string
		Env          string // DEV (local; default), TEST, QA, PROD
		Debug        bool
		TestMode     bool
		Build        string
		RollbarToken string
		Database     DatabaseConfig
		Server       ServerConfig
	}

	DatabaseConfig struct {
		Engine         string
		Host           string
		Port           int
		User           string
		Password       string
		AdminUser      string
		AdminPassword  string
		Name           string
		DisableTLS     bool
		AutoMigrate    bool
		ConnectTimeout time.Duration
	}

	ServerConfig struct {
		Host            string
		Port            int
		BasePath        string
		ShutdownTimeout time.Duration
		RateLimit       float64
		CORSOrigins     []string
		DisableReqLogs  bool
	}
)

// Address returns the "host:port" the database listens on.
func (c DatabaseConfig) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Address returns the ":port" the API server binds to.
func (c ServerConfig) Address() string {
	return ":" + strconv.Itoa(c.Port)
}

// env var names; everything else is derived from them
var envKeys = map[string]string{
	"env":                     "ENV",
	"debug":                   "DEBUG",
	"build":                   "BUILD",
	"rollbarToken":            "ROLLBAR_TOKEN",
	"database.host":           "DB_HOST",
	"database.port":           "DB_PORT",
	"database.user":           "DB_USER",
	"database.password":       "DB_PASS",
	"database.adminUser":      "DB_ADMIN_USER",
	"database.adminPassword":  "DB_ADMIN_PASS",
	"database.name":           "DB_NAME",
	"database.disableTLS":     "DB_DISABLE_TLS",
	"database.autoMigrate":    "DB_AUTO_MIGRATE",
	"database.connectTimeout": "DB_CONNECT_TIMEOUT",
	"server.host":             "HOST",
	"server.port":             "PORT",
	"server.basePath":         "BASE_PATH",
	"server.shutdownTimeout":  "SHUTDOWN_TIMEOUT",
	"server.rateLimit":        "RATE_LIMIT",
	"server.corsOrigins":      "CORS_ALLOWED_ORIGINS",
	"server.disableReqLogs":   "DISABLE_REQUEST_LOGS",
}

// NewConfig loads the application configuration from the environment.
// A dotenv file (ENV_FILE, default ".env") is loaded first if it exists; real env vars win.
func NewConfig() *Config {
	loadDotEnv()

	v := viper.New()
	v.SetTypeByDefaultValue(true)

	// defaults
	v.SetDefault("env", "DEV")
	v.SetDefault("debug", false)
	v.SetDefault("build", "dev")
	v.SetDefault("rollbarToken", "")
	v.SetDefault("database.host", "127.0.0.1")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.adminUser", "")
	v.SetDefault("database.adminPassword", "")
	v.SetDefault("database.name", "student_mgmt")
	v.SetDefault("database.disableTLS", true)
	v.SetDefault("database.autoMigrate", false)
	v.SetDefault("database.connectTimeout", 10*time.Second)
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.basePath", "")
	v.SetDefault("server.shutdownTimeout", 10*time.Second)
	v.SetDefault("server.rateLimit", 0.0)
	v.SetDefault("server.corsOrigins", "*")
	v.SetDefault("server.disableReqLogs", false)

	for key, env := range envKeys {
		_ = v.BindEnv(key, env)
	}

	env := strings.ToUpper(v.GetString("env"))
	return &Config{
		AppName:      "Gradebook",
		Env:          env,
		Debug:        v.GetBool("debug"),
		TestMode:     env == "TEST",
		Build:        v.GetString("build"),
		RollbarToken: v.GetString("rollbarToken"),
		Database: DatabaseConfig{
			Engine:         "postgres",
			Host:           v.GetString("database.host"),
			Port:           v.GetInt("database.port"),
			User:           v.GetString("database.user"),
			Password:       v.GetString("database.password"),
			AdminUser:      v.GetString("database.adminUser"),
			AdminPassword:  v.GetString("database.adminPassword"),
			Name:           v.GetString("database.name"),
			DisableTLS:     v.GetBool("database.disableTLS"),
			AutoMigrate:    v.GetBool("database.autoMigrate"),
			ConnectTimeout: v.GetDuration("database.connectTimeout"),
		},
		Server: ServerConfig{
			Host:            v.GetString("server.host"),
			Port:            v.GetInt("server.port"),
			BasePath:        strings.TrimSuffix(CleanString(v.GetString("server.basePath")), "/"),
			ShutdownTimeout: v.GetDuration("server.shutdownTimeout"),
			RateLimit:       v.GetFloat64("server.rateLimit"),
			CORSOrigins:     splitList(v.GetString("server.corsOrigins")),
			DisableReqLogs:  v.GetBool("server.disableReqLogs"),
		},
	}
}

func loadDotEnv() {
	path := os.Getenv("ENV_FILE")
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); err == nil {
		if err := godotenv.Load(path); err != nil {
			log.Fatalf("config.godotenv(%s): %v", path, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", path, err)
	}
}

func splitList(s string) []string {
	items := make([]string, 0)
	for _, item := range strings.Split(s, ",") {
		if item = CleanString(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
