package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	ServerConfig struct {
		Host            string
		Addr            string
		ShutdownTimeout time.Duration
		MetricsEnabled  bool
	}

	Config struct {
		Env          string // DEV (local; default), TEST, QA, PROD
		Build        string
		AppName      string
		Debug        bool
		TestMode     bool
		RollbarToken string

		Server ServerConfig

		// PrefsPath is where the institution display name is persisted.
		PrefsPath          string
		DefaultInstitution string
		MaxUploadBytes     int64
	}
)

// NewConfig reads the configuration from the environment (and `config/.env.<env>` if it exists).
func NewConfig() *Config {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("testMode", false)
	v.SetDefault("appName", "Registro Consorcio")
	v.SetDefault("build", "dev")
	v.SetDefault("rollbarToken", "")
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.addr", ":8000")
	v.SetDefault("server.shutdownTimeout", 10*time.Second)
	v.SetDefault("server.metricsEnabled", true)
	v.SetDefault("prefs.path", filepath.Join("config", "preferences.yaml"))
	v.SetDefault("institution.defaultName", DefaultInstitutionName)
	v.SetDefault("upload.maxBytes", int64(10<<20))

	env := strings.ToUpper(os.Getenv("ENV"))
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(Getwd(), "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	return &Config{
		Env:          env,
		Build:        v.GetString("build"),
		AppName:      v.GetString("appName"),
		Debug:        v.GetBool("debug"),
		TestMode:     v.GetBool("testMode"),
		RollbarToken: v.GetString("rollbarToken"),
		Server: ServerConfig{
			Host:            v.GetString("server.host"),
			Addr:            v.GetString("server.addr"),
			ShutdownTimeout: v.GetDuration("server.shutdownTimeout"),
			MetricsEnabled:  v.GetBool("server.metricsEnabled"),
		},
		PrefsPath:          v.GetString("prefs.path"),
		DefaultInstitution: v.GetString("institution.defaultName"),
		MaxUploadBytes:     v.GetInt64("upload.maxBytes"),
	}
}

// NewTestConfig returns a Config suitable for tests: no env lookups, no rollbar, prefs kept in dir.
func NewTestConfig(dir string) *Config {
	return &Config{
		Env:      "TEST",
		Build:    "test",
		AppName:  "Registro Consorcio",
		TestMode: true,
		Server: ServerConfig{
			Host:            "localhost",
			ShutdownTimeout: time.Second,
			MetricsEnabled:  true,
		},
		PrefsPath:          filepath.Join(dir, "preferences.yaml"),
		DefaultInstitution: DefaultInstitutionName,
		MaxUploadBytes:     10 << 20,
	}
}
