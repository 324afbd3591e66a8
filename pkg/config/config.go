package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración del cliente (lectura vía Viper desde env y
// opcionalmente archivo).
type Config struct {
	App     AppConfig
	API     APIConfig
	Session SessionConfig
}

// AppConfig configuración general del cliente.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// APIConfig configuración del servidor remoto de inventario.
type APIConfig struct {
	Host     string
	Port     int
	Scheme   string // http o https
	Timeout  time.Duration
	Lang     string // header Lang enviado en cada petición
	TimeZone string // header Time-Zone; vacío = zona local
}

// BaseURL devuelve la URL base del API remoto (sin slash final).
// Todas las rutas del cliente cuelgan de /api.
func (c APIConfig) BaseURL() string {
	return fmt.Sprintf("%s://%s:%d/api", c.Scheme, c.Host, c.Port)
}

// SessionConfig configuración de la sesión local.
type SessionConfig struct {
	TokenPath string // archivo donde se guarda el access token
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde
// archivo .env o config.env). Las env vars tienen prioridad. Nombres
// esperados: APP_ENV, API_HOST, API_PORT, SESSION_TOKEN_PATH, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "inventario-movil"),
		},
		API: APIConfig{
			Host:     getString(v, "API_HOST", "localhost"),
			Port:     getInt(v, "API_PORT", 8080),
			Scheme:   getString(v, "API_SCHEME", "http"),
			Timeout:  time.Duration(getInt(v, "API_TIMEOUT_SECONDS", 30)) * time.Second,
			Lang:     getString(v, "API_LANG", "es"),
			TimeZone: getString(v, "API_TIME_ZONE", ""),
		},
		Session: SessionConfig{
			TokenPath: getString(v, "SESSION_TOKEN_PATH", ".inventario-token"),
		},
	}

	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
