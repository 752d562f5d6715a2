package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	Catalog CatalogConfig
	Access  AccessConfig
	Sales   SalesConfig
	Storage StorageConfig
	DB      DBConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// CatalogConfig origen del catálogo de productos (xlsx o CSV).
type CatalogConfig struct {
	Path            string
	DefaultCurrency string // moneda cuando la celda Moneda viene vacía
}

// AccessConfig clave compartida y sesiones del cotizador.
// PassphraseHash (bcrypt) tiene prioridad sobre Passphrase en texto plano.
type AccessConfig struct {
	Passphrase        string
	PassphraseHash    string
	SessionSecret     string // vacío = secreto aleatorio por proceso
	SessionExpiration int    // minutos
	SessionIssuer     string
}

// SalesConfig destino de las solicitudes de compra (mailto).
type SalesConfig struct {
	Email string
}

// Drivers de almacenamiento del historial de gastos.
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// StorageConfig selecciona dónde se guarda el historial de facturas procesadas.
type StorageConfig struct {
	Driver string // memory | postgres
}

// DBConfig configuración de PostgreSQL para el historial de gastos.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string

	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	// ForceIPv4 abre las conexiones por tcp4 cuando el host resuelve a una dirección IPv4.
	ForceIPv4 bool
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, HTTP_PORT, CATALOG_PATH, ACCESS_PASSPHRASE, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "cotizador-cs"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Catalog: CatalogConfig{
			Path:            getString(v, "CATALOG_PATH", "productos.xlsx"),
			DefaultCurrency: getString(v, "CATALOG_DEFAULT_CURRENCY", "MXN"),
		},
		Access: AccessConfig{
			Passphrase:        getString(v, "ACCESS_PASSPHRASE", "CS2026"),
			PassphraseHash:    getString(v, "ACCESS_PASSPHRASE_HASH", ""),
			SessionSecret:     getString(v, "SESSION_SECRET", ""),
			SessionExpiration: getInt(v, "SESSION_EXPIRATION_MINUTES", 480),
			SessionIssuer:     getString(v, "SESSION_ISSUER", "cotizador-cs"),
		},
		Sales: SalesConfig{
			Email: getString(v, "SALES_EMAIL", "ventas@csventilacion.mx"),
		},
		Storage: StorageConfig{
			Driver: strings.ToLower(getString(v, "STORAGE_DRIVER", StorageMemory)),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "cotizador_cs"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),

			MaxConns:        int32(getInt(v, "DB_MAX_CONNS", 4)),
			MinConns:        int32(getInt(v, "DB_MIN_CONNS", 0)),
			MaxConnLifetime: time.Duration(getInt(v, "DB_MAX_CONN_LIFETIME_MINUTES", 60)) * time.Minute,
			MaxConnIdleTime: time.Duration(getInt(v, "DB_MAX_CONN_IDLE_MINUTES", 10)) * time.Minute,
			ForceIPv4:       getBool(v, "DB_FORCE_IPV4", false),
		},
	}

	if cfg.Storage.Driver != StorageMemory && cfg.Storage.Driver != StoragePostgres {
		return nil, fmt.Errorf("config: STORAGE_DRIVER inválido %q (memory | postgres)", cfg.Storage.Driver)
	}
	if cfg.Access.Passphrase == "" && cfg.Access.PassphraseHash == "" {
		return nil, fmt.Errorf("config: ACCESS_PASSPHRASE o ACCESS_PASSPHRASE_HASH es obligatorio")
	}
	if cfg.DB.MaxConns < 1 {
		return nil, fmt.Errorf("config: DB_MAX_CONNS debe ser al menos 1")
	}
	if cfg.DB.MinConns < 0 || cfg.DB.MinConns > cfg.DB.MaxConns {
		return nil, fmt.Errorf("config: DB_MIN_CONNS debe estar entre 0 y DB_MAX_CONNS")
	}
	if cfg.Access.SessionExpiration <= 0 {
		cfg.Access.SessionExpiration = 480
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
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if !v.IsSet(key) {
		return def
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v.GetString(key)))
	if err != nil {
		return def
	}
	return b
}
