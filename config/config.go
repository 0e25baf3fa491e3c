package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config es la configuración completa del journal.
type Config struct {
	Wallet  string        `yaml:"wallet"` // wallet por defecto; vacío = pedir conexión
	API     APIConfig     `yaml:"api"`
	Fetch   FetchConfig   `yaml:"fetch"`
	Review  ReviewConfig  `yaml:"review"`
	Storage StorageConfig `yaml:"storage"`
	Export  ExportConfig  `yaml:"export"`
	Server  ServerConfig  `yaml:"server"`
	Watch   WatchConfig   `yaml:"watch"`
	Log     LogConfig     `yaml:"log"`
}

// APIConfig contiene los base URLs de las APIs.
type APIConfig struct {
	DataBase        string `yaml:"data_base"`
	CLOBBase        string `yaml:"clob_base"`
	PositionsSource string `yaml:"positions_source"` // data-api | clob
}

// FetchConfig controla los reintentos del fetcher.
type FetchConfig struct {
	MaxAttempts    int `yaml:"max_attempts"` // intentos totales
	RetryDelayMS   int `yaml:"retry_delay_ms"`
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// ReviewConfig configura el modelo de revisión de tesis.
type ReviewConfig struct {
	Model  string `yaml:"model"`
	APIKey string `yaml:"-"` // solo desde GEMINI_API_KEY
}

// StorageConfig controla dónde se persisten notas y revisiones.
type StorageConfig struct {
	DSN string `yaml:"dsn"` // ruta SQLite, ":memory:" o postgres://...
}

// ExportConfig elige el destino de los CSV.
type ExportConfig struct {
	Sink   string   `yaml:"sink"` // file | s3
	Dir    string   `yaml:"dir"`
	Prefix string   `yaml:"prefix"`
	S3     S3Config `yaml:"s3"`
}

// S3Config configura un bucket S3-compatible.
type S3Config struct {
	Endpoint       string `yaml:"endpoint"`
	Region         string `yaml:"region"`
	Bucket         string `yaml:"bucket"`
	ForcePathStyle bool   `yaml:"force_path_style"`
	AccessKey      string `yaml:"-"`
	SecretKey      string `yaml:"-"`
}

// ServerConfig configura la API HTTP.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// WatchConfig controla el modo watch y el refresco en modo serve.
type WatchConfig struct {
	IntervalSeconds int `yaml:"interval_seconds"`
}

// LogConfig controla el formato y nivel de logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// Load carga la configuración desde el archivo YAML y el archivo .env si existe.
// Las variables de entorno sobreescriben los valores del YAML.
func Load(path string) (*Config, error) {
	// Cargar .env si existe (silencia error si no hay archivo)
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	return &cfg, nil
}

// RetryDelay devuelve la espera entre intentos como time.Duration.
func (c *Config) RetryDelay() time.Duration {
	return time.Duration(c.Fetch.RetryDelayMS) * time.Millisecond
}

// FetchTimeout devuelve el timeout HTTP como time.Duration.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.Fetch.TimeoutSeconds) * time.Second
}

// WatchInterval devuelve el intervalo de refresco como time.Duration.
func (c *Config) WatchInterval() time.Duration {
	return time.Duration(c.Watch.IntervalSeconds) * time.Second
}

// applyEnvOverrides sobreescribe valores con variables de entorno si están presentes.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("POLYJOURNAL_WALLET"); v != "" {
		cfg.Wallet = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.Review.APIKey = v
	}
	if v := os.Getenv("GEMINI_MODEL"); v != "" {
		cfg.Review.Model = v
	}
	if v := os.Getenv("STORAGE_DSN"); v != "" {
		cfg.Storage.DSN = v
	}
	if v := os.Getenv("POSITIONS_SOURCE"); v != "" {
		cfg.API.PositionsSource = v
	}
	if v := os.Getenv("FETCH_MAX_ATTEMPTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Fetch.MaxAttempts = n
		}
	}
	if v := os.Getenv("AWS_ACCESS_KEY_ID"); v != "" {
		cfg.Export.S3.AccessKey = v
	}
	if v := os.Getenv("AWS_SECRET_ACCESS_KEY"); v != "" {
		cfg.Export.S3.SecretKey = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
}

// setDefaults asegura que los valores requeridos tengan valores sensatos.
func setDefaults(cfg *Config) {
	if cfg.API.DataBase == "" {
		cfg.API.DataBase = "https://data-api.polymarket.com"
	}
	if cfg.API.CLOBBase == "" {
		cfg.API.CLOBBase = "https://clob.polymarket.com"
	}
	if cfg.API.PositionsSource == "" {
		cfg.API.PositionsSource = "data-api"
	}
	if cfg.Fetch.MaxAttempts <= 0 {
		cfg.Fetch.MaxAttempts = 3
	}
	if cfg.Fetch.RetryDelayMS <= 0 {
		cfg.Fetch.RetryDelayMS = 1000
	}
	if cfg.Fetch.TimeoutSeconds <= 0 {
		cfg.Fetch.TimeoutSeconds = 10
	}
	if cfg.Review.Model == "" {
		cfg.Review.Model = "gemini-2.0-flash"
	}
	if cfg.Storage.DSN == "" {
		cfg.Storage.DSN = "polyjournal.db"
	}
	if cfg.Export.Sink == "" {
		cfg.Export.Sink = "file"
	}
	if cfg.Export.Dir == "" {
		cfg.Export.Dir = "exports"
	}
	if cfg.Export.S3.Region == "" {
		cfg.Export.S3.Region = "us-east-1"
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Watch.IntervalSeconds <= 0 {
		cfg.Watch.IntervalSeconds = 60
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}

// validate rechaza valores enumerados desconocidos.
func (c *Config) validate() error {
	switch c.API.PositionsSource {
	case "data-api", "clob":
	default:
		return fmt.Errorf("api.positions_source %q: want data-api or clob", c.API.PositionsSource)
	}
	switch c.Export.Sink {
	case "file":
	case "s3":
		if c.Export.S3.Bucket == "" {
			return fmt.Errorf("export.s3.bucket is required when export.sink is s3")
		}
	default:
		return fmt.Errorf("export.sink %q: want file or s3", c.Export.Sink)
	}
	return nil
}
