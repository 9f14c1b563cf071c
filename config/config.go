package config

import (
	"fmt"
	"os"
	"time"

	"github.com/alejandrodnm/top5sim/internal/domain"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config es la configuración completa del simulador.
type Config struct {
	Simulation SimulationConfig `yaml:"simulation"`
	Data       DataConfig       `yaml:"data"`
	API        APIConfig        `yaml:"api"`
	Storage    StorageConfig    `yaml:"storage"`
	Log        LogConfig        `yaml:"log"`
}

// SimulationConfig controla cómo se rellenan los partidos sin predicción.
type SimulationConfig struct {
	Mode      string            `yaml:"mode"` // uniform | weighted
	Seed      int64             `yaml:"seed"` // 0 = semilla por reloj
	Scoreline *domain.Scoreline `yaml:"scoreline"`
}

// DataConfig controla de dónde salen los datos de la temporada.
type DataConfig struct {
	Dataset string `yaml:"dataset"` // ruta a un YAML refrescado; vacío = datos embebidos
	Output  string `yaml:"output"`  // dónde escribe -refresh
}

// APIConfig contiene el acceso a football-data.org.
type APIConfig struct {
	BaseURL           string `yaml:"base_url"`
	Key               string `yaml:"key"`
	RequestsPerMinute int    `yaml:"requests_per_minute"`
	TimeoutSeconds    int    `yaml:"timeout_seconds"`
}

// StorageConfig controla dónde se archivan los refrescos.
type StorageConfig struct {
	DSN string `yaml:"dsn"` // ruta al archivo SQLite, o ":memory:"
}

// LogConfig controla el formato y nivel de logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// Load carga la configuración desde el archivo YAML y el archivo .env si existe.
// Los valores del .env sobreescriben los del YAML para las keys que correspondan.
// Si path no existe se usan solo env + defaults: el simulador funciona sin config.
func Load(path string) (*Config, error) {
	// Cargar .env si existe (silencia error si no hay archivo)
	_ = godotenv.Load()

	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate comprueba los valores que no tienen default razonable.
func (c *Config) Validate() error {
	switch c.Simulation.Mode {
	case "uniform", "weighted":
	default:
		return fmt.Errorf("config.Validate: simulation.mode %q (want uniform|weighted)", c.Simulation.Mode)
	}
	if err := c.Simulation.Scoreline.Validate(); err != nil {
		return fmt.Errorf("config.Validate: %w", err)
	}
	return nil
}

// Timeout devuelve el timeout HTTP como time.Duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

// applyEnvOverrides sobreescribe valores con variables de entorno si están presentes.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("FOOTBALL_DATA_API_KEY"); v != "" {
		cfg.API.Key = v
	}
	if v := os.Getenv("SIM_DATASET"); v != "" {
		cfg.Data.Dataset = v
	}
}

// setDefaults asegura que los valores requeridos tengan valores sensatos.
func setDefaults(cfg *Config) {
	if cfg.Simulation.Mode == "" {
		cfg.Simulation.Mode = "uniform"
	}
	if cfg.Simulation.Scoreline == nil {
		sl := domain.DefaultScoreline()
		cfg.Simulation.Scoreline = &sl
	}
	if cfg.Data.Output == "" {
		cfg.Data.Output = "season.yaml"
	}
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = "https://api.football-data.org/v4"
	}
	if cfg.API.RequestsPerMinute <= 0 {
		cfg.API.RequestsPerMinute = 6 // 60% del free tier (10/min)
	}
	if cfg.API.TimeoutSeconds <= 0 {
		cfg.API.TimeoutSeconds = 10
	}
	if cfg.Storage.DSN == "" {
		cfg.Storage.DSN = "top5sim.db"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}
