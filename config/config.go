package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config es la configuración completa del simulador.
type Config struct {
	Tournament TournamentConfig `yaml:"tournament"`
	Storage    StorageConfig    `yaml:"storage"`
	Log        LogConfig        `yaml:"log"`
}

// TournamentConfig controla la simulación.
type TournamentConfig struct {
	Rounds    int      `yaml:"rounds"`    // rondas por match, mínimo 1
	Noise     float64  `yaml:"noise"`     // probabilidad de flip, [0,1)
	Seed      int64    `yaml:"seed"`      // semilla de la fuente compartida
	Opponents []string `yaml:"opponents"` // roster ordenado, por nombre
}

// StorageConfig controla dónde se persisten las ejecuciones.
type StorageConfig struct {
	DSN string `yaml:"dsn"` // ruta al archivo SQLite, o ":memory:"
}

// LogConfig controla el formato y nivel de logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// Load carga la configuración desde el archivo YAML y el .env si existe.
// Con path vacío o inexistente se usan los defaults (la config es opcional:
// todos los valores tienen default reproducible).
func Load(path string) (*Config, error) {
	// Cargar .env si existe (silencia error si no hay archivo)
	_ = godotenv.Load()

	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
			}
		case os.IsNotExist(err):
			// sin archivo: defaults
		default:
			return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
		}
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	return &cfg, nil
}

// applyEnvOverrides sobreescribe valores con variables de entorno.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
}

// setDefaults asegura que los valores requeridos tengan valores sensatos.
func setDefaults(cfg *Config) {
	if cfg.Tournament.Rounds <= 0 {
		cfg.Tournament.Rounds = 200
	}
	if cfg.Tournament.Seed == 0 {
		cfg.Tournament.Seed = 42 // fija, para reproducibilidad por defecto
	}
	if len(cfg.Tournament.Opponents) == 0 {
		cfg.Tournament.Opponents = []string{
			"AlwaysCooperate",
			"AlwaysDefect",
			"TitForTat",
			"TitForTwoTats",
			"Grudger",
			"Random",
			"Suspicious",
		}
	}
	if cfg.Storage.DSN == "" {
		cfg.Storage.DSN = "ipdbot.db"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}
