package kinematics

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Default physical constants, in GeV.
const (
	MuonMass   = 0.10566
	ProtonMass = 0.938
	BeamEnergy = 120.0
)

var (
	ErrConfig = errors.New("kinematics: invalid configuration")
)

// Config holds the fixed beam/target setup and the batch execution knobs.
type Config struct {
	MuonMass   float64 `yaml:"muon_mass"   env:"SQMON_MUON_MASS"`
	ProtonMass float64 `yaml:"proton_mass" env:"SQMON_PROTON_MASS"`
	BeamEnergy float64 `yaml:"beam_energy" env:"SQMON_BEAM_ENERGY"`

	// Workers bounds the number of goroutines a batch is spread over.
	// Zero means GOMAXPROCS.
	Workers int `yaml:"workers" env:"SQMON_WORKERS"`

	// ChunkSize is the number of events handed to a worker at once.
	// Zero splits the batch evenly over the workers.
	ChunkSize int `yaml:"chunk_size" env:"SQMON_CHUNK_SIZE"`

	// ClampCosTheta clamps cos(theta) into [-1, 1] before sin(theta) is
	// derived from it. When false, rounding that pushes |cos(theta)| above
	// one yields a NaN sin(theta).
	ClampCosTheta bool `yaml:"clamp_costheta" env:"SQMON_CLAMP_COSTHETA"`
}

// DefaultConfig returns the 120 GeV proton beam on a fixed proton target
// configuration, producing muon pairs.
func DefaultConfig() Config {
	return Config{
		MuonMass:   MuonMass,
		ProtonMass: ProtonMass,
		BeamEnergy: BeamEnergy,
	}
}

// LoadConfig returns the default configuration, overridden by the YAML
// file at path (if path is not empty) and then by SQMON_* environment
// variables.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("kinematics: could not read config file: %w", err)
		}
		err = yaml.Unmarshal(raw, &cfg)
		if err != nil {
			return cfg, fmt.Errorf("kinematics: could not decode config file %q: %w", path, err)
		}
	}

	err := env.Parse(&cfg)
	if err != nil {
		return cfg, fmt.Errorf("kinematics: could not parse environment: %w", err)
	}

	return cfg, cfg.Validate()
}

// Validate checks that the configuration describes a physical setup.
func (cfg Config) Validate() error {
	switch {
	case !positive(cfg.MuonMass):
		return fmt.Errorf("%w: muon mass %v", ErrConfig, cfg.MuonMass)
	case !positive(cfg.ProtonMass):
		return fmt.Errorf("%w: proton mass %v", ErrConfig, cfg.ProtonMass)
	case !positive(cfg.BeamEnergy) || cfg.BeamEnergy <= cfg.ProtonMass:
		return fmt.Errorf("%w: beam energy %v must exceed proton mass %v", ErrConfig, cfg.BeamEnergy, cfg.ProtonMass)
	case cfg.Workers < 0:
		return fmt.Errorf("%w: negative worker count %d", ErrConfig, cfg.Workers)
	case cfg.ChunkSize < 0:
		return fmt.Errorf("%w: negative chunk size %d", ErrConfig, cfg.ChunkSize)
	}
	return nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}
