// Package config loads agent settings from YAML, falling back to the
// converged defaults when a field or the whole file is absent.
package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Agent configures one playing policy.
type Agent struct {
	Simulations  int     `yaml:"simulations"`
	Exploration  float64 `yaml:"exploration"`
	Blend        float64 `yaml:"blend"`
	LearningRate float64 `yaml:"learning_rate"`
	TablePath    string  `yaml:"table_path"`
	Seed         uint64  `yaml:"seed"` // 0 seeds from the clock
}

// DefaultAgent returns the converged search configuration.
func DefaultAgent() Agent {
	return Agent{
		Simulations:  200,
		Exploration:  math.Sqrt2,
		Blend:        0.7,
		LearningRate: 0.3,
		TablePath:    "qtable.gob",
	}
}

// Load reads an agent configuration file. Unset fields keep their
// defaults; a missing file is not an error and yields the defaults.
func Load(path string) (Agent, error) {
	agent := DefaultAgent()
	if path == "" {
		return agent, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return agent, nil
		}
		return agent, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &agent); err != nil {
		return agent, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := agent.validate(); err != nil {
		return agent, fmt.Errorf("config %s: %w", path, err)
	}
	return agent, nil
}

func (a Agent) validate() error {
	if a.Simulations <= 0 {
		return fmt.Errorf("simulations must be positive, got %d", a.Simulations)
	}
	if a.Blend < 0 || a.Blend > 1 {
		return fmt.Errorf("blend must be in [0,1], got %g", a.Blend)
	}
	if a.LearningRate <= 0 || a.LearningRate > 1 {
		return fmt.Errorf("learning rate must be in (0,1], got %g", a.LearningRate)
	}
	if a.Exploration < 0 {
		return fmt.Errorf("exploration must be non-negative, got %g", a.Exploration)
	}
	return nil
}
