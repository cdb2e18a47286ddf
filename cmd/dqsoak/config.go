package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
)

// Config is a soak scenario.
type Config struct {
	// Workers is the number of independent deques to drive in parallel.
	Workers int `toml:"workers"`
	// Ops is the number of operations each worker performs.
	Ops int `toml:"ops"`
	// Seed is the base seed; each worker derives its own stream from it.
	Seed uint64 `toml:"seed"`
	// CheckEvery is the interval in operations between full content
	// comparisons against the model. Pops are verified on every operation
	// regardless.
	CheckEvery int `toml:"check_every"`
	// Report is the path the JSON report is written to, or empty for
	// stdout.
	Report string `toml:"report"`
	// Metrics is the listen address for the Prometheus endpoint, or empty
	// for none.
	Metrics string `toml:"metrics"`
	// Mix weights the operations. Weights are relative and may be zero.
	Mix Mix `toml:"mix"`
}

// Mix is the relative weighting of operations in a scenario.
type Mix struct {
	PushBack  float64 `toml:"push_back"`
	PushFront float64 `toml:"push_front"`
	PopBack   float64 `toml:"pop_back"`
	PopFront  float64 `toml:"pop_front"`
	Insert    float64 `toml:"insert"`
	Delete    float64 `toml:"delete"`
	Shrink    float64 `toml:"shrink"`
	Clear     float64 `toml:"clear"`
}

// Load reads a scenario from TOML.
func Load(r io.Reader) (*Config, error) {
	cfg := Config{
		Workers:    1,
		Ops:        1_000_000,
		Seed:       1,
		CheckEvery: 10_000,
		Mix: Mix{
			PushBack:  4,
			PushFront: 2,
			PopBack:   2,
			PopFront:  3,
			Insert:    1,
			Delete:    1,
			Shrink:    0.01,
			Clear:     0.001,
		},
	}
	md, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return nil, fmt.Errorf("couldn't decode scenario: %w", err)
	}
	if u := md.Undecoded(); len(u) != 0 {
		return nil, fmt.Errorf("unknown scenario keys: %v", u)
	}
	if cfg.Workers <= 0 {
		return nil, errors.New("workers must be positive")
	}
	if cfg.Ops <= 0 {
		return nil, errors.New("ops must be positive")
	}
	if cfg.CheckEvery <= 0 {
		return nil, errors.New("check_every must be positive")
	}
	total := cfg.Mix.PushBack + cfg.Mix.PushFront + cfg.Mix.PopBack +
		cfg.Mix.PopFront + cfg.Mix.Insert + cfg.Mix.Delete + cfg.Mix.Shrink + cfg.Mix.Clear
	if total <= 0 {
		return nil, errors.New("operation mix has no weight")
	}
	return &cfg, nil
}
