package env

import (
	"errors"
	"fmt"
	"os"
	"time"

	"wingo_backend/internal/config"

	"gopkg.in/yaml.v3"
)

// Схема config.yaml для дорожек Wingo
type wingoYAML struct {
	Wingo struct {
		PreCloseCutoff string `yaml:"pre_close_cutoff"`
		SweepInterval  string `yaml:"sweep_interval"`
		Tracks         []struct {
			Name     string `yaml:"name"`
			Suffix   string `yaml:"suffix"`
			Duration string `yaml:"duration"`
		} `yaml:"tracks"`
	} `yaml:"wingo"`
}

type wingoConfig struct {
	tracks         []config.TrackConfig
	preCloseCutoff time.Duration
	sweepInterval  time.Duration
}

func NewWingoConfigFromYAML(path string) (config.WingoConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var parsed wingoYAML
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, err
	}

	if len(parsed.Wingo.Tracks) == 0 {
		return nil, errors.New("no wingo tracks configured")
	}

	cutoff, err := time.ParseDuration(parsed.Wingo.PreCloseCutoff)
	if err != nil {
		return nil, fmt.Errorf("invalid pre_close_cutoff: %w", err)
	}

	sweep, err := time.ParseDuration(parsed.Wingo.SweepInterval)
	if err != nil {
		return nil, fmt.Errorf("invalid sweep_interval: %w", err)
	}

	tracks := make([]config.TrackConfig, 0, len(parsed.Wingo.Tracks))
	for _, t := range parsed.Wingo.Tracks {
		d, err := time.ParseDuration(t.Duration)
		if err != nil {
			return nil, fmt.Errorf("invalid duration for track %s: %w", t.Name, err)
		}
		// Период раунда строится с минутной гранулярностью,
		// поэтому длительность дорожки кратна минуте
		if d < time.Minute || d%time.Minute != 0 {
			return nil, fmt.Errorf("track %s duration must be whole minutes", t.Name)
		}
		if d <= cutoff {
			return nil, fmt.Errorf("track %s duration must exceed cutoff", t.Name)
		}
		tracks = append(tracks, config.TrackConfig{
			Name:     t.Name,
			Suffix:   t.Suffix,
			Duration: d,
		})
	}

	return &wingoConfig{
		tracks:         tracks,
		preCloseCutoff: cutoff,
		sweepInterval:  sweep,
	}, nil
}

func (cfg *wingoConfig) Tracks() []config.TrackConfig {
	return cfg.tracks
}

func (cfg *wingoConfig) PreCloseCutoff() time.Duration {
	return cfg.preCloseCutoff
}

func (cfg *wingoConfig) SweepInterval() time.Duration {
	return cfg.sweepInterval
}
