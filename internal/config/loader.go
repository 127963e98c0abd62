package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const defaultKey = "$default"

// Paths helper for default/profile files.
type Paths struct {
	BaseDir string // base directory, e.g., ./configs
}

func (p Paths) DefaultPath() string {
	return filepath.Join(p.BaseDir, "default.yaml")
}
func (p Paths) ProfilePath(profile string) string {
	return filepath.Join(p.BaseDir, "profiles", profile+".yaml")
}

// Loader reads YAML configs and merges default → profile.
type Loader struct {
	paths Paths
	log   *zap.Logger

	mu    sync.RWMutex
	cache map[string]RawConfig // key: profile name or "$default"
}

// NewLoader creates a config loader with the given base directory.
func NewLoader(baseDir string, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{
		paths: Paths{BaseDir: baseDir},
		log:   log,
		cache: make(map[string]RawConfig),
	}
}

// Paths exposes the files this loader reads, e.g. for a FileWatcher.
func (l *Loader) Paths(profile string) []string {
	out := []string{l.paths.DefaultPath()}
	if profile != "" {
		out = append(out, l.paths.ProfilePath(profile))
	}
	return out
}

var ErrUnknownProfile = errors.New("unknown profile")

// LoadMerged loads and merges default → profile (profile optional) and
// validates the result. A missing default.yaml is treated as empty; a named
// profile must exist.
func (l *Loader) LoadMerged(profile string) (RawConfig, error) {
	key := profile
	if key == "" {
		key = defaultKey
	}
	l.mu.RLock()
	if cfg, ok := l.cache[key]; ok {
		l.mu.RUnlock()
		return cfg, nil
	}
	l.mu.RUnlock()

	defCfg, err := readYAML(l.paths.DefaultPath())
	if err != nil {
		return RawConfig{}, fmt.Errorf("read default: %w", err)
	}
	merged := defCfg
	if profile != "" {
		path := l.paths.ProfilePath(profile)
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			return RawConfig{}, fmt.Errorf("%w %q: %s not found", ErrUnknownProfile, profile, path)
		}
		profCfg, err := readYAML(path)
		if err != nil {
			return RawConfig{}, fmt.Errorf("read profile %q: %w", profile, err)
		}
		merged = mergeRaw(defCfg, profCfg)
	}
	if err := ValidateRaw(merged); err != nil {
		return RawConfig{}, err
	}

	// only the validated result is cached; defCfg alone was never checked
	l.mu.Lock()
	l.cache[key] = merged
	l.mu.Unlock()

	l.log.Debug("config loaded",
		zap.String("profile", profile),
		zap.String("version", merged.Version),
		zap.String("base_dir", l.paths.BaseDir),
	)
	return merged, nil
}

// Invalidate clears loader's cache. Call after hot-reload detects changes.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache = make(map[string]RawConfig)
}

// readYAML loads a YAML file into RawConfig. Missing files return zero cfg, no error.
func readYAML(path string) (RawConfig, error) {
	var cfg RawConfig
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return RawConfig{}, nil
		}
		return RawConfig{}, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return RawConfig{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// mergeRaw overlays b on a: every field set in b wins.
func mergeRaw(a, b RawConfig) RawConfig {
	out := a

	if b.Version != "" {
		out.Version = b.Version
	}
	if b.Notes != "" {
		out.Notes = b.Notes
	}

	// game
	out.Game.MinBet = pick(out.Game.MinBet, b.Game.MinBet)
	out.Game.MaxBet = pick(out.Game.MaxBet, b.Game.MaxBet)
	out.Game.WinThreshold = pick(out.Game.WinThreshold, b.Game.WinThreshold)
	out.Game.LoseThreshold = pick(out.Game.LoseThreshold, b.Game.LoseThreshold)
	out.Game.InitialBalance = pick(out.Game.InitialBalance, b.Game.InitialBalance)
	out.Game.MaxRounds = pick(out.Game.MaxRounds, b.Game.MaxRounds)

	// run
	switch {
	case out.Run == nil && b.Run != nil:
		c := *b.Run
		out.Run = &c
	case out.Run != nil && b.Run != nil:
		c := *out.Run
		c.NumSimulations = pick(c.NumSimulations, b.Run.NumSimulations)
		c.Workers = pick(c.Workers, b.Run.Workers)
		c.Seed = pick(c.Seed, b.Run.Seed)
		c.KeepSamples = pick(c.KeepSamples, b.Run.KeepSamples)
		if b.Run.RNG != "" {
			c.RNG = b.Run.RNG
		}
		out.Run = &c
	}

	return out
}

func pick[T any](base, override *T) *T {
	if override != nil {
		return override
	}
	return base
}
