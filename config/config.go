// Package config resolves Mithril API credentials from the environment or
// from the profile file, with no implicit process-wide state: callers get a
// resolved Config value or a typed not-found error.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultAPIURL is the production market endpoint, used when neither the
// environment nor the profile overrides it.
const DefaultAPIURL = "https://api.mithril.com"

// ErrNoCredentials reports that no usable credentials could be resolved.
var ErrNoCredentials = errors.New("mithril credentials not found")

// Config is a resolved set of credentials for the Mithril API.
type Config struct {
	APIURL  string
	APIKey  string
	Project string
}

// StoredProfile is the profile metadata persisted on a cluster at launch
// time. Resolving it lets status and termination calls made long after
// launch target the same account and endpoint the cluster was created
// under, even if the operator has since switched profiles.
type StoredProfile struct {
	Profile string `yaml:"profile" json:"profile"`
	Project string `yaml:"project" json:"project"`
}

type profileFile struct {
	CurrentProfile string             `yaml:"current_profile"`
	Profiles       map[string]profile `yaml:"profiles"`
}

type profile struct {
	APIURL  string `yaml:"api_url"`
	APIKey  string `yaml:"api_key"`
	Project string `yaml:"project"`
}

// Path returns the profile file location, honoring XDG_CONFIG_HOME.
func Path() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "mithril", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", "mithril", "config.yaml")
	}
	return filepath.Join(home, ".config", "mithril", "config.yaml")
}

// Resolve returns credentials from the environment when MITHRIL_API_KEY is
// set, otherwise from the current profile in the profile file.
func Resolve() (Config, error) {
	if key := os.Getenv("MITHRIL_API_KEY"); key != "" {
		cfg := Config{
			APIURL:  os.Getenv("MITHRIL_API_URL"),
			APIKey:  key,
			Project: os.Getenv("MITHRIL_PROJECT"),
		}
		if cfg.APIURL == "" {
			cfg.APIURL = DefaultAPIURL
		}
		return cfg, nil
	}

	file, err := load()
	if err != nil {
		return Config{}, err
	}
	if file.CurrentProfile == "" {
		return Config{}, fmt.Errorf("%w: no current profile set in %s", ErrNoCredentials, Path())
	}
	return file.resolve(file.CurrentProfile)
}

// ResolveProfile returns credentials for a named profile from the profile
// file, ignoring the environment.
func ResolveProfile(name string) (Config, error) {
	file, err := load()
	if err != nil {
		return Config{}, err
	}
	return file.resolve(name)
}

// CurrentProfile returns the name of the active profile, or "" when
// credentials come from the environment. It is what gets persisted on a
// cluster as its StoredProfile at launch time.
func CurrentProfile() string {
	if os.Getenv("MITHRIL_API_KEY") != "" {
		return ""
	}
	file, err := load()
	if err != nil {
		return ""
	}
	return file.CurrentProfile
}

// ResolveStored resolves credentials on behalf of an already launched
// cluster. A nil or empty stored profile means the cluster was launched via
// environment overrides, so resolution falls back to Resolve().
func ResolveStored(stored *StoredProfile) (Config, error) {
	if stored == nil || stored.Profile == "" {
		return Resolve()
	}
	cfg, err := ResolveProfile(stored.Profile)
	if err != nil {
		return Config{}, err
	}
	if stored.Project != "" {
		cfg.Project = stored.Project
	}
	return cfg, nil
}

func load() (*profileFile, error) {
	raw, err := os.ReadFile(Path())
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w at %s", ErrNoCredentials, Path())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", Path(), err)
	}

	var file profileFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", Path(), err)
	}
	return &file, nil
}

func (f *profileFile) resolve(name string) (Config, error) {
	p, ok := f.Profiles[name]
	if !ok {
		return Config{}, fmt.Errorf("%w: profile '%s' not defined in %s", ErrNoCredentials, name, Path())
	}
	cfg := Config{APIURL: p.APIURL, APIKey: p.APIKey, Project: p.Project}
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}
	if cfg.APIKey == "" {
		return Config{}, fmt.Errorf("%w: profile '%s' has no api_key in %s", ErrNoCredentials, name, Path())
	}
	return cfg, nil
}
