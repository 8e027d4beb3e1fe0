// Package config loads tcgaloader settings from a TOML file of named
// profiles.
//
//	[profiles.tcgaloader]
//	datadir = "networks"
//	loadplan = "loadplan.json"
//	networklist = "networks.txt"
//	reportdir = "reports"
//	outdir = "out"
//	include = ["*.txt"]
//	exclude = ["*.bak"]
//	redis_addr = "localhost:6379"
//	mongo_uri = "mongodb://localhost:27017"
//	mongo_database = "tcgaloader"
//
// Relative paths are resolved against the directory of the config file.
// Command-line flags override profile values.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/ndexcontent/tcgaloader/pkg/errors"
)

const (
	// AppName names the config and cache directories.
	AppName = "tcgaloader"
	// FileName is the default config file name.
	FileName = "config.toml"
	// DefaultProfile is used when no profile is requested.
	DefaultProfile = "tcgaloader"
)

// Profile holds the settings of one named profile.
type Profile struct {
	DataDir     string   `toml:"datadir"`
	LoadPlan    string   `toml:"loadplan"`
	NetworkList string   `toml:"networklist"`
	ReportDir   string   `toml:"reportdir"`
	OutDir      string   `toml:"outdir"`
	Include     []string `toml:"include"`
	Exclude     []string `toml:"exclude"`
	RedisAddr   string   `toml:"redis_addr"`
	MongoURI    string   `toml:"mongo_uri"`
	MongoDB     string   `toml:"mongo_database"`
}

// Config is the parsed config file.
type Config struct {
	Profiles map[string]Profile `toml:"profiles"`

	path string
}

// Path returns the file the config was loaded from, or "" when defaults
// are in use.
func (c *Config) Path() string { return c.path }

// Profile returns the named profile. An empty name selects
// [DefaultProfile]. A config without profiles yields an empty profile for
// any name; otherwise an unknown name is an INVALID_CONFIG error.
func (c *Config) Profile(name string) (Profile, error) {
	if name == "" {
		name = DefaultProfile
	}
	p, ok := c.Profiles[name]
	if ok {
		return p, nil
	}
	if len(c.Profiles) == 0 {
		return Profile{}, nil
	}
	return Profile{}, errors.New(errors.ErrCodeInvalidConfig, "profile %q not found in %s", name, c.path)
}

// DefaultPath returns $XDG_CONFIG_HOME/tcgaloader/config.toml, falling
// back to ~/.config/tcgaloader/config.toml.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, AppName, FileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName, FileName), nil
}

// Load reads the config at path. An empty path loads the default location,
// where a missing file yields an empty config. A missing explicit path is a
// FILE_NOT_FOUND error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return &Config{}, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if !explicit {
				return &Config{}, nil
			}
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	return Parse(data, path)
}

// Parse decodes TOML config data. Relative paths in profiles are resolved
// against the directory of source; keys that do not map to a profile
// field are rejected.
func Parse(data []byte, source string) (*Config, error) {
	var c Config
	md, err := toml.Decode(string(data), &c)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", source)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown key %s", source, undecoded[0])
	}

	c.path = source
	base := filepath.Dir(source)
	for name, p := range c.Profiles {
		for _, field := range []*string{&p.DataDir, &p.LoadPlan, &p.NetworkList, &p.ReportDir, &p.OutDir} {
			*field = resolve(base, *field)
		}
		c.Profiles[name] = p
	}
	return &c, nil
}

func resolve(base, path string) string {
	if path == "" || filepath.IsAbs(path) || base == "" {
		return path
	}
	return filepath.Join(base, path)
}
