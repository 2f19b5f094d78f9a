// Package config loads masonry.toml files.
//
// A config file has two optional tables:
//
//	[layout]
//	reference_column_width = 300
//	resize_debounce_ms = 60
//	poll_interval_ms = 100
//
//	[log]
//	level = "info"
//
// Missing keys take the defaults of [masonry.Options]. Unknown keys are
// rejected so typos do not silently fall back to defaults.
package config

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/masonry/pkg/errors"
	"github.com/matzehuels/masonry/pkg/masonry"
)

// FileName is the config file looked up in the working directory.
const FileName = "masonry.toml"

// Config is the decoded form of a config file.
type Config struct {
	Layout Layout `toml:"layout"`
	Log    Log    `toml:"log"`
}

// Layout holds the [layout] table.
type Layout struct {
	ReferenceColumnWidth float64 `toml:"reference_column_width"`
	ResizeDebounceMS     int     `toml:"resize_debounce_ms"`
	PollIntervalMS       int     `toml:"poll_interval_ms"`
}

// Log holds the [log] table.
type Log struct {
	Level string `toml:"level"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	o := masonry.DefaultOptions()
	return Config{
		Layout: Layout{
			ReferenceColumnWidth: o.ReferenceColumnWidth,
			ResizeDebounceMS:     int(o.ResizeDebounce / time.Millisecond),
			PollIntervalMS:       int(o.PollInterval / time.Millisecond),
		},
		Log: Log{Level: "info"},
	}
}

// Options converts the [layout] table to validated layout options.
func (c Config) Options() (masonry.Options, error) {
	if c.Layout.ResizeDebounceMS < 0 {
		return masonry.Options{}, errors.New(errors.ErrCodeInvalidConfig, "resize_debounce_ms must not be negative, got %d", c.Layout.ResizeDebounceMS)
	}
	if c.Layout.PollIntervalMS < 0 {
		return masonry.Options{}, errors.New(errors.ErrCodeInvalidConfig, "poll_interval_ms must not be negative, got %d", c.Layout.PollIntervalMS)
	}
	o := masonry.Options{
		ReferenceColumnWidth: c.Layout.ReferenceColumnWidth,
		ResizeDebounce:       time.Duration(c.Layout.ResizeDebounceMS) * time.Millisecond,
		PollInterval:         time.Duration(c.Layout.PollIntervalMS) * time.Millisecond,
	}
	if err := o.ValidateAndSetDefaults(); err != nil {
		return masonry.Options{}, err
	}
	return o, nil
}

// LogLevel parses the [log] level. An empty level is info.
func (c Config) LogLevel() (log.Level, error) {
	if c.Log.Level == "" {
		return log.InfoLevel, nil
	}
	lvl, err := log.ParseLevel(strings.ToLower(c.Log.Level))
	if err != nil {
		return log.InfoLevel, errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid log level %q", c.Log.Level)
	}
	return lvl, nil
}

// Read decodes a config from r.
func Read(r io.Reader) (Config, error) {
	var c Config
	md, err := toml.NewDecoder(r).Decode(&c)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	if _, err := c.Options(); err != nil {
		return Config{}, err
	}
	if _, err := c.LogLevel(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Load reads the config file at path.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return Config{}, errors.Wrap(errors.ErrCodeInternal, err, "open %s", path)
	}
	defer f.Close()
	return Read(f)
}

// LoadOrDefault reads path if it exists and returns [Default] otherwise.
// An empty path means [FileName] in the working directory.
func LoadOrDefault(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = FileName
	}
	c, err := Load(path)
	if err != nil && !explicit && errors.Is(err, errors.ErrCodeFileNotFound) {
		return Default(), nil
	}
	return c, err
}
