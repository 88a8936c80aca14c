package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

const (
	DefaultDays = 1
	DefaultLog  = 1
)

type Config struct {
	Directory string
	Days      int
	// Log is the per-file verbosity: 1 prints "already optimized" skips.
	Log      int
	Progress bool
	Verbose  bool

	flags *pflag.FlagSet
}

// Bind registers the command-line flags on fs. Call Resolve after fs has
// been parsed.
func Bind(fs *pflag.FlagSet) *Config {
	cfg := &Config{flags: fs}
	fs.StringVarP(&cfg.Directory, "directory", "d", "", "Root directory to scan for JPEG files")
	fs.IntVar(&cfg.Days, "days", DefaultDays, "Only process files created within this many days")
	fs.IntVar(&cfg.Log, "log", DefaultLog, "Print already optimized files (1) or suppress them (0)")
	fs.BoolVarP(&cfg.Progress, "progress", "p", false, "Show a progress bar")
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Verbose diagnostics on stderr")
	return cfg
}

// Resolve fills unset flags from the environment (and an optional .env
// file) and validates the result.
func (c *Config) Resolve() error {
	_ = godotenv.Load()

	if !c.changed("directory") {
		if v := envOrEmpty("ICOMPRESS_DIRECTORY"); v != "" {
			c.Directory = v
		}
	}
	if !c.changed("days") {
		if v, ok, err := envInt("ICOMPRESS_DAYS"); err != nil {
			return err
		} else if ok {
			c.Days = v
		}
	}
	if !c.changed("log") {
		if v, ok, err := envInt("ICOMPRESS_LOG"); err != nil {
			return err
		} else if ok {
			c.Log = v
		}
	}
	if !c.Progress {
		c.Progress = envTruthy("ICOMPRESS_PROGRESS")
	}
	if !c.Verbose {
		c.Verbose = envTruthy("ICOMPRESS_VERBOSE")
	}

	return c.Validate()
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Directory) == "" {
		return errors.New("--directory is required")
	}
	if c.Days < 0 {
		return errors.New("--days must not be negative")
	}
	if c.Log != 0 && c.Log != 1 {
		return errors.New("--log must be 0 or 1")
	}
	return nil
}

// LogSkipped reports whether already optimized files should be printed.
func (c *Config) LogSkipped() bool {
	return c.Log == 1
}

func (c *Config) changed(name string) bool {
	return c.flags != nil && c.flags.Changed(name)
}

func envOrEmpty(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func envInt(key string) (int, bool, error) {
	raw := envOrEmpty(key)
	if raw == "" {
		return 0, false, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false, fmt.Errorf("invalid %s: %q is not an integer", key, raw)
	}
	return v, true, nil
}

func envTruthy(key string) bool {
	val := strings.TrimSpace(strings.ToLower(os.Getenv(key)))
	return val == "1" || val == "true" || val == "yes" || val == "y"
}
