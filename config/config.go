package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigDebug              = "debug"
	ConfigLetterDistribution = "letter-distribution"
	ConfigBoardLayout        = "board-layout"
	ConfigRackCapacity       = "rack-capacity"
	ConfigHTTPAddr           = "http-addr"
	ConfigNatsURL            = "nats-url"
	ConfigNatsSubject        = "nats-subject"
	ConfigNatsScoreSubject   = "nats-score-subject"
	ConfigAutoplayThreads    = "autoplay-threads"
	ConfigCPUProfile         = "cpu-profile"
)

// Config wraps a viper instance. Values come from (in increasing
// priority) defaults, an optional config file, LINEWORD_* environment
// variables and command-line flags.
type Config struct {
	viper.Viper
}

func DefaultConfig() *Config {
	c := &Config{Viper: *viper.New()}
	c.setDefaults()
	return c
}

func (c *Config) setDefaults() {
	c.SetDefault(ConfigDebug, false)
	c.SetDefault(ConfigLetterDistribution, "english")
	c.SetDefault(ConfigBoardLayout, "standard")
	c.SetDefault(ConfigRackCapacity, 7)
	c.SetDefault(ConfigHTTPAddr, ":8088")
	c.SetDefault(ConfigNatsURL, "")
	c.SetDefault(ConfigNatsSubject, "lineword.turns")
	c.SetDefault(ConfigNatsScoreSubject, "lineword.score")
	c.SetDefault(ConfigAutoplayThreads, 4)
	c.SetDefault(ConfigCPUProfile, "")
}

// Load reads the configuration. args may hold --flag style overrides for
// any of the keys above; unknown flags are ignored so that the rest of the
// command line can be handed to a shell.
func (c *Config) Load(args []string) error {
	c.Viper = *viper.New()
	c.setDefaults()

	c.SetConfigName("lineword")
	c.SetConfigType("yaml")
	c.AddConfigPath(".")
	if home, err := os.UserConfigDir(); err == nil {
		c.AddConfigPath(filepath.Join(home, "lineword"))
	}
	if err := c.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
	}

	c.SetEnvPrefix("lineword")
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()

	fs := flagSet()
	if err := fs.Parse(args); err != nil {
		return err
	}
	return c.BindPFlags(fs)
}

func flagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("lineword", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.Bool(ConfigDebug, false, "debug logging on")
	fs.String(ConfigLetterDistribution, "english", "letter distribution name, or path to a .csv/.yaml file")
	fs.String(ConfigBoardLayout, "standard", "board layout name, or a literal layout string")
	fs.Int(ConfigRackCapacity, 7, "number of tiles on a full rack")
	fs.String(ConfigHTTPAddr, ":8088", "listen address for the HTTP host")
	fs.String(ConfigNatsURL, "", "publish submitted turns to this NATS server")
	fs.String(ConfigNatsSubject, "lineword.turns", "NATS subject for turn events")
	fs.String(ConfigNatsScoreSubject, "lineword.score", "NATS subject that answers score requests")
	fs.Int(ConfigAutoplayThreads, 4, "default number of autoplay threads")
	fs.String(ConfigCPUProfile, "", "write a CPU profile to this path")
	return fs
}

// SplitArgs separates the --flag arguments that Load understands from the
// rest of a command line. Single-dash options are left for the shell.
func SplitArgs(args []string) (flags, rest []string) {
	fs := flagSet()
	for i := 0; i < len(args); i++ {
		a := args[i]
		if !strings.HasPrefix(a, "--") {
			rest = append(rest, a)
			continue
		}
		name, _, hasValue := strings.Cut(a[2:], "=")
		f := fs.Lookup(name)
		if f == nil {
			rest = append(rest, a)
			continue
		}
		flags = append(flags, a)
		if !hasValue && f.Value.Type() != "bool" && i+1 < len(args) {
			flags = append(flags, args[i+1])
			i++
		}
	}
	return flags, rest
}

// AdjustRelativePaths makes a relative letter distribution path relative
// to basePath, if that file exists there.
func (c *Config) AdjustRelativePaths(basePath string) {
	ld := c.GetString(ConfigLetterDistribution)
	if !isFilePath(ld) || filepath.IsAbs(ld) {
		return
	}
	candidate := filepath.Join(basePath, ld)
	if _, err := os.Stat(candidate); err == nil {
		c.Set(ConfigLetterDistribution, candidate)
	}
}

// SanitizedSettings returns the settings that are safe to log.
func (c *Config) SanitizedSettings() map[string]any {
	out := c.AllSettings()
	if u := c.GetString(ConfigNatsURL); u != "" {
		out[ConfigNatsURL] = "<set>"
	}
	return out
}

func isFilePath(s string) bool {
	ext := strings.ToLower(filepath.Ext(s))
	return ext == ".csv" || ext == ".yaml" || ext == ".yml"
}
