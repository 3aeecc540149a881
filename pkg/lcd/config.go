package lcd

import (
	"flag"
	"time"

	"github.com/robotalks/lcdplate/pkg/comm"
)

// Config defines the configurations for the service.
type Config struct {
	PollInterval time.Duration
	Strict       bool
	Verbose      bool
}

var defaultConfig = Config{
	PollInterval: DefaultPollInterval,
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.DurationVar(&defaultConfig.PollInterval, "poll-interval", defaultConfig.PollInterval, "Interval between two button scans.")
	flag.BoolVar(&defaultConfig.Strict, "strict", defaultConfig.Strict, "Exit on a malformed control line instead of skipping it.")
	flag.BoolVar(&defaultConfig.Verbose, "verbose", defaultConfig.Verbose, "Log button presses.")
}

// Default gets default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a config with defaults.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// NewService creates a service using the config.
func (c *Config) NewService(d Display, in comm.LineReader, out comm.LineWriter) *Service {
	s := NewService(d, in, out)
	s.Poller.Interval = c.PollInterval
	s.Poller.Verbose = c.Verbose
	s.Controller.Strict = c.Strict
	return s
}
