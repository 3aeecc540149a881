// Package env builds the display service from command line flags.
package env

import (
	"flag"
	"fmt"
	"os"

	"github.com/golang/glog"

	"github.com/robotalks/lcdplate/pkg/comm"
	"github.com/robotalks/lcdplate/pkg/comm/mqtt"
	"github.com/robotalks/lcdplate/pkg/comm/stream"
	"github.com/robotalks/lcdplate/pkg/comm/websocket"
	fx "github.com/robotalks/lcdplate/pkg/framework"
	"github.com/robotalks/lcdplate/pkg/lcd"
	"github.com/robotalks/lcdplate/pkg/msgs"
	"github.com/robotalks/lcdplate/pkg/plate"
)

// Display drivers.
const (
	DriverPlate = "plate"
	DriverSim   = "sim"
)

// Config provides the options to setup the display service.
type Config struct {
	Driver  string
	I2CBus  string
	I2CAddr uint
	// Stdio reads control lines from stdin and writes buttons to stdout.
	Stdio bool
	// MQTTBrokerURL enables the MQTT transport when set.
	// e.g. mqtt://host:port/topic-prefix
	MQTTBrokerURL string
	MQTTFormat    string
	ID            string
	// Listen enables the websocket server when set.
	Listen string

	Service *lcd.Config
}

var defaultConfig = Config{
	Driver:        DriverPlate,
	I2CAddr:       uint(plate.DefaultAddress),
	Stdio:         true,
	MQTTBrokerURL: mqtt.DefaultBrokerURL(),
	MQTTFormat:    msgs.FormatText,
	Service:       lcd.Default(),
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.Driver, "driver", defaultConfig.Driver, "Display driver: plate or sim.")
	flag.StringVar(&defaultConfig.I2CBus, "i2c-bus", defaultConfig.I2CBus, "I2C bus name, empty for the first one.")
	flag.UintVar(&defaultConfig.I2CAddr, "i2c-addr", defaultConfig.I2CAddr, "I2C address of the plate.")
	flag.BoolVar(&defaultConfig.Stdio, "stdio", defaultConfig.Stdio, "Read control lines from stdin, write buttons to stdout.")
	flag.StringVar(&defaultConfig.MQTTBrokerURL, "mqtt", defaultConfig.MQTTBrokerURL, "MQTT broker URL, empty to disable. Defaults to $"+mqtt.BrokerURLEnv+".")
	flag.StringVar(&defaultConfig.MQTTFormat, "mqtt-format", defaultConfig.MQTTFormat, "MQTT payload format: text or proto.")
	flag.StringVar(&defaultConfig.ID, "id", defaultConfig.ID, "Display ID in MQTT topics, defaults to one derived from the machine ID.")
	flag.StringVar(&defaultConfig.Listen, "listen", defaultConfig.Listen, "Websocket listen address, empty to disable.")
	lcd.SetupFlags()
}

// Default gets default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a Config with default configurations.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// Env holds the display and the transports built from Config.
type Env struct {
	Config  *Config
	Display lcd.Display
	Input   *comm.Merged
	Output  *comm.WriterMux
	Service *lcd.Service

	closers []func() error
}

// OpenDisplay opens the configured display driver.
func (c *Config) OpenDisplay() (lcd.Display, func() error, error) {
	switch c.Driver {
	case DriverPlate:
		if c.I2CAddr > 0x7f {
			return nil, nil, fmt.Errorf("invalid i2c address %#x", c.I2CAddr)
		}
		p, err := plate.Open(c.I2CBus, uint16(c.I2CAddr))
		if err != nil {
			return nil, nil, err
		}
		return p, p.Close, nil
	case DriverSim:
		return plate.NewSim(), nil, nil
	}
	return nil, nil, fmt.Errorf("unknown driver %q", c.Driver)
}

// NewEnv opens the display and wires all enabled transports to the service.
func (c *Config) NewEnv() (*Env, error) {
	e := &Env{Config: c, Output: &comm.WriterMux{}}
	var readers []comm.LineReader
	var runnables []fx.Runnable

	if c.Stdio {
		rw := stream.New(os.Stdin, os.Stdout)
		readers = append(readers, rw)
		e.Output.Add(rw)
	}
	if c.MQTTBrokerURL != "" {
		id := c.ID
		if id == "" {
			id = MachineID()
		}
		if id == "" {
			return nil, fmt.Errorf("display id must be specified")
		}
		rw, err := mqtt.NewReadWriter(c.MQTTBrokerURL, id, c.MQTTFormat)
		if err != nil {
			return nil, fmt.Errorf("create MQTT transport error: %v", err)
		}
		glog.Infof("MQTT %s topics %s, %s", c.MQTTBrokerURL, rw.Topics.Command, rw.Topics.Button)
		readers = append(readers, rw)
		e.Output.Add(rw)
		runnables = append(runnables, rw)
	}
	if c.Listen != "" {
		srv := websocket.NewServer(c.Listen)
		readers = append(readers, srv)
		e.Output.Add(srv)
		runnables = append(runnables, srv)
	}
	if len(readers) == 0 {
		return nil, fmt.Errorf("at least one of stdio, mqtt or listen is required")
	}
	e.Input = comm.Merge(readers...)

	display, closer, err := c.OpenDisplay()
	if err != nil {
		return nil, fmt.Errorf("open display %s error: %v", c.Driver, err)
	}
	if closer != nil {
		e.closers = append(e.closers, closer)
	}
	e.Display = display

	conf := c.Service
	if conf == nil {
		conf = lcd.NewConfig()
	}
	e.Service = conf.NewService(display, e.Input, e.Output)
	e.Service.AddRunnable(runnables...)
	return e, nil
}

// MustNewEnv creates Env and fails on error.
func (c *Config) MustNewEnv() *Env {
	env, err := c.NewEnv()
	if err != nil {
		glog.Exitln(err)
	}
	return env
}

// Close releases the display.
func (e *Env) Close() error {
	var errs fx.AggregatedError
	for _, fn := range e.closers {
		errs.Add(fn())
	}
	return errs.Aggregate()
}
