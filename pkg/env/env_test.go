package env

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/lcdplate/pkg/plate"
)

func TestOpenDisplay(t *testing.T) {
	conf := NewConfig()
	conf.Driver = DriverSim
	d, closer, err := conf.OpenDisplay()
	require.NoError(t, err)
	require.Nil(t, closer)
	require.IsType(t, &plate.Sim{}, d)

	conf.Driver = "lcd"
	_, _, err = conf.OpenDisplay()
	require.Error(t, err)

	conf.Driver = DriverPlate
	conf.I2CAddr = 0x100
	_, _, err = conf.OpenDisplay()
	require.Error(t, err)
}

func TestNewEnv(t *testing.T) {
	conf := NewConfig()
	conf.Driver = DriverSim
	conf.Stdio = false
	conf.MQTTBrokerURL = ""
	conf.Listen = "127.0.0.1:0"

	e, err := conf.NewEnv()
	require.NoError(t, err)
	require.NotNil(t, e.Service)
	require.Len(t, e.Service.Runnables, 1)
	require.Len(t, e.Output.Writers, 1)
	require.NoError(t, e.Close())
}

func TestNewEnvWithoutTransport(t *testing.T) {
	conf := NewConfig()
	conf.Driver = DriverSim
	conf.Stdio = false
	conf.MQTTBrokerURL = ""
	_, err := conf.NewEnv()
	require.Error(t, err)
}

func TestNewEnvBadFormat(t *testing.T) {
	conf := NewConfig()
	conf.Driver = DriverSim
	conf.Stdio = false
	conf.MQTTBrokerURL = "mqtt://localhost:1883"
	conf.ID = "test"
	conf.MQTTFormat = "xml"
	_, err := conf.NewEnv()
	require.Error(t, err)
}
