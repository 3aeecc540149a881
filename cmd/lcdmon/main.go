package main

import (
	"flag"
	"strings"

	"github.com/golang/glog"
	"github.com/golang/protobuf/proto"

	"github.com/robotalks/lcdplate/pkg/comm/mqtt"
	"github.com/robotalks/lcdplate/pkg/lcd"
	"github.com/robotalks/lcdplate/pkg/msgs"
)

var (
	mqttURL = mqtt.DefaultBrokerURL()
)

func init() {
	flag.StringVar(&mqttURL, "mqtt", mqttURL, "MQTT broker URL. Defaults to $"+mqtt.BrokerURLEnv+".")
}

// describe prints a payload of either format. Text is tried first as a
// proto decode of a text line may succeed with garbage.
func describe(topic string, payload []byte) string {
	var codec msgs.ProtoCodec
	switch {
	case strings.HasSuffix(topic, "/meta"):
		if len(payload) == 0 {
			return "offline"
		}
	case strings.HasSuffix(topic, "/cmd"):
		if _, err := lcd.ParseCommand(string(payload)); err == nil {
			return string(payload)
		}
		if line, err := codec.DecodeCommand(payload); err == nil {
			return "[DisplayUpdate] " + line
		}
	case strings.HasSuffix(topic, "/button"):
		if _, err := lcd.ParseButton(string(payload)); err == nil {
			return string(payload)
		}
		var m msgs.ButtonPress
		if err := proto.Unmarshal(payload, &m); err == nil {
			return "[ButtonPress] " + m.String()
		}
	}
	return string(payload)
}

func main() {
	flag.Parse()
	defer glog.Flush()
	if mqttURL == "" {
		glog.Exitf("MQTT broker URL is required, use -mqtt or $%s", mqtt.BrokerURLEnv)
	}

	q, err := mqtt.NewQueueFromURL(mqttURL)
	if err != nil {
		glog.Exitln(err)
	}
	q.Sub("#", mqtt.Handler(func(topic string, payload []byte) {
		glog.Infof("%s: %s", topic, describe(topic, payload))
	}))
	token := q.Connect()
	if token.Wait(); token.Error() != nil {
		glog.Exitln(token.Error())
	}
	<-(chan struct{})(nil)
}
