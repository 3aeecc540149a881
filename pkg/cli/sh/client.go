package sh

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/robotalks/lcdplate/pkg/comm/mqtt"
	"github.com/robotalks/lcdplate/pkg/msgs"
)

// Client talks to displays through the broker.
type Client struct {
	Queue   *mqtt.Queue
	Timeout time.Duration
}

// Display is a display known to the client.
type Display struct {
	Meta   mqtt.Meta
	Topics mqtt.Topics
	Codec  msgs.Codec
}

// NewClient connects to the broker.
func NewClient(brokerURL string, timeout time.Duration) (*Client, error) {
	q, err := mqtt.NewQueueFromURL(brokerURL)
	if err != nil {
		return nil, err
	}
	token := q.Connect()
	if !token.WaitTimeout(timeout) {
		return nil, fmt.Errorf("connect %s timeout", brokerURL)
	}
	if err := token.Error(); err != nil {
		return nil, err
	}
	return &Client{Queue: q, Timeout: timeout}, nil
}

// Close disconnects from the broker.
func (c *Client) Close() error {
	return c.Queue.Close()
}

// NewDisplay creates the Display with id using format.
func NewDisplay(id, format string) (*Display, error) {
	codec, err := msgs.CodecFor(format)
	if err != nil {
		return nil, err
	}
	if format == "" {
		format = msgs.FormatText
	}
	return &Display{
		Meta:   mqtt.Meta{ID: id, Format: format},
		Topics: mqtt.DeviceTopics(id),
		Codec:  codec,
	}, nil
}

// Discover collects the retained meta of online displays.
func (c *Client) Discover() ([]*Display, error) {
	var d discovery
	sub := c.Queue.Sub(mqtt.DeviceTopics("+").Meta, d.handle)
	time.Sleep(c.Timeout)
	sub.Close()
	return d.result()
}

// Send publishes a control line to the display.
func (c *Client) Send(d *Display, line string) error {
	payload, err := d.Codec.EncodeCommand(line)
	if err != nil {
		return err
	}
	token := c.Queue.Pub(d.Topics.Command, payload)
	if !token.WaitTimeout(c.Timeout) {
		return mqtt.ErrPublishTimeout
	}
	return token.Error()
}

// Watch calls fn with every button pressed on the display until stop is
// closed.
func (c *Client) Watch(d *Display, stop <-chan struct{}, fn func(string)) {
	sub := c.Queue.Sub(d.Topics.Button, func(topic string, payload []byte) {
		name, err := d.Codec.DecodeButton(payload)
		if err != nil {
			fn(fmt.Sprintf("bad button payload: %v", err))
			return
		}
		fn(name)
	})
	<-stop
	sub.Close()
}

type discovery struct {
	lock     sync.Mutex
	displays map[string]*Display
	errs     []string
}

func (d *discovery) handle(topic string, payload []byte) {
	d.lock.Lock()
	defer d.lock.Unlock()
	if d.displays == nil {
		d.displays = make(map[string]*Display)
	}
	// empty payload clears the retained meta of an offline display.
	if len(payload) == 0 {
		return
	}
	var meta mqtt.Meta
	if err := json.Unmarshal(payload, &meta); err != nil {
		d.errs = append(d.errs, fmt.Sprintf("%s: %v", topic, err))
		return
	}
	display, err := NewDisplay(meta.ID, meta.Format)
	if err != nil {
		d.errs = append(d.errs, fmt.Sprintf("%s: %v", topic, err))
		return
	}
	if display.Topics.Meta != topic {
		d.errs = append(d.errs, fmt.Sprintf("%s: id mismatch %q", topic, meta.ID))
		return
	}
	d.displays[meta.ID] = display
}

func (d *discovery) result() ([]*Display, error) {
	d.lock.Lock()
	defer d.lock.Unlock()
	displays := make([]*Display, 0, len(d.displays))
	for _, display := range d.displays {
		displays = append(displays, display)
	}
	sort.Slice(displays, func(i, j int) bool {
		return displays[i].Meta.ID < displays[j].Meta.ID
	})
	if len(d.errs) > 0 {
		return displays, fmt.Errorf("%s", strings.Join(d.errs, "; "))
	}
	return displays, nil
}
