package mqtt

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/golang/glog"

	fx "github.com/robotalks/lcdplate/pkg/framework"
	"github.com/robotalks/lcdplate/pkg/msgs"
)

// DefaultPublishTimeout bounds the wait for a publish to complete.
const DefaultPublishTimeout = time.Second

// ErrPublishTimeout indicates a publish was not acknowledged in time.
var ErrPublishTimeout = errors.New("mqtt publish timeout")

// Topics are the topics of one display, relative to the queue prefix.
type Topics struct {
	Command string
	Button  string
	Meta    string
}

// DeviceTopics returns the topics of the display with id:
// lcdplate/ID/cmd, lcdplate/ID/button and lcdplate/ID/meta.
func DeviceTopics(id string) Topics {
	prefix := "lcdplate/" + id + "/"
	return Topics{
		Command: prefix + "cmd",
		Button:  prefix + "button",
		Meta:    prefix + "meta",
	}
}

// Meta is published retained on the meta topic while the display is
// online; the broker clears it through the last will.
type Meta struct {
	ID     string `json:"id"`
	Format string `json:"format"`
}

// ReadWriter implements LineReadWriter on the topics of one display.
// Control lines are received from the command topic and button names are
// published to the button topic.
type ReadWriter struct {
	Queue   *Queue
	Topics  Topics
	Codec   msgs.Codec
	Meta    Meta
	Timeout time.Duration

	lineCh chan string
	doneCh chan struct{}
}

// NewReadWriter creates the ReadWriter for a display on the broker.
func NewReadWriter(brokerURL, id, format string) (*ReadWriter, error) {
	codec, err := msgs.CodecFor(format)
	if err != nil {
		return nil, err
	}
	opts, topicPrefix, err := ClientOptionsFromURL(brokerURL)
	if err != nil {
		return nil, err
	}
	topics := DeviceTopics(id)
	opts.SetBinaryWill(topicPrefix+topics.Meta, nil, 1, true)
	if opts.ClientID == "" {
		opts.SetClientID("lcdplate:" + id)
	}
	if format == "" {
		format = msgs.FormatText
	}
	return &ReadWriter{
		Queue:   NewQueue(opts, topicPrefix),
		Topics:  topics,
		Codec:   codec,
		Meta:    Meta{ID: id, Format: format},
		Timeout: DefaultPublishTimeout,
		lineCh:  make(chan string, 16),
		doneCh:  make(chan struct{}),
	}, nil
}

// Name implements Named.
func (p *ReadWriter) Name() string {
	return "mqtt"
}

// ReadLine implements LineReader.
// It returns io.EOF after Run returned.
func (p *ReadWriter) ReadLine() (string, error) {
	select {
	case line := <-p.lineCh:
		return line, nil
	case <-p.doneCh:
		return "", io.EOF
	}
}

// WriteLine implements LineWriter.
// A press that can't be published is dropped, the broker being away
// doesn't stop the display.
func (p *ReadWriter) WriteLine(line string) error {
	payload, err := p.Codec.EncodeButton(line)
	if err != nil {
		return err
	}
	if err = p.wait(p.Queue.Pub(p.Topics.Button, payload)); err != nil {
		glog.Warningf("%s: drop %s: %v", p.Topics.Button, line, err)
	}
	return nil
}

// Run implements Runnable. It connects to the broker and keeps the
// subscription until the context is canceled.
func (p *ReadWriter) Run(ctx context.Context) error {
	defer close(p.doneCh)
	sub := p.Queue.Sub(p.Topics.Command, p.handleMsg)
	p.Queue.OnConnect = func(*Queue) { p.publishMeta() }
	token := p.Queue.Connect()
	token.Wait()
	if err := token.Error(); err != nil {
		return err
	}
	<-ctx.Done()
	p.shutdown(sub)
	return ctx.Err()
}

// shutdown unsubscribes, clears the retained meta and disconnects.
// Failures are logged, the returned error is for inspection only.
func (p *ReadWriter) shutdown(sub *Subscription) error {
	var errs fx.AggregatedError
	if err := sub.Close(); err != nil {
		glog.Warningf("%s: unsubscribe error: %v", p.Topics.Command, err)
		errs.Add(err)
	}
	if err := p.wait(p.Queue.PubWith(p.Topics.Meta, nil, 1, true)); err != nil {
		glog.Warningf("%s: clear meta error: %v", p.Topics.Meta, err)
		errs.Add(err)
	}
	p.Queue.Close()
	return errs.Aggregate()
}

func (p *ReadWriter) publishMeta() {
	meta, err := json.Marshal(&p.Meta)
	if err != nil {
		panic(err)
	}
	p.Queue.PubWith(p.Topics.Meta, meta, 1, true)
}

func (p *ReadWriter) handleMsg(topic string, payload []byte) {
	line, err := p.Codec.DecodeCommand(payload)
	if err != nil {
		glog.Warningf("%s: bad payload: %v", topic, err)
		return
	}
	select {
	case p.lineCh <- line:
	case <-p.doneCh:
	}
}

func (p *ReadWriter) wait(token paho.Token) error {
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = DefaultPublishTimeout
	}
	if !token.WaitTimeout(timeout) {
		return ErrPublishTimeout
	}
	return token.Error()
}
