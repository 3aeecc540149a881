package sh

import (
	"encoding/json"
	"flag"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/abiosoft/ishell"
	"github.com/golang/glog"

	"github.com/robotalks/lcdplate/pkg/comm/mqtt"
	"github.com/robotalks/lcdplate/pkg/lcd"
	"github.com/robotalks/lcdplate/pkg/msgs"
)

// Config provides the options of the shell.
type Config struct {
	MQTTBrokerURL string
	MQTTFormat    string
	ID            string
	Timeout       time.Duration
}

// Shell provides ishell backed interactive shell.
type Shell struct {
	Interactive bool
	OutputJSON  bool

	Shell   *ishell.Shell
	Config  *Config
	Client  *Client
	Display *Display
}

const (
	shellKey          = "$shell"
	unconnectedPrompt = "[none] > "

	defaultWatchSeconds = 10
)

var (
	// flags

	evalOnly   bool
	outputJSON bool

	defaultConfig = Config{
		MQTTBrokerURL: mqtt.DefaultBrokerURL(),
		MQTTFormat:    msgs.FormatText,
		Timeout:       time.Second,
	}

	commands = []*ishell.Cmd{
		&ListCmd,
		&UseCmd,
		&SendCmd,
		&ShowCmd,
		&StatusCmd,
		&WatchCmd,
	}
)

func init() {
	flag.BoolVar(&evalOnly, "e", evalOnly, "Evaluation only, no interactive shell.")
	flag.BoolVar(&outputJSON, "json", outputJSON, "Print output in JSON.")
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.MQTTBrokerURL, "mqtt", defaultConfig.MQTTBrokerURL, "MQTT broker URL. Defaults to $"+mqtt.BrokerURLEnv+".")
	flag.StringVar(&defaultConfig.MQTTFormat, "mqtt-format", defaultConfig.MQTTFormat, "Payload format of the display: text or proto.")
	flag.StringVar(&defaultConfig.ID, "id", defaultConfig.ID, "Display ID to use.")
	flag.DurationVar(&defaultConfig.Timeout, "timeout", defaultConfig.Timeout, "Broker operation timeout.")
}

// NewConfig creates a Config with default configurations.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// New creates a new shell.
func New(conf *Config) *Shell {
	s := &Shell{
		Interactive: !evalOnly,
		OutputJSON:  outputJSON,

		Shell:  ishell.New(),
		Config: conf,
	}
	s.Shell.Set(shellKey, s)
	s.Shell.SetPrompt(unconnectedPrompt)
	for _, cmd := range commands {
		s.Shell.AddCmd(cmd)
	}
	return s
}

// ShellFrom gets Shell from ishell context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

// MustUseDisplay wraps command func requires a selected display.
func MustUseDisplay(fn func(c *ishell.Context)) func(c *ishell.Context) {
	return func(c *ishell.Context) {
		if ShellFrom(c).Display == nil {
			c.Err(fmt.Errorf("no display selected"))
			return
		}
		fn(c)
	}
}

// Use selects the display with id.
func (s *Shell) Use(id string) error {
	format := s.Config.MQTTFormat
	if s.Display != nil && s.Display.Meta.ID == id {
		format = s.Display.Meta.Format
	}
	d, err := NewDisplay(id, format)
	if err != nil {
		return err
	}
	s.Display = d
	s.Shell.SetPrompt(fmt.Sprintf("%s > ", id))
	return nil
}

// Send sends a control line to the selected display.
func (s *Shell) Send(c *ishell.Context, line string) {
	if err := s.Client.Send(s.Display, line); err != nil {
		c.Err(err)
		return
	}
	if s.Interactive {
		c.Println("OK")
	}
}

// Run runs the shell.
func (s *Shell) Run(args ...string) {
	if s.Config.MQTTBrokerURL == "" {
		glog.Exitf("MQTT broker URL is required, use -mqtt or $%s", mqtt.BrokerURLEnv)
	}
	client, err := NewClient(s.Config.MQTTBrokerURL, s.Config.Timeout)
	if err != nil {
		glog.Exitf("connect %s failed: %v", s.Config.MQTTBrokerURL, err)
	}
	s.Client = client
	defer client.Close()

	if s.Config.ID != "" {
		if err := s.Use(s.Config.ID); err != nil {
			glog.Exitln(err)
		}
	}

	if len(args) > 0 {
		if err := s.Shell.Process(args...); err != nil {
			glog.Exitln(err)
		}
		return
	}
	if s.Interactive {
		s.Shell.Run()
		return
	}
	glog.Exitln("command expected")
}

// ShowLine builds a control line from R G B LINE1 [LINE2].
func ShowLine(args []string) (string, error) {
	if len(args) < 4 || len(args) > 5 {
		return "", fmt.Errorf("expect R G B LINE1 [LINE2]")
	}
	fields := append(append([]string{}, args...), "")[:5]
	return validLine(strings.Join(fields, lcd.Delimiter))
}

// StatusLine builds a control line from STATUS LINE1 [LINE2].
func StatusLine(args []string) (string, error) {
	if len(args) < 2 || len(args) > 3 {
		return "", fmt.Errorf("expect STATUS LINE1 [LINE2]")
	}
	cmd := lcd.StatusCommand(lcd.Status(strings.ToUpper(args[0])), args[1], "")
	if len(args) > 2 {
		cmd.Line2 = args[2]
	}
	return validLine(cmd.String())
}

func validLine(line string) (string, error) {
	cmd, err := lcd.ParseCommand(line)
	if err != nil {
		return "", err
	}
	return cmd.String(), nil
}

func watchDuration(args []string) (time.Duration, error) {
	secs := defaultWatchSeconds
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			return 0, fmt.Errorf("invalid seconds %q", args[0])
		}
		secs = n
	}
	return time.Duration(secs) * time.Second, nil
}

var (
	// ListCmd discovers online displays.
	ListCmd = ishell.Cmd{
		Name:    "list",
		Aliases: []string{"discover", "l"},
		Help:    "list online displays",
		Func: func(c *ishell.Context) {
			s := ShellFrom(c)
			// bad meta payloads are reported, the valid displays are
			// still listed.
			displays, err := s.Client.Discover()
			if err != nil {
				c.Err(err)
			}
			if s.OutputJSON {
				metas := make([]mqtt.Meta, len(displays))
				for n, d := range displays {
					metas[n] = d.Meta
				}
				out, err := json.Marshal(metas)
				if err != nil {
					c.Err(err)
					return
				}
				c.Println(string(out))
				return
			}
			if len(displays) == 0 {
				c.Println("No displays found")
				return
			}
			for _, d := range displays {
				c.Printf("%s (%s)\n", d.Meta.ID, d.Meta.Format)
			}
		},
	}

	// UseCmd selects a display.
	UseCmd = ishell.Cmd{
		Name:    "use",
		Aliases: []string{"u"},
		Help:    "[ID]",
		Func: func(c *ishell.Context) {
			s := ShellFrom(c)
			if len(c.Args) > 0 {
				if err := s.Use(c.Args[0]); err != nil {
					c.Err(err)
				}
				return
			}
			displays, err := s.Client.Discover()
			if err != nil {
				c.Err(err)
				return
			}
			if len(displays) == 0 {
				c.Err(fmt.Errorf("no display discovered"))
				return
			}
			index := 0
			if len(displays) > 1 {
				if !s.Interactive {
					c.Err(fmt.Errorf("more than 1 displays discovered in non-interactive mode"))
					return
				}
				items := make([]string, len(displays))
				for n, d := range displays {
					items[n] = d.Meta.ID
				}
				index = c.MultiChoice(items, "Which one to use?")
			}
			s.Display = displays[index]
			s.Shell.SetPrompt(fmt.Sprintf("%s > ", s.Display.Meta.ID))
		},
	}

	// SendCmd sends a raw control line.
	SendCmd = ishell.Cmd{
		Name: "send",
		Help: "R|G|B|LINE1|LINE2",
		Func: MustUseDisplay(func(c *ishell.Context) {
			ShellFrom(c).Send(c, strings.Join(c.Args, " "))
		}),
	}

	// ShowCmd shows text with a backlight colour.
	ShowCmd = ishell.Cmd{
		Name:    "show",
		Aliases: []string{"s"},
		Help:    "R G B LINE1 [LINE2]",
		Func: MustUseDisplay(func(c *ishell.Context) {
			line, err := ShowLine(c.Args)
			if err != nil {
				c.Err(err)
				return
			}
			ShellFrom(c).Send(c, line)
		}),
	}

	// StatusCmd shows text with the colour of a status.
	StatusCmd = ishell.Cmd{
		Name: "status",
		Help: "IDLE|ACTIVE|FAILED LINE1 [LINE2]",
		Func: MustUseDisplay(func(c *ishell.Context) {
			line, err := StatusLine(c.Args)
			if err != nil {
				c.Err(err)
				return
			}
			ShellFrom(c).Send(c, line)
		}),
	}

	// WatchCmd prints button presses.
	WatchCmd = ishell.Cmd{
		Name:    "watch",
		Aliases: []string{"w"},
		Help:    "[SECONDS]",
		Func: MustUseDisplay(func(c *ishell.Context) {
			s := ShellFrom(c)
			duration, err := watchDuration(c.Args)
			if err != nil {
				c.Err(err)
				return
			}
			stop := make(chan struct{})
			time.AfterFunc(duration, func() { close(stop) })
			s.Client.Watch(s.Display, stop, func(name string) {
				c.Println(name)
			})
		}),
	}
)

// Main is a helper to provide a single call in main.
func Main() {
	flag.Parse()
	defer glog.Flush()
	New(NewConfig()).Run(flag.Args()...)
}
