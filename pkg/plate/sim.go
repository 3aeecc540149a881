package plate

import (
	"sync"

	"github.com/golang/glog"

	"github.com/robotalks/lcdplate/pkg/lcd"
)

// Sim is a display without hardware. It logs what would be shown and
// reports buttons set by Press.
type Sim struct {
	lock    sync.Mutex
	color   [3]float64
	text    string
	pressed map[lcd.Button]bool
}

// NewSim creates a Sim.
func NewSim() *Sim {
	return &Sim{pressed: make(map[lcd.Button]bool)}
}

// Clear implements lcd.Display.
func (s *Sim) Clear() error {
	s.lock.Lock()
	s.text = ""
	s.lock.Unlock()
	glog.V(1).Info("SIM clear")
	return nil
}

// SetColor implements lcd.Display.
func (s *Sim) SetColor(red, green, blue float64) error {
	s.lock.Lock()
	s.color = [3]float64{red, green, blue}
	s.lock.Unlock()
	glog.Infof("SIM color (%v, %v, %v)", red, green, blue)
	return nil
}

// Message implements lcd.Display.
func (s *Sim) Message(text string) error {
	s.lock.Lock()
	s.text += text
	s.lock.Unlock()
	glog.Infof("SIM message %q", text)
	return nil
}

// IsPressed implements lcd.Display.
func (s *Sim) IsPressed(b lcd.Button) (bool, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.pressed[b], nil
}

// Press sets the state of a button.
func (s *Sim) Press(b lcd.Button, pressed bool) {
	s.lock.Lock()
	s.pressed[b] = pressed
	s.lock.Unlock()
}

// Content returns the backlight colour and the text shown.
func (s *Sim) Content() (color [3]float64, text string) {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.color, s.text
}
