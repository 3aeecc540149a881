// Package plate drives the Adafruit RGB 16x2 character LCD plate.
//
// The plate wires an HD44780 compatible LCD, an RGB backlight and five
// buttons to an MCP23017 I2C port expander:
//
//	GPA0..4  SELECT, RIGHT, DOWN, UP, LEFT (active low, pulled up)
//	GPA6, 7  red, green backlight (active low)
//	GPB0     blue backlight (active low)
//	GPB1..4  LCD D7, D6, D5, D4
//	GPB5..7  LCD E, R/W, RS
//
// The expander and the LCD are driven by periph's mcp23xxx and hd44780
// devices, this package only maps the pins. R/W is held low.
// The backlight has no PWM: a channel is on when its value is above 0.
package plate

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/devices/v3/hd44780"
	"periph.io/x/devices/v3/mcp23xxx"
	"periph.io/x/host/v3"

	"github.com/robotalks/lcdplate/pkg/lcd"
)

// DefaultAddress is the I2C address of the MCP23017 on the plate.
const DefaultAddress uint16 = 0x20

// Geometry of the LCD.
const (
	Rows    = 2
	Columns = 16
)

const (
	portA = 0
	portB = 1
)

// port A pins.
const (
	pinRed   = 6
	pinGreen = 7
)

// port B pins.
const (
	pinBlue = 0
	pinD7   = 1
	pinD6   = 2
	pinD5   = 3
	pinD4   = 4
	pinE    = 5
	pinRW   = 6
	pinRS   = 7
)

var buttonPins = map[lcd.Button]int{
	lcd.Select: 0,
	lcd.Right:  1,
	lcd.Down:   2,
	lcd.Up:     3,
	lcd.Left:   4,
}

// Plate implements lcd.Display on the MCP23017.
// It's not safe for concurrent use, wrap it with lcd.Locked.
type Plate struct {
	lcd       *hd44780.Dev
	buttons   map[lcd.Button]gpio.PinIO
	backlight [3]gpio.PinOut
	closer    func() error
}

// Open initializes periph host drivers and opens the plate on the
// named I2C bus ("" for the first available).
func Open(busName string, addr uint16) (*Plate, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph host init: %v", err)
	}
	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, fmt.Errorf("open i2c bus %q: %v", busName, err)
	}
	p, err := New(bus, addr)
	if err != nil {
		bus.Close()
		return nil, err
	}
	p.closer = bus.Close
	return p, nil
}

// New configures the expander pins and initializes the LCD.
// The backlight is turned on white, as the plate does on power up.
func New(bus i2c.Bus, addr uint16) (*Plate, error) {
	p, err := newPlate(bus, addr)
	if err != nil {
		return nil, fmt.Errorf("init plate at %#02x: %v", addr, err)
	}
	return p, nil
}

func newPlate(bus i2c.Bus, addr uint16) (*Plate, error) {
	exp, err := mcp23xxx.NewI2C(bus, mcp23xxx.MCP23017, addr)
	if err != nil {
		return nil, err
	}
	a, b := exp.Pins[portA], exp.Pins[portB]

	p := &Plate{
		buttons:   make(map[lcd.Button]gpio.PinIO),
		backlight: [3]gpio.PinOut{a[pinRed], a[pinGreen], b[pinBlue]},
	}
	for button, n := range buttonPins {
		if err = a[n].In(gpio.PullUp, gpio.NoEdge); err != nil {
			return nil, err
		}
		p.buttons[button] = a[n]
	}
	if err = b[pinRW].Out(gpio.Low); err != nil {
		return nil, err
	}
	if err = p.SetColor(1, 1, 1); err != nil {
		return nil, err
	}
	data := []gpio.PinOut{b[pinD4], b[pinD5], b[pinD6], b[pinD7]}
	if p.lcd, err = hd44780.New(data, b[pinRS], b[pinE]); err != nil {
		return nil, err
	}
	if err = p.lcd.Reset(); err != nil {
		return nil, err
	}
	return p, p.Clear()
}

// Close releases the bus if the plate was opened by Open.
func (p *Plate) Close() error {
	if p.closer != nil {
		return p.closer()
	}
	return nil
}

// Clear implements lcd.Display.
func (p *Plate) Clear() error {
	return p.lcd.Halt()
}

// SetColor implements lcd.Display.
func (p *Plate) SetColor(red, green, blue float64) error {
	for n, v := range [3]float64{red, green, blue} {
		// active low
		level := gpio.High
		if v > 0 {
			level = gpio.Low
		}
		if err := p.backlight[n].Out(level); err != nil {
			return err
		}
	}
	return nil
}

// Message implements lcd.Display.
// Characters beyond the last row are dropped, runes outside the
// character ROM are shown as '?'.
func (p *Plate) Message(text string) error {
	rows := make([][]byte, 1, Rows)
	for _, r := range text {
		if r == '\n' {
			if len(rows) == Rows {
				break
			}
			rows = append(rows, nil)
			continue
		}
		if r < 0x20 || r > 0xff {
			r = '?'
		}
		rows[len(rows)-1] = append(rows[len(rows)-1], byte(r))
	}
	for n, row := range rows {
		if n > 0 {
			if err := p.lcd.SetCursor(uint8(n), 0); err != nil {
				return err
			}
		}
		if len(row) == 0 {
			continue
		}
		if err := p.lcd.Print(string(row)); err != nil {
			return err
		}
	}
	return nil
}

// IsPressed implements lcd.Display.
func (p *Plate) IsPressed(b lcd.Button) (bool, error) {
	pin, ok := p.buttons[b]
	if !ok {
		return false, fmt.Errorf("invalid button %v", b)
	}
	return pin.Read() == gpio.Low, nil
}
