package lcd

import (
	"strconv"
	"strings"
)

// Delimiter separates the fields of a control line.
const Delimiter = "|"

// Command is a parsed control line. Colour channels are nominally in
// [0, 1] but are never range checked.
type Command struct {
	Red   float64
	Green float64
	Blue  float64
	Line1 string
	Line2 string
}

// ParseCommand parses R|G|B|LINE1|LINE2.
// Surrounding whitespace of the line is ignored, the text fields are
// taken verbatim and must not contain the delimiter.
func ParseCommand(line string) (*Command, error) {
	line = strings.TrimSpace(line)
	fields := strings.Split(line, Delimiter)
	if len(fields) != 5 {
		return nil, &MalformedInputError{
			Line:   line,
			Reason: "expect 5 fields, got " + strconv.Itoa(len(fields)),
		}
	}
	var rgb [3]float64
	for n := range rgb {
		v, err := strconv.ParseFloat(strings.TrimSpace(fields[n]), 64)
		if err != nil {
			return nil, &MalformedInputError{
				Line:   line,
				Reason: "invalid colour value " + strconv.Quote(fields[n]),
			}
		}
		rgb[n] = v
	}
	return &Command{
		Red:   rgb[0],
		Green: rgb[1],
		Blue:  rgb[2],
		Line1: fields[3],
		Line2: fields[4],
	}, nil
}

// Text returns the two rows joined by a line break.
func (c *Command) Text() string {
	return c.Line1 + "\n" + c.Line2
}

// String formats the command as a control line.
func (c *Command) String() string {
	return strings.Join([]string{
		formatFloat(c.Red),
		formatFloat(c.Green),
		formatFloat(c.Blue),
		c.Line1,
		c.Line2,
	}, Delimiter)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
