package game

import "fmt"

// Disease is one of the four disease colors.
type Disease int

const (
	Blue Disease = iota
	Red
	Black
	Yellow
)

// NumDiseases is the number of disease colors on the board.
const NumDiseases = 4

var diseaseNames = map[Disease]string{
	Blue:   "blue",
	Red:    "red",
	Black:  "black",
	Yellow: "yellow",
}

func (d Disease) String() string {
	if s, ok := diseaseNames[d]; ok {
		return s
	}
	return "unknown"
}

// Valid reports whether d is one of the four colors.
func (d Disease) Valid() bool {
	return d >= Blue && d <= Yellow
}

// Diseases returns all colors in declaration order.
func Diseases() []Disease {
	return []Disease{Blue, Red, Black, Yellow}
}

// ParseDisease maps a color name back to a Disease.
func ParseDisease(s string) (Disease, error) {
	for d, name := range diseaseNames {
		if name == s {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown disease %q", s)
}

// MarshalText implements encoding.TextMarshaler so colors read well in JSON and YAML.
func (d Disease) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Disease) UnmarshalText(b []byte) error {
	parsed, err := ParseDisease(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
