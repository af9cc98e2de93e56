// Package points manages the digitized points of a plot image: data points,
// the four axis-limit markers, selection state and hit testing.
package points

import (
	"fmt"
	"strings"

	"data-digitizer/pkg/geometry"
)

// Kind classifies a point.
type Kind int

const (
	Data Kind = iota
	XMin
	XMax
	YMin
	YMax
)

// LimitKinds lists the four limit kinds.
var LimitKinds = [...]Kind{XMin, XMax, YMin, YMax}

func (k Kind) String() string {
	switch k {
	case Data:
		return "data"
	case XMin:
		return "xmin"
	case XMax:
		return "xmax"
	case YMin:
		return "ymin"
	case YMax:
		return "ymax"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// IsLimit reports whether k is one of the four limit kinds.
func (k Kind) IsLimit() bool {
	return k >= XMin && k <= YMax
}

// IsXLimit reports whether k calibrates the X axis.
func (k Kind) IsXLimit() bool {
	return k == XMin || k == XMax
}

// ParseKind parses the String form of a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "data":
		return Data, nil
	case "xmin":
		return XMin, nil
	case "xmax":
		return XMax, nil
	case "ymin":
		return YMin, nil
	case "ymax":
		return YMax, nil
	}
	return 0, fmt.Errorf("unknown point kind %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if k < Data || k > YMax {
		return nil, fmt.Errorf("invalid point kind %d", int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	v, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// Point is one digitized or calibration position.
//
// Row maps to the Y value axis and Col to the X value axis.
type Point struct {
	Kind     Kind    `json:"kind"`
	Row      int     `json:"row"`
	Col      int     `json:"col"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Selected bool    `json:"selected,omitempty"`

	// selection order; larger is more recent
	selSeq uint64
}

// Pixel returns the point's raster position.
func (p Point) Pixel() geometry.Pixel {
	return geometry.NewPixel(p.Row, p.Col)
}
