// Package testplot renders synthetic plots with known data, used to check a
// calibration end to end.
package testplot

import (
	"fmt"
	"image/color"
	"log"
	"math"
	"strings"

	"data-digitizer/internal/axis"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Kind selects the axis scales of a synthetic plot.
type Kind int

const (
	Linear Kind = iota
	XLog
	YLog
	LogLog
)

// Kinds lists every synthetic plot kind.
var Kinds = [...]Kind{Linear, XLog, YLog, LogLog}

func (k Kind) String() string {
	switch k {
	case Linear:
		return "linear"
	case XLog:
		return "xlog"
	case YLog:
		return "ylog"
	case LogLog:
		return "loglog"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind parses the String form of a Kind.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if strings.EqualFold(s, k.String()) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown test plot %q (want linear, xlog, ylog or loglog)", s)
}

// Scales returns the X and Y axis scales of the plot kind.
func (k Kind) Scales() (x, y axis.Scale) {
	switch k {
	case XLog:
		return axis.Log, axis.Linear
	case YLog:
		return axis.Linear, axis.Log
	case LogLog:
		return axis.Log, axis.Log
	default:
		return axis.Linear, axis.Linear
	}
}

// Spec describes a rendered synthetic plot.
type Spec struct {
	Kind       Kind
	XMin, XMax float64
	YMin, YMax float64
	Points     plotter.XYs
}

// NewSpec returns the known curve of a plot kind: y = x on linear axes,
// a decade sweep on log axes.
func NewSpec(k Kind, n int) Spec {
	if n < 2 {
		n = 2
	}
	s := Spec{Kind: k}
	xs, ys := k.Scales()

	s.XMin, s.XMax = 0, 10
	if xs == axis.Log {
		s.XMin, s.XMax = 1, 1000
	}
	s.YMin, s.YMax = 0, 100
	if ys == axis.Log {
		s.YMin, s.YMax = 0.1, 1000
	}

	s.Points = make(plotter.XYs, n)
	for i := range s.Points {
		f := float64(i) / float64(n-1)
		s.Points[i].X = lerp(s.XMin, s.XMax, f, xs)
		s.Points[i].Y = lerp(s.YMin, s.YMax, f, ys)
	}
	return s
}

func lerp(a, b, f float64, sc axis.Scale) float64 {
	if sc == axis.Log {
		return math.Pow(10, math.Log10(a)+f*(math.Log10(b)-math.Log10(a)))
	}
	return a + f*(b-a)
}

// Plot builds the gonum plot described by s.
func (s Spec) Plot() (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Test " + s.Kind.String()
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	p.X.Min, p.X.Max = s.XMin, s.XMax
	p.Y.Min, p.Y.Max = s.YMin, s.YMax

	xs, ys := s.Kind.Scales()
	if xs == axis.Log {
		p.X.Scale = plot.LogScale{}
		p.X.Tick.Marker = plot.LogTicks{}
	}
	if ys == axis.Log {
		p.Y.Scale = plot.LogScale{}
		p.Y.Tick.Marker = plot.LogTicks{}
	}
	p.Add(plotter.NewGrid())

	line, pts, err := plotter.NewLinePoints(s.Points)
	if err != nil {
		return nil, err
	}
	line.Color = color.RGBA{B: 200, A: 255}
	pts.Color = color.RGBA{R: 200, A: 255}
	pts.Radius = vg.Points(2)
	p.Add(line, pts)
	return p, nil
}

// Generate renders a plot of kind k to path. The image format follows the
// file extension.
func Generate(k Kind, path string) (Spec, error) {
	s := NewSpec(k, 11)
	p, err := s.Plot()
	if err != nil {
		return Spec{}, err
	}
	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return Spec{}, fmt.Errorf("failed to render test plot: %w", err)
	}
	log.Printf("Rendered %s test plot to %s", k, path)
	return s, nil
}
