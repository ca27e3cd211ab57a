package ui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// AspectRatio corrects for terminal cells being roughly twice as tall as wide.
const AspectRatio = 0.5

// GaugeSpec describes the circular engine speed gauge. Angles are in degrees
// with 0 at the top, increasing clockwise.
type GaugeSpec struct {
	Max      float64
	Redline  float64
	StartDeg float64
	EndDeg   float64
	TickStep float64
}

// DefaultGauge returns a 260° sweep from 0 to 3500 rpm with a tick every 500.
func DefaultGauge() GaugeSpec {
	return GaugeSpec{Max: 3500, Redline: 2800, StartDeg: -130, EndDeg: 130, TickStep: 500}
}

// AngleFor maps a value onto the sweep, saturating at both ends.
func (g GaugeSpec) AngleFor(value float64) float64 {
	return g.StartDeg + FillRatio(value, 0, g.Max)*(g.EndDeg-g.StartDeg)
}

// PolarToCell converts an angle and radius to a cell position.
func PolarToCell(centerX, centerY int, radius, deg float64) (col, row int) {
	rad := deg * math.Pi / 180
	col = centerX + int(math.Round(radius*math.Sin(rad)))
	row = centerY - int(math.Round(radius*math.Cos(rad)*AspectRatio))
	return col, row
}

type cellKind int

const (
	cellEmpty cellKind = iota
	cellTrack
	cellActive
	cellRedline
	cellLabel
	cellHub
)

var cellStyles = map[cellKind]lipgloss.Style{
	cellTrack:   StyleGaugeTrack,
	cellActive:  StyleGaugeActive,
	cellRedline: StyleGaugeRedline,
	cellLabel:   StyleGaugeLabel,
	cellHub:     StyleGaugeHub,
}

type canvas struct {
	w, h  int
	runes [][]rune
	kinds [][]cellKind
}

func newCanvas(w, h int) *canvas {
	c := &canvas{w: w, h: h, runes: make([][]rune, h), kinds: make([][]cellKind, h)}
	for i := 0; i < h; i++ {
		c.runes[i] = []rune(strings.Repeat(" ", w))
		c.kinds[i] = make([]cellKind, w)
	}
	return c
}

func (c *canvas) set(col, row int, r rune, k cellKind) {
	if col < 0 || col >= c.w || row < 0 || row >= c.h {
		return
	}
	c.runes[row][col] = r
	c.kinds[row][col] = k
}

// text writes s centered on col.
func (c *canvas) text(col, row int, s string, k cellKind) {
	start := col - len([]rune(s))/2
	for i, r := range []rune(s) {
		c.set(start+i, row, r, k)
	}
}

func (c *canvas) String() string {
	var sb strings.Builder
	for row := 0; row < c.h; row++ {
		col := 0
		for col < c.w {
			k := c.kinds[row][col]
			end := col
			for end < c.w && c.kinds[row][end] == k {
				end++
			}
			run := string(c.runes[row][col:end])
			if st, ok := cellStyles[k]; ok {
				sb.WriteString(st.Render(run))
			} else {
				sb.WriteString(run)
			}
			col = end
		}
		if row < c.h-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// RenderGauge draws the engine speed gauge into a width x height block.
func RenderGauge(g GaugeSpec, value float64, width, height int) string {
	digital := fmt.Sprintf("%.0f", math.Round(value))
	if width < 16 || height < 8 {
		return StyleGaugeHub.Render(digital + " RPM")
	}

	c := newCanvas(width, height)
	centerX, centerY := width/2, height/2
	radius := math.Min(float64(centerX-1), float64(centerY-1)/AspectRatio)

	// Sample the sweep at sub-degree steps so the ring has no gaps at any size.
	const step = 0.5
	redDeg := g.AngleFor(g.Redline)
	for deg := g.StartDeg; deg <= g.EndDeg; deg += step {
		col, row := PolarToCell(centerX, centerY, radius, deg)
		if g.Redline > 0 && deg >= redDeg {
			c.set(col, row, '░', cellRedline)
		} else {
			c.set(col, row, '·', cellTrack)
		}
	}
	if value > 0 {
		valueDeg := g.AngleFor(value)
		for deg := g.StartDeg; deg <= valueDeg; deg += step {
			col, row := PolarToCell(centerX, centerY, radius, deg)
			c.set(col, row, '█', cellActive)
		}
	}

	if g.TickStep > 0 {
		labelR := radius - 3
		for v := 0.0; v <= g.Max; v += g.TickStep {
			col, row := PolarToCell(centerX, centerY, labelR, g.AngleFor(v))
			c.text(col, row, strconv.FormatFloat(v/1000, 'f', -1, 64), cellLabel)
		}
	}

	c.text(centerX, centerY, digital, cellHub)
	c.text(centerX, centerY+1, "RPM", cellLabel)
	if g.Redline > 0 {
		col, row := PolarToCell(centerX, centerY, radius, g.EndDeg)
		c.text(col, row+1, "REDLINE", cellRedline)
	}
	return c.String()
}
