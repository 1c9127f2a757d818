// Package chart computes the geometry for the admin charts. Everything is
// expressed in SVG user units on a 0..100 viewBox so the client only has to
// draw what it is given.
package chart

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Palette is cycled through by Pie.
var Palette = []string{"#2563eb", "#10b981", "#f59e0b", "#ef4444", "#8b5cf6"}

type Point struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

type BarItem struct {
	Label  string  `json:"label"`
	Value  float64 `json:"value"`
	Height float64 `json:"height"`
}

// Bar scales every value against the series maximum. Non-positive values
// and a non-positive maximum render as zero-height bars.
func Bar(points []Point, height float64) []BarItem {
	if len(points) == 0 {
		return nil
	}
	max := points[0].Value
	for _, p := range points[1:] {
		if p.Value > max {
			max = p.Value
		}
	}

	out := make([]BarItem, len(points))
	for i, p := range points {
		h := 0.0
		if max > 0 && p.Value > 0 {
			h = p.Value / max * height
		}
		out[i] = BarItem{Label: p.Label, Value: p.Value, Height: h}
	}
	return out
}

type LinePoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

type LineChart struct {
	Points   []LinePoint `json:"points"`
	Polyline string      `json:"polyline"`
	Area     string      `json:"area"`
	Min      float64     `json:"min"`
	Mid      float64     `json:"mid"`
	Max      float64     `json:"max"`
}

// Line lays the series out left to right. A flat series is drawn along the
// bottom edge.
func Line(points []Point) *LineChart {
	if len(points) == 0 {
		return nil
	}
	min, max := points[0].Value, points[0].Value
	for _, p := range points[1:] {
		min = math.Min(min, p.Value)
		max = math.Max(max, p.Value)
	}
	span := max - min
	if span == 0 {
		span = 1
	}

	lc := &LineChart{
		Points: make([]LinePoint, len(points)),
		Min:    min,
		Mid:    (min + max) / 2,
		Max:    max,
	}
	coords := make([]string, len(points))
	for i, p := range points {
		x := 0.0
		if len(points) > 1 {
			x = float64(i) / float64(len(points)-1) * 100
		}
		y := 100 - (p.Value-min)/span*100
		lc.Points[i] = LinePoint{Label: p.Label, Value: p.Value, X: x, Y: y}
		coords[i] = num(x) + "," + num(y)
	}
	lc.Polyline = strings.Join(coords, " ")
	lc.Area = "M 0,100 L " + lc.Polyline + " L 100,100 Z"
	return lc
}

type PieSlice struct {
	Label      string  `json:"label"`
	Value      float64 `json:"value"`
	Percentage float64 `json:"percentage"`
	StartAngle float64 `json:"start_angle"`
	EndAngle   float64 `json:"end_angle"`
	Path       string  `json:"path"`
	Color      string  `json:"color"`
}

const (
	pieCenter = 50.0
	pieRadius = 40.0
)

// Pie returns one wedge per point in series order, starting at twelve
// o'clock and running clockwise. A non-positive total yields nil.
func Pie(points []Point) []PieSlice {
	var total float64
	for _, p := range points {
		total += p.Value
	}
	if len(points) == 0 || total <= 0 {
		return nil
	}

	out := make([]PieSlice, len(points))
	var cumulative float64
	for i, p := range points {
		pct := p.Value / total * 100
		start := cumulative / 100 * 360
		end := (cumulative + pct) / 100 * 360
		cumulative += pct

		x1, y1 := polar(start)
		x2, y2 := polar(end)
		largeArc := 0
		if pct > 50 {
			largeArc = 1
		}
		out[i] = PieSlice{
			Label:      p.Label,
			Value:      p.Value,
			Percentage: math.Round(pct*10) / 10,
			StartAngle: start,
			EndAngle:   end,
			Path: fmt.Sprintf("M 50 50 L %s %s A 40 40 0 %d 1 %s %s Z",
				num(x1), num(y1), largeArc, num(x2), num(y2)),
			Color: Palette[i%len(Palette)],
		}
	}
	return out
}

func polar(angle float64) (float64, float64) {
	rad := (angle - 90) * math.Pi / 180
	return pieCenter + pieRadius*math.Cos(rad), pieCenter + pieRadius*math.Sin(rad)
}

type FunnelStage struct {
	Label      string  `json:"label"`
	Value      float64 `json:"value"`
	Width      float64 `json:"width"`
	Conversion float64 `json:"conversion"`
	DropOff    float64 `json:"drop_off"`
}

// Funnel sizes each stage against the widest one and reports the step
// conversion and drop-off relative to the stage before it.
func Funnel(stages []Point) []FunnelStage {
	if len(stages) == 0 {
		return nil
	}
	max := stages[0].Value
	for _, s := range stages[1:] {
		max = math.Max(max, s.Value)
	}

	out := make([]FunnelStage, len(stages))
	for i, s := range stages {
		fs := FunnelStage{
			Label:      s.Label,
			Value:      s.Value,
			Width:      ratio(s.Value, max),
			Conversion: 100,
		}
		if i > 0 {
			prev := stages[i-1].Value
			fs.Conversion = ratio(s.Value, prev)
			fs.DropOff = ratio(prev-s.Value, prev)
		}
		out[i] = fs
	}
	return out
}

func ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den * 100
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
