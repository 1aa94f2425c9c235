package chart

import (
	"bytes"
	"fmt"
	"math"
	"os"

	"github.com/AdamBeresnev/cue-stats/internal/stats"
	"github.com/golang/freetype/truetype"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	ContentType = "image/png"

	Title          = "Average score and win rate"
	PlayerAxisName = "Player"
	AvgAxisName    = "Average score"
	WinRateName    = "Win rate (%)"

	width  = 1000
	height = 500
)

var (
	barColor  = drawing.Color{R: 31, G: 119, B: 180, A: 255}.WithAlpha(153)
	lineColor = drawing.Color{R: 214, G: 39, B: 40, A: 255}
)

// LoadFont reads a TrueType font to draw the chart text with. The built-in font
// only covers Latin glyphs, so player names in other scripts need one.
func LoadFont(path string) (*truetype.Font, error) {
	ttf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read chart font: %w", err)
	}
	font, err := truetype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("failed to parse chart font %s: %w", path, err)
	}
	return font, nil
}

// Render draws the average score of every player as bars on the left axis and
// their win rate as a line with markers on the right axis. Players are laid out
// in the table's first-seen order. An empty table still yields a valid image.
// A nil font falls back to the built-in one.
func Render(table *stats.Table, font *truetype.Font) ([]byte, error) {
	graph := build(table, font)

	var buf bytes.Buffer
	if err := graph.Render(gochart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render stats chart: %w", err)
	}
	return buf.Bytes(), nil
}

func build(table *stats.Table, font *truetype.Font) gochart.Chart {
	entries := table.Entries()

	// Padding ticks half a category wide keep the x range non-empty and give the
	// outermost bars room.
	ticks := []gochart.Tick{{Value: -0.5}}
	bars := barSeries{Name: AvgAxisName, Style: gochart.Style{FillColor: barColor, StrokeColor: barColor}}
	line := gochart.ContinuousSeries{
		Name:  WinRateName,
		YAxis: gochart.YAxisPrimary,
		Style: gochart.Style{
			StrokeColor: lineColor,
			StrokeWidth: 2,
			DotColor:    lineColor,
			DotWidth:    4,
		},
	}

	maxAvg := 0.0
	for i, e := range entries {
		x := float64(i)
		ticks = append(ticks, gochart.Tick{Value: x, Label: e.Player})
		bars.XValues = append(bars.XValues, x)
		bars.YValues = append(bars.YValues, e.AvgScore())
		line.XValues = append(line.XValues, x)
		line.YValues = append(line.YValues, e.WinRatePct())
		maxAvg = math.Max(maxAvg, e.AvgScore())
	}
	ticks = append(ticks, gochart.Tick{Value: math.Max(float64(len(entries)), 1) - 0.5})

	yMax := 1.0
	if maxAvg > 0 {
		yMax = math.Ceil(maxAvg * 1.1)
	}

	series := []gochart.Series{bars}
	if len(entries) > 0 {
		series = append(series, line)
	}

	// go-chart puts the primary axis on the right, so the bars use the secondary
	// one. Axis names sit outside the measured tick labels, hence the padding.
	return gochart.Chart{
		Title:  Title,
		Width:  width,
		Height: height,
		Font:   font,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 50, Left: 80, Right: 80, Bottom: 50},
		},
		XAxis: gochart.XAxis{
			Name:  PlayerAxisName,
			Ticks: ticks,
		},
		YAxis: gochart.YAxis{
			Name:  WinRateName,
			Style: gochart.Style{Hidden: len(entries) == 0},
			Range: &gochart.ContinuousRange{Min: 0, Max: 100},
		},
		YAxisSecondary: gochart.YAxis{
			Name:  AvgAxisName,
			Range: &gochart.ContinuousRange{Min: 0, Max: yMax},
		},
		Series: series,
	}
}

// barSeries draws one bar per categorical x value, centered on it.
type barSeries struct {
	Name    string
	Style   gochart.Style
	XValues []float64
	YValues []float64
}

func (b barSeries) GetName() string                { return b.Name }
func (b barSeries) GetYAxis() gochart.YAxisType    { return gochart.YAxisSecondary }
func (b barSeries) GetStyle() gochart.Style        { return b.Style }
func (b barSeries) Len() int                       { return len(b.XValues) }
func (b barSeries) GetValues(i int) (x, y float64) { return b.XValues[i], b.YValues[i] }

func (b barSeries) Validate() error {
	if len(b.XValues) != len(b.YValues) {
		return fmt.Errorf("bar series; must have same length xvalues as yvalues")
	}
	return nil
}

func (b barSeries) Render(r gochart.Renderer, canvasBox gochart.Box, xrange, yrange gochart.Range, defaults gochart.Style) {
	if b.Len() == 0 {
		return
	}

	// Each category spans one x unit; bars take 60% of it.
	unit := float64(xrange.GetDomain()) / xrange.GetDelta()
	half := int(unit * 0.3)
	if half < 1 {
		half = 1
	}

	style := b.Style.InheritFrom(defaults)
	cb := canvasBox.Bottom
	cl := canvasBox.Left
	y0 := yrange.Translate(0)

	for i := 0; i < b.Len(); i++ {
		vx, vy := b.GetValues(i)
		x := cl + xrange.Translate(vx)
		y := yrange.Translate(vy)

		gochart.Draw.Box(r, gochart.Box{
			Top:    cb - y,
			Left:   x - half,
			Right:  x + half,
			Bottom: cb - y0,
		}, style)
	}
}
