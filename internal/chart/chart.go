// Package chart renders aggregated benchmark results as a bar chart with the
// raw samples and medians overlaid.
package chart

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/mwiater/benchchart/internal/report"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const (
	Title = "Benchmark Performance"
	// virtualMarker selects the virtual-dispatch bar colour.
	virtualMarker = "Virtual"
	// labelSeparator splits case keys into the prefix token and label segments.
	labelSeparator = "_"

	barAlpha    = 0.2
	sampleAlpha = 0.1
	medianAlpha = 0.5
	// tickRotation is 80 degrees.
	tickRotation = 80 * math.Pi / 180
)

var (
	VirtualColor = color.NRGBA{R: 0x00, G: 0x80, B: 0x00, A: 0xff}
	DirectColor  = color.NRGBA{R: 0x00, G: 0x00, B: 0xff, A: 0xff}
	SampleColor  = color.NRGBA{R: 0x00, G: 0xff, B: 0xff, A: 0xff}
	MedianColor  = color.NRGBA{R: 0x00, G: 0x80, B: 0x00, A: 0xff}
)

// Options controls the canvas size used both for bar sizing and for saving.
type Options struct {
	Width  vg.Length
	Height vg.Length
}

// DefaultOptions is a 6.4x4.8 inch canvas.
func DefaultOptions() Options {
	return Options{Width: 6.4 * vg.Inch, Height: 4.8 * vg.Inch}
}

// BarColor classifies a case key: keys containing "Virtual" get VirtualColor,
// everything else DirectColor.
func BarColor(key string) color.NRGBA {
	if strings.Contains(key, virtualMarker) {
		return VirtualColor
	}
	return DirectColor
}

// TickLabel drops the leading token of key (BM_ in BM_Inline_Function) and
// puts each remaining segment on its own line.
func TickLabel(key string) string {
	parts := strings.Split(key, labelSeparator)
	return strings.Join(parts[1:], "\n")
}

func withAlpha(c color.NRGBA, alpha float64) color.NRGBA {
	c.A = uint8(math.Round(alpha * 255))
	return c
}

// errorPoints feeds the mean/stddev pairs to plotter.YErrorBars.
type errorPoints struct {
	xys  plotter.XYs
	errs []float64
}

func (e errorPoints) Len() int                         { return len(e.xys) }
func (e errorPoints) XY(i int) (float64, float64)      { return e.xys[i].X, e.xys[i].Y }
func (e errorPoints) YError(i int) (float64, float64) { return e.errs[i], e.errs[i] }

// layers holds the plotters drawn for one result set, in drawing order.
type layers struct {
	bars    []*plotter.BarChart
	errBars *plotter.YErrorBars
	samples *plotter.Scatter
	medians *plotter.Scatter
	ticks   []plot.Tick
}

func buildLayers(results *report.Results, width vg.Length) (layers, error) {
	keys := results.Keys()
	var l layers
	means := errorPoints{xys: make(plotter.XYs, 0, len(keys)), errs: make([]float64, 0, len(keys))}
	var samples, medians plotter.XYs
	l.ticks = make([]plot.Tick, 0, len(keys))

	for i, key := range keys {
		stats, _ := results.Get(key)
		x := float64(i)

		bar, err := plotter.NewBarChart(plotter.Values{stats.Mean}, width)
		if err != nil {
			return layers{}, fmt.Errorf("bar for %s: %w", key, err)
		}
		bar.XMin = x
		bar.Color = withAlpha(BarColor(key), barAlpha)
		bar.LineStyle.Width = vg.Length(0)
		l.bars = append(l.bars, bar)

		means.xys = append(means.xys, plotter.XY{X: x, Y: stats.Mean})
		means.errs = append(means.errs, stats.StdDev)

		for _, v := range stats.CPUTime {
			samples = append(samples, plotter.XY{X: x, Y: v})
		}
		medians = append(medians, plotter.XY{X: x, Y: stats.Median})
		l.ticks = append(l.ticks, plot.Tick{Value: x, Label: TickLabel(key)})
	}

	if len(keys) > 0 {
		errBars, err := plotter.NewYErrorBars(means)
		if err != nil {
			return layers{}, fmt.Errorf("error bars: %w", err)
		}
		errBars.LineStyle.Width = vg.Points(1)
		errBars.CapWidth = vg.Points(10)
		l.errBars = errBars
	}

	if len(samples) > 0 {
		scatter, err := newScatter(samples, withAlpha(SampleColor, sampleAlpha))
		if err != nil {
			return layers{}, fmt.Errorf("sample scatter: %w", err)
		}
		l.samples = scatter
	}

	if len(medians) > 0 {
		scatter, err := newScatter(medians, withAlpha(MedianColor, medianAlpha))
		if err != nil {
			return layers{}, fmt.Errorf("median scatter: %w", err)
		}
		l.medians = scatter
	}
	return l, nil
}

func newScatter(xys plotter.XYs, c color.NRGBA) (*plotter.Scatter, error) {
	scatter, err := plotter.NewScatter(xys)
	if err != nil {
		return nil, err
	}
	scatter.GlyphStyle.Color = c
	scatter.GlyphStyle.Shape = draw.CircleGlyph{}
	scatter.GlyphStyle.Radius = vg.Points(3)
	return scatter, nil
}

// New builds the chart for results. Cases are laid out left to right in key order.
func New(results *report.Results, opts Options) (*plot.Plot, error) {
	keys := results.Keys()

	p := plot.New()
	p.Title.Text = Title
	p.Y.Label.Text = yLabel(results.TimeUnit())

	l, err := buildLayers(results, barWidth(len(keys), opts.Width))
	if err != nil {
		return nil, err
	}
	for _, bar := range l.bars {
		p.Add(bar)
	}
	if l.errBars != nil {
		p.Add(l.errBars)
	}
	if l.samples != nil {
		p.Add(l.samples)
	}
	if l.medians != nil {
		p.Add(l.medians)
	}

	p.X.Tick.Marker = plot.ConstantTicks(l.ticks)
	p.X.Tick.Label.Rotation = tickRotation
	p.X.Tick.Label.XAlign = text.XRight
	p.X.Tick.Label.YAlign = text.YCenter

	// Half a slot of padding on each side keeps the outer bars and their
	// caps inside the data area.
	p.X.Min = -0.5
	p.X.Max = float64(max(len(keys), 1)) - 0.5
	if p.Y.Min > 0 {
		p.Y.Min = 0
	}

	return p, nil
}

// Save writes p to path; the image format follows the file extension.
func Save(p *plot.Plot, path string, opts Options) error {
	if err := p.Save(opts.Width, opts.Height, path); err != nil {
		return fmt.Errorf("save chart %s: %w", path, err)
	}
	return nil
}

func yLabel(unit string) string {
	if unit == "" {
		return "CPU Time"
	}
	return fmt.Sprintf("CPU Time (%s)", unit)
}

// barWidth spreads the bars over roughly 60% of the canvas, capped so a
// handful of cases does not produce slabs.
func barWidth(n int, canvas vg.Length) vg.Length {
	const maxWidth = 40
	if n <= 0 || canvas <= 0 {
		return vg.Points(maxWidth)
	}
	w := canvas * 0.6 / vg.Length(n)
	if w > vg.Points(maxWidth) {
		return vg.Points(maxWidth)
	}
	if w < vg.Points(1) {
		return vg.Points(1)
	}
	return w
}
