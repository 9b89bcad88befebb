package chart

import (
	"bytes"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/mwiater/benchchart/internal/report"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

func TestBarColor(t *testing.T) {
	virtual := []string{"BM_Virtual_FunctionPointer", "BM_Direct_Virtual_Function", "Virtual", "xVirtualx"}
	for _, key := range virtual {
		if got := BarColor(key); got != VirtualColor {
			t.Fatalf("BarColor(%q) = %v, want virtual colour", key, got)
		}
	}
	direct := []string{"BM_Inline_Function", "BM_virtual_lowercase", "", "BM_StdFunction"}
	for _, key := range direct {
		if got := BarColor(key); got != DirectColor {
			t.Fatalf("BarColor(%q) = %v, want direct colour", key, got)
		}
	}
}

func TestTickLabel(t *testing.T) {
	cases := map[string]string{
		"BM_Inline_Function":                 "Inline\nFunction",
		"BM_FunctionPointer":                 "FunctionPointer",
		"BM_DefaultMulticast_InvokeFunction": "DefaultMulticast\nInvokeFunction",
		"NoSeparator":                        "",
		"BM_":                                "",
	}
	for input, expected := range cases {
		if got := TickLabel(input); got != expected {
			t.Fatalf("TickLabel(%q) = %q, want %q", input, got, expected)
		}
	}
}

func sampleResults(t *testing.T) *report.Results {
	t.Helper()
	records := []report.Record{
		{Name: "BM_Inline_Function/iterations:1000", RunType: report.RunTypeIteration, CPUTime: 1.0, TimeUnit: "ms"},
		{Name: "BM_Inline_Function/iterations:1000", RunType: report.RunTypeIteration, CPUTime: 1.2, TimeUnit: "ms"},
		{Name: "BM_Inline_Function/iterations:1000_mean", RunType: report.RunTypeAggregate, AggregateName: report.AggregateMean, CPUTime: 1.1},
		{Name: "BM_Inline_Function/iterations:1000_median", RunType: report.RunTypeAggregate, AggregateName: report.AggregateMedian, CPUTime: 1.1},
		{Name: "BM_Inline_Function/iterations:1000_stddev", RunType: report.RunTypeAggregate, AggregateName: report.AggregateStdDev, CPUTime: 0.14},
		{Name: "BM_Virtual_Call/iterations:1000", RunType: report.RunTypeIteration, CPUTime: 2.0, TimeUnit: "ms"},
		{Name: "BM_Virtual_Call/iterations:1000_mean", RunType: report.RunTypeAggregate, AggregateName: report.AggregateMean, CPUTime: 2.0},
	}
	results, err := report.Aggregate(records)
	if err != nil {
		t.Fatalf("Aggregate error: %v", err)
	}
	return results
}

func TestNewBuildsTicksAndLabels(t *testing.T) {
	p, err := New(sampleResults(t), DefaultOptions())
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if p.Title.Text != Title {
		t.Fatalf("title = %q", p.Title.Text)
	}
	if p.Y.Label.Text != "CPU Time (ms)" {
		t.Fatalf("y label = %q", p.Y.Label.Text)
	}
	ticks := p.X.Tick.Marker.Ticks(p.X.Min, p.X.Max)
	want := []plot.Tick{{Value: 0, Label: "Inline\nFunction"}, {Value: 1, Label: "Virtual\nCall"}}
	if len(ticks) != len(want) {
		t.Fatalf("ticks = %+v", ticks)
	}
	for i := range want {
		if ticks[i] != want[i] {
			t.Fatalf("tick %d = %+v, want %+v", i, ticks[i], want[i])
		}
	}
	if p.X.Min != -0.5 || p.X.Max != 1.5 {
		t.Fatalf("x range = [%v, %v]", p.X.Min, p.X.Max)
	}
	if p.X.Tick.Label.Rotation == 0 {
		t.Fatal("expected rotated tick labels")
	}
}

func TestSaveWritesPNG(t *testing.T) {
	opts := DefaultOptions()
	p, err := New(sampleResults(t), opts)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	path := filepath.Join(t.TempDir(), "benchmark_fig.png")
	if err := Save(p, path, opts); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read chart: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Fatalf("expected PNG output, got %q", data[:8])
	}
}

func TestNewEmptyResults(t *testing.T) {
	results, err := report.Aggregate(nil)
	if err != nil {
		t.Fatalf("Aggregate error: %v", err)
	}
	opts := DefaultOptions()
	p, err := New(results, opts)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if p.Y.Label.Text != "CPU Time" {
		t.Fatalf("y label = %q", p.Y.Label.Text)
	}
	if err := Save(p, filepath.Join(t.TempDir(), "empty.png"), opts); err != nil {
		t.Fatalf("Save error: %v", err)
	}
}

func TestBarWidth(t *testing.T) {
	opts := DefaultOptions()
	if got := barWidth(1, opts.Width); got != 40 {
		t.Fatalf("single bar width = %v, want capped at 40pt", got)
	}
	if got := barWidth(100, opts.Width); got >= 40 || got <= 0 {
		t.Fatalf("crowded bar width = %v", got)
	}
	if got := barWidth(0, 0); got != 40 {
		t.Fatalf("degenerate bar width = %v", got)
	}
}

func TestBuildLayersPlacesStatistics(t *testing.T) {
	results := sampleResults(t)
	l, err := buildLayers(results, vg.Points(20))
	if err != nil {
		t.Fatalf("buildLayers error: %v", err)
	}

	keys := results.Keys()
	if len(l.bars) != len(keys) {
		t.Fatalf("bars = %d, want %d", len(l.bars), len(keys))
	}
	for i, key := range keys {
		stats, _ := results.Get(key)
		bar := l.bars[i]
		if len(bar.Values) != 1 || bar.Values[0] != stats.Mean {
			t.Fatalf("%s: bar values = %v, want [%v]", key, bar.Values, stats.Mean)
		}
		if bar.XMin != float64(i) {
			t.Fatalf("%s: bar x = %v, want %d", key, bar.XMin, i)
		}
		want := withAlpha(BarColor(key), barAlpha)
		if got, ok := bar.Color.(color.NRGBA); !ok || got != want {
			t.Fatalf("%s: bar colour = %v, want %v", key, bar.Color, want)
		}
		if want.A != 51 {
			t.Fatalf("bar alpha = %d, want 51", want.A)
		}
	}
	if got := l.bars[1].Color.(color.NRGBA); got.G != VirtualColor.G || got.B != VirtualColor.B {
		t.Fatalf("virtual case should use the virtual colour, got %v", got)
	}

	if l.errBars == nil || len(l.errBars.XYs) != len(keys) {
		t.Fatalf("error bars = %+v", l.errBars)
	}
	for i, key := range keys {
		stats, _ := results.Get(key)
		xy := l.errBars.XYs[i]
		if xy.X != float64(i) || xy.Y != stats.Mean {
			t.Fatalf("%s: error bar centre = %+v", key, xy)
		}
		low, high := l.errBars.YErrors[i].Low, l.errBars.YErrors[i].High
		if low != stats.StdDev || high != stats.StdDev {
			t.Fatalf("%s: error = (%v, %v), want %v", key, low, high, stats.StdDev)
		}
	}

	wantSamples := plotter.XYs{{X: 0, Y: 1.0}, {X: 0, Y: 1.2}, {X: 1, Y: 2.0}}
	if l.samples == nil || len(l.samples.XYs) != len(wantSamples) {
		t.Fatalf("samples = %+v", l.samples)
	}
	for i, want := range wantSamples {
		if l.samples.XYs[i] != want {
			t.Fatalf("sample %d = %+v, want %+v", i, l.samples.XYs[i], want)
		}
	}
	if got := l.samples.GlyphStyle.Color; got != withAlpha(SampleColor, sampleAlpha) {
		t.Fatalf("sample colour = %v", got)
	}

	wantMedians := plotter.XYs{{X: 0, Y: 1.1}, {X: 1, Y: 0}}
	if l.medians == nil || len(l.medians.XYs) != len(wantMedians) {
		t.Fatalf("medians = %+v", l.medians)
	}
	for i, want := range wantMedians {
		if l.medians.XYs[i] != want {
			t.Fatalf("median %d = %+v, want %+v", i, l.medians.XYs[i], want)
		}
	}
	if got := l.medians.GlyphStyle.Color; got != withAlpha(MedianColor, medianAlpha) {
		t.Fatalf("median colour = %v", got)
	}
}

func TestBuildLayersEmpty(t *testing.T) {
	results, err := report.Aggregate(nil)
	if err != nil {
		t.Fatalf("Aggregate error: %v", err)
	}
	l, err := buildLayers(results, vg.Points(20))
	if err != nil {
		t.Fatalf("buildLayers error: %v", err)
	}
	if len(l.bars) != 0 || l.errBars != nil || l.samples != nil || l.medians != nil {
		t.Fatalf("expected no layers, got %+v", l)
	}
}
