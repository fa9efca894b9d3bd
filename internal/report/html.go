package report

import (
	"fmt"
	"io"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/cwbudde/algo-tremor/measure/tremor"
)

// RenderHTML writes a page with the band-limited spectrum of every analyzed
// point and a hand map of the detected peaks.
func RenderHTML(w io.Writer, res tremor.Result) error {
	page := components.NewPage()

	for _, p := range res.Points {
		if !p.Analyzed() {
			continue
		}
		page.AddCharts(spectrumChart(p))
	}
	page.AddCharts(handMap(res))

	if err := page.Render(w); err != nil {
		return fmt.Errorf("report: render: %w", err)
	}
	return nil
}

func spectrumChart(p tremor.PointResult) *charts.Line {
	band := p.Spectrum.TremorBand()
	x := make([]string, band.Len())
	y := make([]opts.LineData, band.Len())
	for i := range band.Freqs {
		x[i] = fmt.Sprintf("%.2f", band.Freqs[i])
		y[i] = opts.LineData{Value: band.Power[i]}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "900px", Height: "320px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    p.Label,
			Subtitle: fmt.Sprintf("%s, peak %.2f Hz", p.Method, p.Peak.Frequency),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Hz", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: "power"}),
	)
	line.SetXAxis(x).AddSeries(p.Label, y)
	return line
}

func handMap(res tremor.Result) *charts.Scatter {
	maxAmp := 0.0
	for _, p := range res.Points {
		if p.Analyzed() {
			maxAmp = math.Max(maxAmp, p.Peak.Power)
		}
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "600px", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{Title: "Hand map", Subtitle: res.Summary()}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Min: 0, Max: 1}),
		charts.WithYAxisOpts(opts.YAxis{Min: 0, Max: 1}),
	)

	for _, p := range res.Points {
		if !p.Analyzed() {
			continue
		}
		m := MarkerFor(p.Peak.Frequency, p.Peak.Power, maxAmp)
		x, y := p.Point.Position()
		data := []opts.ScatterData{{
			Name:       fmt.Sprintf("%s: %.2f Hz", p.Label, p.Peak.Frequency),
			Value:      []interface{}{x, 1 - y, p.Peak.Frequency},
			SymbolSize: int(math.Round(2 * m.Radius)),
		}}
		scatter.AddSeries(p.Label, data, charts.WithItemStyleOpts(opts.ItemStyle{Color: m.Color()}))
	}
	return scatter
}
