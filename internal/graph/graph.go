// Package graph renders computed profiles as PNG charts. It only consumes
// the core's output arrays; nothing here feeds back into aggregation.
package graph

import (
	"energy-value-lab/internal/bucket"
	"energy-value-lab/internal/domain"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Canvas size in points, matching the 3:2 layout of the CSV-era charts.
const (
	canvasWidth  = 15 * vg.Inch
	canvasHeight = 10 * vg.Inch
)

// timeTicker labels one tick per hour with the bucket's HH:MM start.
type timeTicker struct{}

func (timeTicker) Ticks(min, max float64) []plot.Tick {
	ticks := make([]plot.Tick, 0, 24)
	for i := 0; i < bucket.Count; i += 60 / bucket.Width {
		v := float64(i)
		if v < min || v > max {
			continue
		}
		ticks = append(ticks, plot.Tick{Value: v, Label: bucket.Label(i)})
	}
	return ticks
}

// Price renders the daily price profile as a bar chart over the 288 buckets.
func Price(path string, p *domain.PriceProfile, title string) error {
	plt := plot.New()
	plt.Title.Text = title
	plt.X.Label.Text = "Time of day"
	plt.Y.Label.Text = "$/MWh"
	plt.X.Tick.Marker = timeTicker{}

	vals := make(plotter.Values, len(p))
	copy(vals, p[:])
	bars, err := plotter.NewBarChart(vals, vg.Points(3))
	if err != nil {
		return err
	}
	bars.LineStyle.Width = 0
	bars.Color = plotutil.Color(2)
	plt.Add(bars)

	return plt.Save(canvasWidth, canvasHeight, path)
}

// Gen renders the daily generation profile as one line series per source
// category, skipping the synthetic total so the named sources stay readable.
func Gen(path string, p *domain.GenProfile, title string) error {
	plt := plot.New()
	plt.Title.Text = title
	plt.X.Label.Text = "Time of day"
	plt.Y.Label.Text = "MWh"
	plt.X.Tick.Marker = timeTicker{}
	plt.Legend.Top = true

	for s := 1; s < domain.NumSources; s++ {
		xys := make(plotter.XYs, bucket.Count)
		for i := range p {
			xys[i].X = float64(i)
			xys[i].Y = p[i][s]
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return err
		}
		line.Color = plotutil.Color(s - 1)
		line.Width = vg.Points(2)
		plt.Add(line)
		plt.Legend.Add(domain.SourceNames[s], line)
	}

	return plt.Save(canvasWidth, canvasHeight, path)
}

// Value renders the weighted average price per source as a bar chart,
// excluding the synthetic total.
func Value(path string, v *domain.ValueProfile, title string) error {
	plt := plot.New()
	plt.Title.Text = title
	plt.X.Label.Text = "Electricity source"
	plt.Y.Label.Text = "$/MWh"

	vals := make(plotter.Values, 0, domain.NumSources-1)
	names := make([]string, 0, domain.NumSources-1)
	for s := 1; s < domain.NumSources; s++ {
		vals = append(vals, v.AvgPrice[s])
		names = append(names, domain.SourceNames[s])
	}

	bars, err := plotter.NewBarChart(vals, vg.Points(24))
	if err != nil {
		return err
	}
	bars.LineStyle.Width = 0
	bars.Color = plotutil.Color(0)
	plt.Add(bars)
	plt.NominalX(names...)

	return plt.Save(canvasWidth, canvasHeight, path)
}
