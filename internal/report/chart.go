package report

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// WriteChart renders a standalone HTML bar chart of mean SVF per sector,
// one series per occlusion class. The file is self-contained apart from the
// echarts CDN assets.
func WriteChart(path string, summaries []Summary) error {
	if len(summaries) == 0 {
		return fmt.Errorf("report: no summaries to chart")
	}
	sectors := []string{}
	series := map[string][]opts.BarData{}
	firstClass := summaries[0].Class
	for _, s := range summaries {
		if s.Class == firstClass {
			sectors = append(sectors, s.Sector)
		}
		series[s.Class] = append(series[s.Class], opts.BarData{Value: s.Mean})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Sky View Factor report",
			Width:     "900px",
			Height:    "520px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Mean SVF by sector",
			Subtitle: "split by occlusion class",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(sectors)
	for _, class := range []string{"surface", "veg", "vegadj"} {
		if data, ok := series[class]; ok {
			bar.AddSeries(class, data)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: %w", err)
	}
	if err := bar.Render(f); err != nil {
		f.Close()
		return fmt.Errorf("report: render chart: %w", err)
	}
	return f.Close()
}
