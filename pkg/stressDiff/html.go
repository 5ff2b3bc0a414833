package stressDiff

import (
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
	"github.com/liserjrqlxue/goUtil/osUtil"
	"github.com/liserjrqlxue/goUtil/simpleUtil"
)

func generateBarItems(vs []float64) []opts.BarData {
	var items = make([]opts.BarData, 0)
	for _, v := range vs {
		items = append(items, opts.BarData{Value: v})
	}
	return items
}

// HTMLTopTermsBar renders an interactive rendition of the top-terms bar
// chart: term names on the X axis, -log10(FDR) as the series.
func HTMLTopTermsBar(g *GOTable, n int, title, path string) error {
	var top = g.TopN(n)

	var (
		names  []string
		values []float64
	)
	for _, r := range top.Records {
		names = append(names, r.Term)
		values = append(values, NegLog10(r.FDR))
	}

	var bar = charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Theme: types.ThemeWesteros}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: "-log10(FDR)",
		}))
	bar.SetXAxis(names).AddSeries("-log10(FDR)", generateBarItems(values))

	if err := mkdirFor(path); err != nil {
		return err
	}
	var output = osUtil.Create(path)
	defer simpleUtil.DeferClose(output)
	return bar.Render(output)
}

// HTMLCountBar renders an interactive rendition of a count bar chart.
func HTMLCountBar(labels []string, counts []int, title, path string) error {
	var values []float64
	for _, c := range counts {
		values = append(values, float64(c))
	}

	var bar = charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Theme: types.ThemeWesteros}),
		charts.WithTitleOpts(opts.Title{Title: title}))
	bar.SetXAxis(labels).AddSeries("count", generateBarItems(values))

	if err := mkdirFor(path); err != nil {
		return err
	}
	var output = osUtil.Create(path)
	defer simpleUtil.DeferClose(output)
	return bar.Render(output)
}
