package output

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// WriteHeightChart renders the dendrogram merge-height sequence as an
// HTML line chart with the chosen cut threshold in the subtitle. An
// empty sequence produces no file.
func WriteHeightChart(path string, heights []float64, threshold float64) error {
	if len(heights) == 0 {
		return nil
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "triplclust merge heights",
			Width:     "900px",
			Height:    "500px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Dendrogram merge heights",
			Subtitle: fmt.Sprintf("cut threshold %.6f", threshold),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "merge"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "cdist"}),
	)

	x := make([]string, len(heights))
	data := make([]opts.LineData, len(heights))
	for i, h := range heights {
		x[i] = strconv.Itoa(i)
		data[i] = opts.LineData{Value: h}
	}
	line.SetXAxis(x).AddSeries("cdist", data)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return line.Render(f)
}
