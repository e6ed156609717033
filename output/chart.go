package output

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"nsmc"
	"nsmc/sampler"
)

// WriteConvergenceChart renders an interactive HTML line chart of the
// evidence (log Z), prior-width (log w) and likelihood-floor (log L*)
// convergence trace — the SUPPLEMENTED interactive diagnostic of
// SPEC_FULL.md §DOMAIN (the posterior scatter is WritePosteriorModeScatter),
// adapted from the teacher's plot.CreateScatterChart (plot/scatter.go): same
// charts.NewLine + opts.Title/opts.XAxis construction, generalized
// from the teacher's named-series DataList input to the sampler's
// iteration history and posterior sample.
func WriteConvergenceChart(result *sampler.Result, path string) error {
	if err := writeConvergenceLine(result, path); err != nil {
		return err
	}
	return nil
}

func writeConvergenceLine(result *sampler.Result, path string) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "nested sampling convergence",
			Subtitle: fmt.Sprintf("log Z = %.4g  H = %.4g", result.LogZ, result.H),
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "iteration"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "value"}),
	)

	iterations := make([]string, len(result.History))
	logZSeries := make([]opts.LineData, len(result.History))
	logWidthSeries := make([]opts.LineData, len(result.History))
	logLStarSeries := make([]opts.LineData, len(result.History))
	for i, rec := range result.History {
		iterations[i] = fmt.Sprintf("%d", rec.Iteration)
		logZSeries[i] = opts.LineData{Value: rec.LogZ}
		logWidthSeries[i] = opts.LineData{Value: rec.LogWidth}
		logLStarSeries[i] = opts.LineData{Value: rec.LogLStar}
	}

	line.SetXAxis(iterations).
		AddSeries("log Z", logZSeries).
		AddSeries("log w", logWidthSeries).
		AddSeries("log L*", logLStarSeries)

	f, err := os.Create(path)
	if err != nil {
		return nsmc.NewError(nsmc.ErrIO, "output.WriteConvergenceChart", err)
	}
	defer f.Close()
	if err := line.Render(f); err != nil {
		return nsmc.NewError(nsmc.ErrIO, "output.WriteConvergenceChart", err)
	}
	return nil
}

// WritePosteriorModeScatter renders an interactive scatter of the
// posterior sample's first two dimensions, colored uniformly (mode
// separation is visual, not computed) — useful for the multi-modal
// scenarios of spec.md §8 (e.g. the eggbox's 18 modes).
func WritePosteriorModeScatter(result *sampler.Result, dir string, dimNames []string) error {
	if len(result.Posterior) == 0 {
		return nil
	}
	d := len(result.Posterior[0].Theta)
	if d < 2 {
		return nil
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "posterior sample"}),
		charts.WithXAxisOpts(opts.XAxis{Name: dimLabel(dimNames, 0), SplitLine: &opts.SplitLine{Show: opts.Bool(true)}}),
		charts.WithYAxisOpts(opts.YAxis{Name: dimLabel(dimNames, 1), SplitLine: &opts.SplitLine{Show: opts.Bool(true)}}),
	)

	xAxis := make([]string, len(result.Posterior))
	data := make([]opts.ScatterData, len(result.Posterior))
	for i, entry := range result.Posterior {
		xAxis[i] = fmt.Sprintf("%.6g", entry.Theta[0])
		data[i] = opts.ScatterData{Value: entry.Theta[1], SymbolSize: 4}
	}
	scatter.SetXAxis(xAxis).AddSeries("posterior", data)

	path := filepath.Join(dir, "posterior_modes.html")
	f, err := os.Create(path)
	if err != nil {
		return nsmc.NewError(nsmc.ErrIO, "output.WritePosteriorModeScatter", err)
	}
	defer f.Close()
	if err := scatter.Render(f); err != nil {
		return nsmc.NewError(nsmc.ErrIO, "output.WritePosteriorModeScatter", err)
	}
	return nil
}
