package output

import (
	"fmt"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"nsmc"
	"nsmc/sampler"
)

// WriteDiagnosticPlots renders a per-dimension posterior histogram and a 2D
// scatter of the first two dimensions, saved as PNG files — the SUPPLEMENTED
// diagnostic artifacts of SPEC_FULL.md §DOMAIN, adapted from the teacher's
// gplot package (gplot/histogram.go, gplot/scatter.go, gplot/save_chart.go):
// same plot.Plot + plotter construction, generalized from the teacher's
// DataList/DataTable inputs to a raw posterior sample.
func WriteDiagnosticPlots(result *sampler.Result, dir string, dimNames []string) error {
	if len(result.Posterior) == 0 {
		return nil
	}
	d := len(result.Posterior[0].Theta)

	for j := 0; j < d; j++ {
		values := make(plotter.Values, len(result.Posterior))
		for i, entry := range result.Posterior {
			values[i] = entry.Theta[j]
		}
		name := dimLabel(dimNames, j)

		plt := plot.New()
		plt.Title.Text = fmt.Sprintf("posterior: %s", name)
		plt.X.Label.Text = name
		plt.Y.Label.Text = "count"

		hist, err := plotter.NewHist(values, 50)
		if err != nil {
			return nsmc.NewError(nsmc.ErrIO, "output.WriteDiagnosticPlots", err)
		}
		plt.Add(hist)

		path := filepath.Join(dir, fmt.Sprintf("posterior_%s_hist.png", name))
		if err := plt.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
			return nsmc.NewError(nsmc.ErrIO, "output.WriteDiagnosticPlots", err)
		}
	}

	if d >= 2 {
		xy := make(plotter.XYs, len(result.Posterior))
		for i, entry := range result.Posterior {
			xy[i].X = entry.Theta[0]
			xy[i].Y = entry.Theta[1]
		}
		plt := plot.New()
		plt.Title.Text = "posterior sample: dim0 vs dim1"
		plt.X.Label.Text = dimLabel(dimNames, 0)
		plt.Y.Label.Text = dimLabel(dimNames, 1)

		scatter, err := plotter.NewScatter(xy)
		if err != nil {
			return nsmc.NewError(nsmc.ErrIO, "output.WriteDiagnosticPlots", err)
		}
		scatter.Radius = vg.Points(1.5)
		plt.Add(scatter)

		path := filepath.Join(dir, "posterior_scatter.png")
		if err := plt.Save(6*vg.Inch, 6*vg.Inch, path); err != nil {
			return nsmc.NewError(nsmc.ErrIO, "output.WriteDiagnosticPlots", err)
		}
	}

	return nil
}

func dimLabel(dimNames []string, j int) string {
	if j < len(dimNames) && dimNames[j] != "" {
		return dimNames[j]
	}
	return fmt.Sprintf("dim%d", j)
}
