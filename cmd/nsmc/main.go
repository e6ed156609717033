// Command nsmc is a thin driver that wires one of the seeded end-to-end
// scenarios of spec.md §8 (circle, eggbox, rosenbrock, lorentzian) into a
// sampler.Sampler and writes the persisted output layout of spec.md §6.
// Flag parsing and plug-in wiring only — no business logic, matching
// SPEC_FULL.md's note that the distilled spec.md explicitly scopes CLI
// parsing out of the core.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"nsmc"
	"nsmc/cluster"
	"nsmc/likelihood"
	"nsmc/output"
	"nsmc/prior"
	"nsmc/reducer"
	"nsmc/sampler"
)

func main() {
	scenario := flag.String("scenario", "circle", "scenario to run: circle|eggbox|rosenbrock|lorentzian")
	observations := flag.String("observations", "", "path to a three-column observation table (lorentzian scenario only)")
	outDir := flag.String("out", "nsmc-out", "output directory for the persisted result layout")
	reducerName := flag.String("reducer", "powerlaw", "live-point reducer: powerlaw|feroz")
	nlive := flag.Int("nlive", 500, "initial live-point count")
	minNlive := flag.Int("min-nlive", 50, "floor for live-point reduction")
	minClusters := flag.Int("min-clusters", 1, "minimum cluster count search bound")
	maxClusters := flag.Int("max-clusters", 10, "maximum cluster count search bound")
	terminationFactor := flag.Float64("termination-factor", 0.01, "stopping threshold on remaining-evidence ratio")
	seed := flag.Uint64("seed", 1, "RNG seed")
	logLevel := flag.String("log-level", "info", "debug|info|warning|fatal")
	flag.Parse()

	applyLogLevel(*logLevel)

	pr, like, dimNames, err := buildScenario(*scenario, *observations)
	if err != nil {
		fmt.Fprintln(os.Stderr, "nsmc:", err)
		os.Exit(1)
	}

	cfg := sampler.DefaultConfig()
	cfg.InitialNobjects = *nlive
	cfg.MinNobjects = *minNlive
	cfg.MinNclusters = *minClusters
	cfg.MaxNclusters = *maxClusters
	cfg.TerminationFactor = *terminationFactor
	cfg.Seed = *seed

	red, err := buildReducer(*reducerName)
	if err != nil {
		fmt.Fprintln(os.Stderr, "nsmc:", err)
		os.Exit(1)
	}

	stream := nsmc.NewStream(*seed)
	clusterer := cluster.NewXMeans(stream)
	projector := cluster.PCAProjector{}

	s, err := sampler.New(cfg, pr, like, clusterer, red, projector)
	if err != nil {
		fmt.Fprintln(os.Stderr, "nsmc: building sampler:", err)
		os.Exit(1)
	}

	result, err := s.Run()
	if err != nil {
		nsmc.LogWarning("nsmc: run ended with error: %v", err)
	}

	fmt.Printf("log Z = %.6g +/- %.3g, H = %.4g, iterations = %d, final N_live = %d\n",
		result.LogZ, result.LogZError, result.H, result.Iterations, result.FinalNLive)

	if writeErr := writeResults(result, cfg, dimNames, *outDir); writeErr != nil {
		fmt.Fprintln(os.Stderr, "nsmc: writing results:", writeErr)
		os.Exit(1)
	}
}

func applyLogLevel(name string) {
	switch name {
	case "debug":
		nsmc.Config.SetLogLevel(nsmc.LogLevelDebug)
	case "warning":
		nsmc.Config.SetLogLevel(nsmc.LogLevelWarning)
	case "fatal":
		nsmc.Config.SetLogLevel(nsmc.LogLevelFatal)
	default:
		nsmc.Config.SetLogLevel(nsmc.LogLevelInfo)
	}
}

func buildReducer(name string) (reducer.Reducer, error) {
	switch name {
	case "powerlaw":
		return reducer.NewPowerlaw(), nil
	case "feroz":
		return reducer.NewFeroz(), nil
	default:
		return nil, nsmc.NewError(nsmc.ErrInvalidPriorBounds, "main.buildReducer", fmt.Errorf("unknown reducer %q", name))
	}
}

// buildScenario wires a prior and likelihood for one of spec.md §8's seeded
// scenarios.
func buildScenario(name, observationsPath string) (*prior.Joint, likelihood.Likelihood, []string, error) {
	switch name {
	case "circle":
		pr, err := prior.NewUniformJoint([]float64{-10, -10}, []float64{10, 10})
		return pr, likelihood.Circle{}, []string{"x", "y"}, err
	case "eggbox":
		pr, err := prior.NewUniformJoint([]float64{0, 0}, []float64{10 * piConst, 10 * piConst})
		return pr, likelihood.Eggbox{}, []string{"x", "y"}, err
	case "rosenbrock":
		pr, err := prior.NewUniformJoint([]float64{-5, -5}, []float64{5, 5})
		return pr, likelihood.NewRosenbrock(), []string{"x", "y"}, err
	case "lorentzian":
		if observationsPath == "" {
			return nil, nil, nil, nsmc.NewError(nsmc.ErrInvalidPriorBounds, "main.buildScenario",
				fmt.Errorf("lorentzian scenario requires -observations"))
		}
		obs, err := output.ReadObservationTable(observationsPath)
		if err != nil {
			return nil, nil, nil, err
		}
		pr, err := prior.NewUniformJoint([]float64{0, 0, 0.01}, []float64{10, 10, 5})
		if err != nil {
			return nil, nil, nil, err
		}
		like := likelihood.Normal{Model: likelihood.LorentzianPeak{}, Observations: obs}
		return pr, like, []string{"centroid", "amplitude", "gamma"}, nil
	default:
		return nil, nil, nil, nsmc.NewError(nsmc.ErrInvalidPriorBounds, "main.buildScenario",
			fmt.Errorf("unknown scenario %q", name))
	}
}

const piConst = 3.14159265358979323846

func writeResults(result *sampler.Result, cfg sampler.Config, dimNames []string, dir string) error {
	w, err := output.NewWriter(dir)
	if err != nil {
		return err
	}
	if err := w.WriteAll(result, cfg, dimNames); err != nil {
		return err
	}
	if err := output.WriteDiagnosticPlots(result, dir, dimNames); err != nil {
		return err
	}
	if err := output.WriteConvergenceChart(result, filepath.Join(dir, "convergence.html")); err != nil {
		return err
	}
	if err := output.WritePosteriorModeScatter(result, dir, dimNames); err != nil {
		return err
	}
	return nil
}
