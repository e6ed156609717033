// Package output implements the persisted-state layout of spec.md §6: the
// plain-text columnar result files a completed run writes, the trailing
// sampler-configuration block, and the three-column observation-table
// reader. Grounded on the teacher's own file-writing idiom (csv.go,
// datatable_csv.go: os.Create + bufio, explicit *Error returns on failure)
// generalized from CSV to the specific fixed layout spec.md §6 names.
package output

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"

	"nsmc"
	"nsmc/sampler"
)

// Writer persists a completed run's Result to the directory layout of
// spec.md §6. The zero value is not usable; construct with NewWriter.
type Writer struct {
	dir string
}

// NewWriter targets dir, creating it (and any parents) if necessary.
func NewWriter(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nsmc.NewError(nsmc.ErrIO, "output.NewWriter", err)
	}
	return &Writer{dir: dir}, nil
}

// defaultCredibleLevel is the two-sided credible-interval mass used by
// parameterSummary.txt's lower/upper columns (e.g. 0.68 for a ~1-sigma
// interval, 0.95 for a ~2-sigma interval).
const defaultCredibleLevel = 0.68

// WriteAll writes every file spec.md §6 names: one parameter*.txt per
// dimension, logLikelihood.txt, posteriorDistribution.txt,
// evidenceInformation.txt, parameterSummary.txt, and the sampler
// configuration trailing block.
func (w *Writer) WriteAll(result *sampler.Result, cfg sampler.Config, dimNames []string) error {
	if err := w.writeParameters(result, dimNames); err != nil {
		return err
	}
	if err := w.writeLogLikelihood(result); err != nil {
		return err
	}
	weights := normalizedWeights(result.Posterior)
	if err := w.writePosteriorDistribution(weights); err != nil {
		return err
	}
	if err := w.writeEvidenceInformation(result); err != nil {
		return err
	}
	if err := w.writeParameterSummary(result, weights, dimNames, defaultCredibleLevel); err != nil {
		return err
	}
	if err := w.writeConfig(cfg); err != nil {
		return err
	}
	return nil
}

func (w *Writer) create(name string) (*os.File, error) {
	f, err := os.Create(filepath.Join(w.dir, name))
	if err != nil {
		return nil, nsmc.NewError(nsmc.ErrIO, "output.Writer", err)
	}
	return f, nil
}

// writeParameters writes one file per dimension, one posterior-sample
// theta_i value per line, per spec.md §6. The file is "parameter_<name>.txt"
// when dimNames gives a non-empty name for dimension i, else "parameter<i>.txt".
func (w *Writer) writeParameters(result *sampler.Result, dimNames []string) error {
	if len(result.Posterior) == 0 {
		return nil
	}
	d := len(result.Posterior[0].Theta)
	for j := 0; j < d; j++ {
		name := fmt.Sprintf("parameter%d.txt", j)
		if j < len(dimNames) && dimNames[j] != "" {
			name = fmt.Sprintf("parameter_%s.txt", dimNames[j])
		}
		f, err := w.create(name)
		if err != nil {
			return err
		}
		bw := bufio.NewWriter(f)
		for _, entry := range result.Posterior {
			fmt.Fprintf(bw, "%.17g\n", entry.Theta[j])
		}
		if err := bw.Flush(); err != nil {
			f.Close()
			return nsmc.NewError(nsmc.ErrIO, "output.writeParameters", err)
		}
		if err := f.Close(); err != nil {
			return nsmc.NewError(nsmc.ErrIO, "output.writeParameters", err)
		}
	}
	return nil
}

func (w *Writer) writeLogLikelihood(result *sampler.Result) error {
	f, err := w.create("logLikelihood.txt")
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(f)
	for _, entry := range result.Posterior {
		fmt.Fprintf(bw, "%.17g\n", entry.LogL)
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return nsmc.NewError(nsmc.ErrIO, "output.writeLogLikelihood", err)
	}
	return closeOrErr(f, "output.writeLogLikelihood")
}

func (w *Writer) writePosteriorDistribution(weights []float64) error {
	f, err := w.create("posteriorDistribution.txt")
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(f)
	for _, wt := range weights {
		fmt.Fprintf(bw, "%.17g\n", wt)
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return nsmc.NewError(nsmc.ErrIO, "output.writePosteriorDistribution", err)
	}
	return closeOrErr(f, "output.writePosteriorDistribution")
}

// writeEvidenceInformation writes the four lines spec.md §6 specifies:
// log Z, log Z_error, H, N_iterations.
func (w *Writer) writeEvidenceInformation(result *sampler.Result) error {
	f, err := w.create("evidenceInformation.txt")
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(f)
	fmt.Fprintf(bw, "%.17g\n", result.LogZ)
	fmt.Fprintf(bw, "%.17g\n", result.LogZError)
	fmt.Fprintf(bw, "%.17g\n", result.H)
	fmt.Fprintf(bw, "%d\n", result.Iterations)
	if err := bw.Flush(); err != nil {
		f.Close()
		return nsmc.NewError(nsmc.ErrIO, "output.writeEvidenceInformation", err)
	}
	return closeOrErr(f, "output.writeEvidenceInformation")
}

// writeParameterSummary writes, per dimension, the weighted mean, median,
// mode, and credible lower/upper bounds at level (spec.md §6).
func (w *Writer) writeParameterSummary(result *sampler.Result, weights []float64, dimNames []string, level float64) error {
	if len(result.Posterior) == 0 {
		return nil
	}
	d := len(result.Posterior[0].Theta)
	f, err := w.create("parameterSummary.txt")
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(f)
	for j := 0; j < d; j++ {
		values := make([]float64, len(result.Posterior))
		for i, entry := range result.Posterior {
			values[i] = entry.Theta[j]
		}
		mean, median, mode, lo, hi := weightedSummary(values, weights, level)
		name := fmt.Sprintf("dim%d", j)
		if j < len(dimNames) && dimNames[j] != "" {
			name = dimNames[j]
		}
		fmt.Fprintf(bw, "%s mean=%.17g median=%.17g mode=%.17g lower=%.17g upper=%.17g\n",
			name, mean, median, mode, lo, hi)
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return nsmc.NewError(nsmc.ErrIO, "output.writeParameterSummary", err)
	}
	return closeOrErr(f, "output.writeParameterSummary")
}

// writeConfig writes the "sampler configuration trailing block" of
// spec.md §6, exactly the enumerated option table.
func (w *Writer) writeConfig(cfg sampler.Config) error {
	f, err := w.create("samplerConfiguration.txt")
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(f)
	fmt.Fprintf(bw, "initialNobjects=%d\n", cfg.InitialNobjects)
	fmt.Fprintf(bw, "minNobjects=%d\n", cfg.MinNobjects)
	fmt.Fprintf(bw, "maxNdrawAttempts=%d\n", cfg.MaxNdrawAttempts)
	fmt.Fprintf(bw, "NinitialIterationsWithoutClustering=%d\n", cfg.NinitialIterationsWithoutClustering)
	fmt.Fprintf(bw, "NiterationsWithSameClustering=%d\n", cfg.NiterationsWithSameClustering)
	fmt.Fprintf(bw, "initialEnlargementFraction=%.17g\n", cfg.InitialEnlargementFraction)
	fmt.Fprintf(bw, "shrinkingRate=%.17g\n", cfg.ShrinkingRate)
	fmt.Fprintf(bw, "terminationFactor=%.17g\n", cfg.TerminationFactor)
	fmt.Fprintf(bw, "minNclusters=%d\n", cfg.MinNclusters)
	fmt.Fprintf(bw, "maxNclusters=%d\n", cfg.MaxNclusters)
	if err := bw.Flush(); err != nil {
		f.Close()
		return nsmc.NewError(nsmc.ErrIO, "output.writeConfig", err)
	}
	return closeOrErr(f, "output.writeConfig")
}

func closeOrErr(f *os.File, op string) error {
	if err := f.Close(); err != nil {
		return nsmc.NewError(nsmc.ErrIO, op, err)
	}
	return nil
}

// normalizedWeights exponentiates and normalizes the posterior sample's
// log-weights in log-domain (max-subtraction) so they sum to 1, matching
// spec.md §6's "normalized posterior weight per sample."
func normalizedWeights(posterior []sampler.PosteriorEntry) []float64 {
	n := len(posterior)
	if n == 0 {
		return nil
	}
	maxLW := math.Inf(-1)
	for _, e := range posterior {
		if e.LogWeight > maxLW {
			maxLW = e.LogWeight
		}
	}
	weights := make([]float64, n)
	sum := 0.0
	for i, e := range posterior {
		weights[i] = math.Exp(e.LogWeight - maxLW)
		sum += weights[i]
	}
	if sum > 0 {
		for i := range weights {
			weights[i] /= sum
		}
	}
	return weights
}

// weightedSummary computes the weighted mean, median, approximate mode (the
// value of the heaviest sample, since the posterior sample has no natural
// binning), and a two-sided credible interval at the given level.
func weightedSummary(values, weights []float64, level float64) (mean, median, mode, lower, upper float64) {
	n := len(values)
	if n == 0 {
		return
	}
	for i, v := range values {
		mean += v * weights[i]
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return values[order[a]] < values[order[b]] })

	tail := (1 - level) / 2
	cum := 0.0
	medianSet, lowerSet, upperSet := false, false, false
	for _, idx := range order {
		cum += weights[idx]
		if !lowerSet && cum >= tail {
			lower = values[idx]
			lowerSet = true
		}
		if !medianSet && cum >= 0.5 {
			median = values[idx]
			medianSet = true
		}
		if !upperSet && cum >= 1-tail {
			upper = values[idx]
			upperSet = true
		}
	}

	bestW := -1.0
	for i, v := range values {
		if weights[i] > bestW {
			bestW = weights[i]
			mode = v
		}
	}
	return mean, median, mode, lower, upper
}
