// Command ecginfo prints the summary statistics and spectral peaks of an
// ECG recording stored in a MAT-file.
//
// Usage:
//
//	ecginfo [flags] file.mat
//
// Configuration defaults come from ECG_* environment variables, a .env file
// in the working directory and the YAML file named by ECG_CONFIG or -config.
//
// Examples:
//
//	ecginfo record.mat
//	ecginfo -filter bandpass -cutoff 40 record.mat
//	ecginfo -filter lowpass -cutoff 35 -order 6 -var val -top 3 record.mat
//	ecginfo -list record.mat
//	ecginfo -metrics record.mat 2>metrics.prom
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-ecg/dsp/filter/biquad"
	"github.com/cwbudde/algo-ecg/ecg"
	"github.com/cwbudde/algo-ecg/internal/config"
	"github.com/cwbudde/algo-ecg/internal/logging"
	"github.com/cwbudde/algo-ecg/internal/metrics"
	frequencystats "github.com/cwbudde/algo-ecg/stats/frequency"
	timestats "github.com/cwbudde/algo-ecg/stats/time"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	filter     string
	cutoff     float64
	order      int
	variable   string
	rate       float64
	top        int
	configPath string
	envFile    string
	list       bool
	metrics    bool
}

func parseFlags(args []string, stderr io.Writer) (options, []string, error) {
	var o options
	fset := flag.NewFlagSet("ecginfo", flag.ContinueOnError)
	fset.SetOutput(stderr)
	fset.StringVar(&o.filter, "filter", "none", "filter kind: none, lowpass, highpass, bandpass")
	fset.Float64Var(&o.cutoff, "cutoff", math.NaN(), "cutoff frequency in Hz (default from config)")
	fset.IntVar(&o.order, "order", 0, "Butterworth order (default from config)")
	fset.StringVar(&o.variable, "var", "", "variable to load instead of the first numeric array")
	fset.Float64Var(&o.rate, "rate", 0, "sample rate in Hz (default from config); lowers the cutoff range to its Nyquist frequency")
	fset.IntVar(&o.top, "top", 5, "number of spectral peaks to print")
	fset.StringVar(&o.configPath, "config", "", "YAML config file (overrides ECG_CONFIG)")
	fset.StringVar(&o.envFile, "env", ".env", "dotenv file loaded before the config")
	fset.BoolVar(&o.list, "list", false, "list the candidate signal variables and exit")
	fset.BoolVar(&o.metrics, "metrics", false, "write pipeline metrics in Prometheus text format to stderr on exit")
	fset.Usage = func() {
		fmt.Fprintf(stderr, "Usage: ecginfo [flags] file.mat\n\n")
		fmt.Fprintf(stderr, "Prints statistics and spectral peaks of an ECG recording.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fset.PrintDefaults()
	}
	if err := fset.Parse(args); err != nil {
		return o, nil, err
	}
	return o, fset.Args(), nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	o, files, err := parseFlags(args, stderr)
	if err != nil {
		return 2
	}
	if len(files) != 1 {
		fmt.Fprintf(stderr, "error: expected exactly one MAT-file argument\n")
		return 2
	}

	if err := godotenv.Load(o.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(stderr, "warning: %s: %v\n", o.envFile, err)
	}

	var cfg *config.Config
	if o.configPath != "" {
		cfg, err = config.LoadFile(ctx, o.configPath)
	} else {
		cfg, err = config.Load(ctx)
	}
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	if o.rate > 0 {
		cfg.SampleRate = o.rate
		// The cutoff range follows the Nyquist frequency of the new rate.
		cfg.CutoffMaxHz = min(cfg.CutoffMaxHz, o.rate/2)
		cfg.DefaultCutoffHz = min(cfg.DefaultCutoffHz, cfg.CutoffMaxHz)
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(stderr, "error: -rate %g: %v\n", o.rate, err)
			return 2
		}
	}

	logger, err := logging.New(
		logging.LoggerWithLevel(cfg.LogLevel),
		logging.LoggerWithDevelopment(cfg.LogDevelopment),
		logging.LoggerWithOutputPaths("stderr"),
	)
	if err != nil {
		fmt.Fprintf(stderr, "error: logger: %v\n", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	data, err := os.ReadFile(files[0])
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	if o.list {
		names, err := ecg.Variables(data)
		if err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return 1
		}
		for _, n := range names {
			fmt.Fprintln(stdout, n)
		}
		return 0
	}

	spec, err := filterSpec(o, cfg)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}

	rec := metrics.New(
		metrics.WithNamespace(cfg.MetricsNamespace),
		metrics.WithMetricsEnabled(cfg.MetricsEnabled),
	)
	p := ecg.NewPipeline(
		ecg.FromConfig(cfg),
		ecg.WithLogger(logger.With(zap.String("file", files[0]))),
		ecg.WithMetrics(rec),
	)

	if o.metrics {
		defer func() {
			if err := rec.WriteText(stderr); err != nil {
				fmt.Fprintf(stderr, "error: %v\n", err)
			}
		}()
	}

	res, err := p.Run(ctx, ecg.Request{Data: data, Filter: spec, Variable: o.variable})
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	printResult(stdout, res, spec, cfg, o.top)
	return 0
}

// filterSpec resolves the flags against the config defaults. The cutoff
// must stay within the configured bounds.
func filterSpec(o options, cfg *config.Config) (ecg.FilterSpec, error) {
	kind, err := ecg.ParseFilterKind(o.filter)
	if err != nil {
		return ecg.FilterSpec{}, err
	}

	cutoff := o.cutoff
	if math.IsNaN(cutoff) {
		cutoff = cfg.DefaultCutoffHz
	}
	order := o.order
	if order == 0 {
		order = cfg.FilterOrder
	}

	if kind != ecg.FilterNone && (cutoff < cfg.CutoffMinHz || cutoff > cfg.CutoffMaxHz) {
		return ecg.FilterSpec{}, fmt.Errorf("cutoff %g Hz outside configured range [%g, %g]", cutoff, cfg.CutoffMinHz, cfg.CutoffMaxHz)
	}
	return ecg.FilterSpec{Kind: kind, CutoffHz: cutoff, Order: order}, nil
}

func printResult(w io.Writer, res *ecg.Result, spec ecg.FilterSpec, cfg *config.Config, top int) {
	r := res.Record
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Variable\t%s (#%d, dims %v)\n", r.Name, r.Index, r.Dims)
	fmt.Fprintf(tw, "Samples\t%d\n", r.Len())
	fmt.Fprintf(tw, "Sample rate\t%g Hz\n", r.SampleRate)
	fmt.Fprintf(tw, "Duration\t%.3f s\n", r.Duration())
	fmt.Fprintf(tw, "Window\t%g s\n", ecg.WindowSeconds(r.Duration(), cfg.WindowSeconds))
	if spec.Kind == ecg.FilterNone {
		fmt.Fprintf(tw, "Filter\tnone\n")
	} else {
		fmt.Fprintf(tw, "Filter\t%s, cutoff %g Hz, order %d%s\n", spec.Kind, spec.CutoffHz, spec.Order, cutoffGain(spec, cfg))
	}
	_ = tw.Flush()

	fmt.Fprintln(w)
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	m := res.Summary.Map()
	for _, k := range ecg.SummaryKeys {
		fmt.Fprintf(tw, "%s\t%.6g\t\n", k, m[k])
	}
	st := timestats.Calculate(res.Filtered)
	fmt.Fprintf(tw, "RMS\t%.6g\t\n", st.RMS)
	fmt.Fprintf(tw, "Crest factor\t%.4g\t\n", st.CrestFactor)
	fmt.Fprintf(tw, "Skewness\t%.4g\t\n", st.Skewness)
	fmt.Fprintf(tw, "Kurtosis\t%.4g\t\n", st.Kurtosis)
	fmt.Fprintf(tw, "Zero crossings\t%d\t\n", st.ZeroCrossings)
	_ = tw.Flush()

	fmt.Fprintln(w)
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	shape := res.Spectrum.Shape()
	fmt.Fprintf(tw, "Centroid\t%.2f Hz\t\n", shape.Centroid)
	fmt.Fprintf(tw, "Spread\t%.2f Hz\t\n", shape.Spread)
	fmt.Fprintf(tw, "Rolloff (%.0f%%)\t%.2f Hz\t\n", 100*frequencystats.DefaultRolloff, shape.Rolloff)
	fmt.Fprintf(tw, "Bandwidth (-3 dB)\t%.2f Hz\t\n", shape.Bandwidth)
	fmt.Fprintf(tw, "Flatness\t%.4f\t\n", shape.Flatness)
	for _, hz := range []float64{50, 60} {
		if hz+1 < r.SampleRate/2 {
			fmt.Fprintf(tw, "Mains %g Hz share\t%.3f%%\t\n", hz, 100*res.Spectrum.EnergyRatio(hz-1, hz+1))
		}
	}
	_ = tw.Flush()

	peaks := res.Spectrum.TopPeaks(top)
	if len(peaks) == 0 {
		return
	}
	fmt.Fprintln(w)
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "Peak\tFreq (Hz)\tMagnitude\t\n")
	for i, p := range peaks {
		fmt.Fprintf(tw, "%d\t%.2f\t%.4g\t\n", i+1, p.FrequencyHz, p.Magnitude)
	}
	_ = tw.Flush()
}

// cutoffGain reports the zero-phase gain at the cutoff, twice the dB of a
// single pass.
func cutoffGain(spec ecg.FilterSpec, cfg *config.Config) string {
	sections, err := ecg.DesignFilter(spec, ecg.WithProcessorConfig(cfg.ProcessorConfig()), ecg.WithBandLowHz(cfg.BandpassLowHz))
	if err != nil || len(sections) == 0 {
		return ""
	}
	db := 2 * biquad.NewChain(sections).MagnitudeDB(spec.CutoffHz, cfg.SampleRate)
	return fmt.Sprintf(" (%.2f dB at cutoff)", db)
}
