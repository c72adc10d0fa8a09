package cmd

import (
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/b14-netsim/agentsampler/sampler"
	"github.com/b14-netsim/agentsampler/sampler/kde"
)

// sampleOptions collects the flags of the sample command.
type sampleOptions struct {
	n              int    // Number of agents to generate
	method         string // Bandwidth estimation rule
	seed           int64  // Seed for all random draws
	includeLastRow bool   // Let the kernel resampler draw the final reference row
	configPath     string // Optional YAML config file

	dataPath  string // Reference table; empty selects the parametric model
	sep       string // Reference table separator
	noHeader  bool   // Reference table has no header row
	outPath   string // Output table; empty writes to stdout
	outSep    string // Output separator
	outNoHead bool   // Omit the header row from the output
	summary   bool   // Print per-trait statistics after sampling
}

var sampleOpts sampleOptions

// sampleCmd generates an agent population and writes it as a delimited table
var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Generate synthetic agent traits",
	Long: `Generate n agent trait vectors (neuroticism, extraversion, openness).

With --data the traits are resampled from a kernel density estimate of the
reference table; without it they are drawn from the built-in multivariate
normal model (overridable in --config). Every value is clamped to [0,1].`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runSample(sampleOpts, cmd.Flags().Changed, cmd.OutOrStdout(), cmd.ErrOrStderr()); err != nil {
			logrus.Fatalf("sample: %v", err)
		}
	},
}

// runSample resolves the sampler configuration, fits, and exports.
func runSample(opts sampleOptions, changed func(string) bool, stdout, stderr io.Writer) error {
	cfg := sampler.Config{
		N:              opts.n,
		Method:         opts.method,
		Seed:           opts.seed,
		IncludeLastRow: opts.includeLastRow,
	}
	if opts.configPath != "" {
		fc, err := LoadConfig(opts.configPath)
		if err != nil {
			return err
		}
		if err := applyFileConfig(&cfg, fc, changed); err != nil {
			return err
		}
	}

	src := sampler.Parametric()
	if opts.dataPath != "" {
		sep, err := parseSep(opts.sep)
		if err != nil {
			return errors.Wrap(err, "--sep")
		}
		src = sampler.FromReference(opts.dataPath, sampler.ReadOptions{Sep: sep, Header: !opts.noHeader})
	}
	outSep, err := parseSep(opts.outSep)
	if err != nil {
		return errors.Wrap(err, "--out-sep")
	}
	writeOpts := sampler.WriteOptions{Sep: outSep, Header: !opts.outNoHead}

	s, err := sampler.NewSampler(cfg)
	if err != nil {
		return err
	}
	logrus.Infof("Sampling %d agents from %s source (method=%s, seed=%d)", s.N(), src.Kind, s.Method(), s.Seed())
	if err := s.Fit(src); err != nil {
		return err
	}
	if bw := s.Bandwidth(); bw != nil {
		logrus.Infof("Kernel bandwidth: %v", bw)
	}

	if opts.outPath == "" {
		if err := s.ExportTo(stdout, writeOpts); err != nil {
			return err
		}
	} else {
		if err := s.Export(opts.outPath, writeOpts); err != nil {
			return err
		}
		logrus.Infof("Wrote %d agents to %s", s.Sample.Len(), opts.outPath)
	}

	if opts.summary {
		renderSummary(stderr, sampler.Summarize(s.Sample), s.Bandwidth())
	}
	return nil
}

func init() {
	f := sampleCmd.Flags()
	f.IntVarP(&sampleOpts.n, "n", "n", 1000, "Number of agents to generate")
	f.StringVar(&sampleOpts.method, "method", kde.DefaultMethod, "Bandwidth estimation method (list with the methods command)")
	f.Int64Var(&sampleOpts.seed, "seed", 42, "Seed for all random draws")
	f.BoolVar(&sampleOpts.includeLastRow, "include-last-row", false, "Allow the final reference row to be drawn as a kernel center")
	f.StringVar(&sampleOpts.configPath, "config", "", "YAML config file (flags given explicitly take precedence)")

	f.StringVar(&sampleOpts.dataPath, "data", "", "Reference table; omit to use the parametric model")
	f.StringVar(&sampleOpts.sep, "sep", ",", "Reference table field separator")
	f.BoolVar(&sampleOpts.noHeader, "no-header", false, "Reference table has no header row; columns are taken in trait order")
	f.StringVar(&sampleOpts.outPath, "out", "", "Output file (default stdout)")
	f.StringVar(&sampleOpts.outSep, "out-sep", ",", "Output field separator")
	f.BoolVar(&sampleOpts.outNoHead, "out-no-header", false, "Omit the header row from the output")
	f.BoolVar(&sampleOpts.summary, "summary", false, "Print per-trait statistics to stderr")
}
