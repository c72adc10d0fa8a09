package cmd

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/b14-netsim/agentsampler/sampler"
	"github.com/b14-netsim/agentsampler/sampler/kde"
)

var (
	describeSep      string // Field separator of the described table
	describeNoHeader bool   // Described table has no header row
	describeMethod   string // Bandwidth rule reported alongside the statistics
)

// describeCmd prints per-trait statistics of a trait table
var describeCmd = &cobra.Command{
	Use:   "describe <file>",
	Short: "Summarize a reference or generated trait table",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runDescribe(args[0], describeSep, !describeNoHeader, describeMethod, cmd.OutOrStdout()); err != nil {
			logrus.Fatalf("describe: %v", err)
		}
	},
}

func runDescribe(path, sepFlag string, header bool, method string, w io.Writer) error {
	sep, err := parseSep(sepFlag)
	if err != nil {
		return errors.Wrap(err, "--sep")
	}
	t, err := sampler.ReadTable(path, sampler.ReadOptions{Sep: sep, Header: header})
	if err != nil {
		return err
	}
	if t.Len() < 2 {
		renderSummary(w, sampler.Summarize(t), nil)
		return nil
	}

	k, err := kde.New(t.Matrix(), method)
	if err != nil {
		return errors.Wrapf(err, "estimating bandwidth of %s", path)
	}
	renderSummary(w, sampler.Summarize(t), k.Bandwidth())
	fmt.Fprintf(w, "method %s, mean density at observations %s\n", k.Method(), f4(meanDensity(k, t)))
	return nil
}

// meanDensity averages the estimated density over the table's own rows.
func meanDensity(k *kde.KDE, t *sampler.Table) float64 {
	total := 0.0
	for _, row := range t.Rows {
		total += k.PDF(row[:])
	}
	return total / float64(t.Len())
}

// renderSummary writes one table row per trait. A non-nil bw adds a
// bandwidth column.
func renderSummary(w io.Writer, summaries []sampler.TraitSummary, bw []float64) {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	header := table.Row{"trait", "n", "mean", "sd", "min", "p5", "median", "p95", "max"}
	if bw != nil {
		header = append(header, "bandwidth")
	}
	tw.AppendHeader(header)
	for i, s := range summaries {
		row := table.Row{
			string(s.Trait), s.Count,
			f4(s.Mean), f4(s.StdDev), f4(s.Min), f4(s.P5), f4(s.Median), f4(s.P95), f4(s.Max),
		}
		if bw != nil {
			row = append(row, f4(bw[i]))
		}
		tw.AppendRow(row)
	}
	fmt.Fprintln(w, tw.Render())
}

func f4(v float64) string {
	return fmt.Sprintf("%.4f", v)
}

func init() {
	describeCmd.Flags().StringVar(&describeSep, "sep", ",", "Field separator")
	describeCmd.Flags().BoolVar(&describeNoHeader, "no-header", false, "Table has no header row")
	describeCmd.Flags().StringVar(&describeMethod, "method", kde.DefaultMethod, "Bandwidth estimation method to report")
}
