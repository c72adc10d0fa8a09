package cmd

import (
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/b14-netsim/agentsampler/sampler/kde"
)

var logLevel string // Log verbosity level

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "agentsampler",
	Short: "Synthetic agent trait populations for the polarization simulation",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
	},
}

// methodsCmd lists the registered bandwidth rules
var methodsCmd = &cobra.Command{
	Use:   "methods",
	Short: "List bandwidth estimation methods",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, m := range kde.Methods() {
			suffix := ""
			if m == kde.DefaultMethod {
				suffix = " (default)"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s%s\n", m, suffix)
		}
	},
}

// parseSep turns a separator flag into a single rune. "\t" and "tab" both
// mean a tab character.
func parseSep(s string) (rune, error) {
	switch s {
	case `\t`, "tab":
		return '\t', nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, errors.Errorf("separator must be a single character, got %q", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")

	rootCmd.AddCommand(sampleCmd)
	rootCmd.AddCommand(describeCmd)
	rootCmd.AddCommand(methodsCmd)
}
