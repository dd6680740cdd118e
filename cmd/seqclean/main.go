package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"seqclean/internal/config"
	"seqclean/internal/logging"
	"seqclean/internal/prompt"
)

// version is the program version. It can be overridden at build time with -ldflags "-X main.version=..."
var version = "0.1.0"

// app carries state shared by every subcommand.
type app struct {
	cfgPath string
	input   string
	verbose bool

	in     io.Reader
	out    io.Writer
	errOut io.Writer

	cfg    config.Config
	logger *log.Logger
	closer io.Closer
	asker  *prompt.Asker
}

// ask shares one buffered reader over a.in across prompts.
func (a *app) ask() *prompt.Asker {
	if a.asker == nil {
		a.asker = prompt.New(a.in, a.out)
	}
	return a.asker
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	// flags override config
	if a.input != "" {
		cfg.InputFasta = a.input
	}
	a.cfg = cfg

	opts := logging.Options{LogFile: cfg.LogFile, Level: cfg.LogLevel, Verbose: a.verbose}
	if a.errOut != os.Stderr {
		opts.Out = a.errOut
	}
	a.logger, a.closer = logging.New(opts)
	a.logger.Debug("loaded config", "input_fasta", cfg.InputFasta, "output_json", cfg.OutputJSON, "db_path", cfg.DBPath, "log_file", cfg.LogFile, "log_level", cfg.LogLevel)
	return nil
}

// Close releases the log file. cobra skips post-run hooks when a command
// fails, so callers close the app after Execute returns.
func (a *app) Close() error {
	if a.closer == nil {
		return nil
	}
	err := a.closer.Close()
	a.closer = nil
	return err
}

func newRootCmd(in io.Reader, out, errOut io.Writer) (*cobra.Command, *app) {
	a := &app{in: in, out: out, errOut: errOut}
	root := &cobra.Command{
		Use:   "seqclean",
		Short: "Parse, clean and classify FASTA sequences",
		Long: `seqclean reads a FASTA file, drops malformed, invalid and duplicate
entries and reports length, GC content and type for every sequence left.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	root.PersistentFlags().StringVar(&a.cfgPath, "config", "", "path to a JSON or YAML config file (default seqclean.json if present)")
	root.PersistentFlags().StringVar(&a.input, "in", "", "input FASTA file path (overrides config)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose (debug) logging")

	root.AddCommand(
		newRunCmd(a),
		newGenerateCmd(a),
		newAddCmd(a),
		&cobra.Command{
			Use:   "version",
			Short: "Print the version",
			Run: func(cmd *cobra.Command, _ []string) {
				fmt.Fprintln(cmd.OutOrStdout(), "seqclean", version)
			},
		},
	)
	return root, a
}

func main() {
	root, a := newRootCmd(os.Stdin, os.Stdout, os.Stderr)
	err := root.Execute()
	_ = a.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
