package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/spf13/cobra"

	"seqclean/internal/clean"
	"seqclean/internal/fasta"
	"seqclean/internal/generate"
	"seqclean/internal/prompt"
	"seqclean/internal/report"
	"seqclean/internal/store"
)

type runFlags struct {
	output      string
	db          string
	regenerate  bool
	interactive bool
	add         bool
	name        string
	symbols     string
	noCharts    bool
}

func (a *app) logDiagnostics(diags []fasta.Diagnostic) {
	for _, d := range diags {
		a.logger.Warn(d.String(), "kind", d.Kind, "line", d.Line)
	}
}

// load parses the input file. Read faults are fatal for the run.
func (a *app) load() (*fasta.Collection, error) {
	col, diags, err := fasta.ParseFile(a.cfg.InputFasta)
	if err != nil {
		a.logger.Error("cannot continue: failed to read input", "path", a.cfg.InputFasta, "err", err)
		return nil, err
	}
	a.logDiagnostics(diags)
	a.logger.Info("parsed fasta", "path", a.cfg.InputFasta, "records", col.Len(), "diagnostics", len(diags))
	return col, nil
}

func (a *app) println(parts ...any) { fmt.Fprintln(a.out, parts...) }

func (a *app) run(ctx context.Context, f runFlags) error {
	rng := generate.NewRand(a.cfg.Generate.Seed)

	_, statErr := os.Stat(a.cfg.InputFasta)
	if f.regenerate || errors.Is(statErr, fs.ErrNotExist) {
		if err := a.writeFixture(rng, 0); err != nil {
			return err
		}
	}

	var col *fasta.Collection
	for {
		var err error
		if col, err = a.load(); err != nil {
			return err
		}
		msg, _ := report.CountCheck(a.cfg.InputFasta, col.Len(), a.cfg.Display.RequiredMinSequences, a.cfg.Generate.MaxSequences)
		a.println(msg)
		if !f.interactive {
			break
		}
		again, err := a.ask().Confirm("Overwrite the file with a new random set of sequences?")
		if err != nil {
			return err
		}
		if !again {
			break
		}
		if err := a.writeFixture(rng, 0); err != nil {
			return err
		}
	}

	a.println()
	a.println(report.Preview(col.Records(), a.cfg.Display.PreviewCount))

	addOne := f.add || f.name != "" || f.symbols != ""
	if f.interactive && !addOne {
		var err error
		if addOne, err = a.ask().Confirm("Add your own sequence?"); err != nil {
			return err
		}
	}
	if addOne {
		rec, err := a.askRecord(f.name, f.symbols)
		switch {
		case errors.Is(err, prompt.ErrCancelled):
			a.logger.Warn("adding sequence cancelled", "reason", err)
		case err != nil:
			return err
		default:
			a.addRecord(col, rec)
		}
	}

	records := col.Records()
	for _, r := range records[:min(a.cfg.Display.DetailCount, len(records))] {
		a.println(report.Detail(r))
	}

	res := clean.Clean(col, clean.WithLogger(a.logger))
	a.println(report.Summary(res))
	a.println(report.Table(res.Rows))
	if !f.noCharts {
		a.println()
		a.println(report.Charts(res.Rows, a.cfg.Display.ChartBins, a.cfg.Display.ChartWidth))
	}

	return a.export(ctx, f, res)
}

func (a *app) export(ctx context.Context, f runFlags, res clean.Result) error {
	output := a.cfg.OutputJSON
	if f.output != "" {
		output = f.output
	}
	if output != "" {
		if err := store.WriteJSON(output, res.Rows); err != nil {
			a.logger.Error("failed to write output JSON", "path", output, "err", err)
			return err
		}
		a.logger.Info("wrote output JSON", "path", output, "rows", len(res.Rows))
	}

	db := a.cfg.DBPath
	if f.db != "" {
		db = f.db
	}
	if db == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	s, err := store.Open(ctx, db)
	if err != nil {
		a.logger.Error("failed to open database", "path", db, "err", err)
		return err
	}
	defer s.Close()
	run, err := s.SaveRun(ctx, a.cfg.InputFasta, res)
	if err != nil {
		a.logger.Error("failed to store run", "path", db, "err", err)
		return err
	}
	a.logger.Info("stored run", "path", db, "run_id", run.ID, "retained", run.Retained)
	return nil
}

func newRunCmd(a *app) *cobra.Command {
	var f runFlags
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Parse, clean and report on the input FASTA file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd.Context(), f)
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&f.output, "out", "", "write cleaned rows as JSON to this path")
	fl.StringVar(&f.db, "db", "", "store the run in this sqlite database")
	fl.BoolVar(&f.regenerate, "regenerate", false, "overwrite the input with a freshly generated fixture first")
	fl.BoolVarP(&f.interactive, "interactive", "i", false, "ask whether to regenerate the file and whether to add a sequence")
	fl.BoolVar(&f.add, "add", false, "prompt for one extra sequence before cleaning")
	fl.StringVar(&f.name, "name", "", "name of an extra sequence to add before cleaning")
	fl.StringVar(&f.symbols, "symbols", "", "symbols of the extra sequence")
	fl.BoolVar(&f.noCharts, "no-charts", false, "skip the text charts")
	return cmd
}
