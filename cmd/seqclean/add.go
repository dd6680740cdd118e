package main

import (
	"errors"

	"github.com/spf13/cobra"

	"seqclean/internal/classify"
	"seqclean/internal/fasta"
	"seqclean/internal/prompt"
)

// askRecord returns the record given on the command line, or prompts for
// one when name is empty.
func (a *app) askRecord(name, symbols string) (fasta.Record, error) {
	if name != "" || symbols != "" {
		rec := fasta.NewRecord(name, symbols)
		if rec.Name() == "" || rec.Symbols() == "" {
			return fasta.Record{}, errors.New("both --name and --symbols are required")
		}
		return rec, nil
	}
	return a.ask().Sequence()
}

// addRecord puts rec into col and appends it to the input file. Append
// failures are logged; the in-memory collection is still updated.
func (a *app) addRecord(col *fasta.Collection, rec fasta.Record) {
	if !rec.IsValid() {
		a.logger.Warn("sequence contains invalid characters and will be treated as invalid", "name", rec.Name(), "symbols", string(classify.InvalidSymbols(rec.Symbols())))
	}
	if col.Put(rec) {
		a.logger.Warn("sequence name already present; overwritten", "name", rec.Name())
	}
	a.logger.Info("sequence added", "name", rec.Name(), "length", rec.Len())
	if err := fasta.AppendFile(a.cfg.InputFasta, rec); err != nil {
		a.logger.Error("failed to append sequence to file", "path", a.cfg.InputFasta, "err", err)
		return
	}
	a.logger.Info("sequence appended to file", "name", rec.Name(), "path", a.cfg.InputFasta)
}

func newAddCmd(a *app) *cobra.Command {
	var name, symbols string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Append one sequence to the input file (prompts when no flags are given)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			col, diags, err := fasta.ParseFile(a.cfg.InputFasta)
			if errors.Is(err, fasta.ErrNotFound) {
				col, err = fasta.NewCollection(), nil
			}
			if err != nil {
				return err
			}
			a.logDiagnostics(diags)

			rec, err := a.askRecord(name, symbols)
			if errors.Is(err, prompt.ErrCancelled) {
				a.logger.Warn("adding sequence cancelled", "reason", err)
				return nil
			}
			if err != nil {
				return err
			}
			a.addRecord(col, rec)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "sequence name")
	cmd.Flags().StringVar(&symbols, "symbols", "", "sequence symbols")
	return cmd
}
