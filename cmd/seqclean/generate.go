package main

import (
	"math/rand"

	"github.com/spf13/cobra"

	"seqclean/internal/generate"
)

func (a *app) generateOptions(total int) generate.Options {
	g := a.cfg.Generate
	return generate.Options{
		Total:            total,
		MinLength:        g.MinLength,
		MaxLength:        g.MaxLength,
		Duplicates:       g.Duplicates,
		Invalid:          g.Invalid,
		NoiseProbability: g.NoiseProbability,
	}
}

// writeFixture (re)creates the input file. A total of 0 picks a random
// size within the configured sequence count range.
func (a *app) writeFixture(rng *rand.Rand, total int) error {
	if total <= 0 {
		total = generate.RandomTotal(rng, a.cfg.Generate.MinSequences, a.cfg.Generate.MaxSequences)
	}
	path := a.cfg.InputFasta
	a.logger.Info("generating fixture", "path", path, "entries", total)
	plan, err := generate.WriteFile(path, a.generateOptions(total), rng)
	if err != nil {
		return err
	}
	a.logger.Info("fixture written", "path", path, "plan", plan.String())
	return nil
}

func newGenerateCmd(a *app) *cobra.Command {
	var (
		total int
		seed  int64
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a synthetic FASTA fixture with duplicates and invalid entries",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("seed") {
				a.cfg.Generate.Seed = seed
			}
			return a.writeFixture(generate.NewRand(a.cfg.Generate.Seed), total)
		},
	}
	cmd.Flags().IntVar(&total, "total", 0, "number of entries (0 picks a random count from the config range)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 uses the clock)")
	return cmd
}
