// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/askeksa/shrinkler-go

// Command shrinkler is a thin CLI wrapper around the shrinkler package: file
// I/O, argument parsing and the framed-file header are all handled here,
// outside the core compressor (see package shrinkler's design notes on
// scope).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/askeksa/shrinkler-go"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type cliParams struct {
	parityContext bool
	iterations    int
	lengthMargin  int
	skipLength    int
	matchPatience int
	maxSameLength int
	edgeCapacity  int
	noProgress    bool
	writeHeader   bool
}

func newRootCmd() *cobra.Command {
	p := &cliParams{}

	cmd := &cobra.Command{
		Use:   "shrinkler <input> <output>",
		Short: "Compress a file with the Shrinkler-family range coder",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0], args[1], p)
		},
	}

	defaults := shrinkler.DefaultPackParams()

	flags := cmd.Flags()
	flags.BoolVar(&p.parityContext, "parity-context", defaults.ParityContext, "split KIND/LIT contexts by output byte parity")
	flags.IntVar(&p.iterations, "iterations", defaults.Iterations, "number of parse/train passes")
	flags.IntVar(&p.lengthMargin, "length-margin", defaults.LengthMargin, "also try matches shorter by up to this many bytes")
	flags.IntVar(&p.skipLength, "skip-length", defaults.SkipLength, "match length at or above which the skip heuristic triggers")
	flags.IntVar(&p.matchPatience, "match-patience", defaults.MatchPatience, "per-side bound on suffix array extension hops")
	flags.IntVar(&p.maxSameLength, "max-same-length", defaults.MaxSameLength, "cap on the per-length match finder heap")
	flags.IntVar(&p.edgeCapacity, "edge-capacity", defaults.EdgeCapacity, "maximum live parser edges before eviction")
	flags.BoolVar(&p.noProgress, "no-progress", false, "suppress the terminal progress bar")
	flags.BoolVar(&p.writeHeader, "header", true, "write the framed file header before the bitstream")

	return cmd
}

func run(inputPath, outputPath string, p *cliParams) error {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", inputPath, err)
	}

	params := &shrinkler.PackParams{
		ParityContext: p.parityContext,
		Iterations:    p.iterations,
		LengthMargin:  p.lengthMargin,
		SkipLength:    p.skipLength,
		MatchPatience: p.matchPatience,
		MaxSameLength: p.maxSameLength,
		EdgeCapacity:  p.edgeCapacity,
	}
	if !p.noProgress {
		params.Progress = shrinkler.NewBarProgress(inputPath)
	}

	if err := params.Validate(); err != nil {
		return err
	}

	bitstream, bitSize, err := shrinkler.Pack(data, 0, params)
	if err != nil {
		return fmt.Errorf("packing %s: %w", inputPath, err)
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", outputPath, err)
	}
	defer out.Close()

	if p.writeHeader {
		safetyMargin := uint32(0)
		err = shrinkler.WriteHeader(out, uint32(len(bitstream)), uint32(len(data)), safetyMargin, p.parityContext)
		if err != nil {
			return fmt.Errorf("writing header to %s: %w", outputPath, err)
		}
	}

	if _, err := out.Write(bitstream); err != nil {
		return fmt.Errorf("writing bitstream to %s: %w", outputPath, err)
	}

	fmt.Printf("%s: %d -> %d bytes (%.3f bits)\n", inputPath, len(data), len(bitstream), float64(bitSize)/64)

	return nil
}
