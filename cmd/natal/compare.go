package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Unforced-Dev/natal-engine-sub000/internal/engine"
)

var compareKinds = []string{"astrology", "humandesign", "genekeys", "vedic"}

func (a *app) compareCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "compare KIND BIRTH_A BIRTH_B",
		Short:     "Compare two births in one system",
		Long:      "KIND is one of astrology, humandesign, genekeys or vedic. Both charts are computed concurrently.",
		Args:      cobra.ExactArgs(3),
		ValidArgs: compareKinds,
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := a.birth(args[1])
			if err != nil {
				return fmt.Errorf("birth a: %w", err)
			}
			y, err := a.birth(args[2])
			if err != nil {
				return fmt.Errorf("birth b: %w", err)
			}

			ctx := cmd.Context()
			e := a.engine
			switch args[0] {
			case "astrology":
				ca, cb, err := engine.Both(ctx, x, y, e.AstrologyChart)
				if err != nil {
					return err
				}
				res, err := e.CompareAstrology(ca, cb)
				if err != nil {
					return err
				}
				return a.print(res, renderAstrologyCompare(res))
			case "humandesign":
				ca, cb, err := engine.Both(ctx, x, y, e.HumanDesignChart)
				if err != nil {
					return err
				}
				res, err := e.CompareHumanDesign(ca, cb)
				if err != nil {
					return err
				}
				return a.print(res, renderHumanDesignCompare(res))
			case "genekeys":
				ca, cb, err := engine.Both(ctx, x, y, e.GeneKeysProfile)
				if err != nil {
					return err
				}
				res, err := e.CompareGeneKeys(ca, cb)
				if err != nil {
					return err
				}
				return a.print(res, renderGeneKeysCompare(res))
			case "vedic":
				ca, cb, err := engine.Both(ctx, x, y, e.VedicChart)
				if err != nil {
					return err
				}
				res, err := e.CompareVedic(ca, cb)
				if err != nil {
					return err
				}
				return a.print(res, renderVedicCompare(res))
			}
			return fmt.Errorf("unknown comparison %q, want one of %v", args[0], compareKinds)
		},
	}
}
