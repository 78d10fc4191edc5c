package main

import (
	"github.com/spf13/cobra"

	"github.com/glowlab/retention-cli/internal/model"
)

var (
	cohortsBrand string
	liftBrand    string
	basketBrand  string
)

var cohortsCmd = &cobra.Command{
	Use:   "cohorts",
	Short: "Segment a brand's purchasers into frequency cohorts",
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, dicts, err := newEngine(cmd.Context())
		if err != nil {
			return err
		}
		target, err := findTarget(dicts, cohortsBrand)
		if err != nil {
			return err
		}
		return printJSON(eng.Segment(target))
	},
}

var liftCmd = &cobra.Command{
	Use:   "lift",
	Short: "Rank attribute lift between repeat and one-time purchasers",
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, dicts, err := newEngine(cmd.Context())
		if err != nil {
			return err
		}
		target, err := findTarget(dicts, liftBrand)
		if err != nil {
			return err
		}
		return printJSON(struct {
			Brand string             `json:"brand"`
			Lift  []model.LiftRecord `json:"lift"`
		}{Brand: target.Name, Lift: eng.Lift(target)})
	},
}

var basketCmd = &cobra.Command{
	Use:   "basket",
	Short: "Rank other-brand purchases per frequency bucket",
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, dicts, err := newEngine(cmd.Context())
		if err != nil {
			return err
		}
		target, err := findTarget(dicts, basketBrand)
		if err != nil {
			return err
		}
		return printJSON(eng.Basket(target))
	},
}

var ahaCmd = &cobra.Command{
	Use:   "aha",
	Short: "Cross-tabulate lifestyle tags against hero-product loyalty",
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, _, err := newEngine(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(eng.AhaMoment())
	},
}

func init() {
	cohortsCmd.Flags().StringVar(&cohortsBrand, "brand", "라운드랩", "target brand name")
	liftCmd.Flags().StringVar(&liftBrand, "brand", "라운드랩", "target brand name")
	basketCmd.Flags().StringVar(&basketBrand, "brand", "라운드랩", "target brand name")
	rootCmd.AddCommand(cohortsCmd, liftCmd, basketCmd, ahaCmd)
}
