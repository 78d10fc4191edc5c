package main

import (
	"github.com/spf13/cobra"

	"github.com/glowlab/retention-cli/internal/model"
)

var (
	journeyBrand string
	journeyDrill string
)

var journeyCmd = &cobra.Command{
	Use:   "journey",
	Short: "Show brand-switching inflow and outflow for a target brand",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		eng, dicts, err := newEngine(ctx)
		if err != nil {
			return err
		}
		target, err := findTarget(dicts, journeyBrand)
		if err != nil {
			return err
		}

		if journeyDrill != "" {
			return printJSON(struct {
				Brand   string               `json:"brand"`
				Drill   string               `json:"adjacent_brand"`
				Inflow  []model.ProductCount `json:"inflow_products"`
				Outflow []model.ProductCount `json:"outflow_products"`
			}{
				Brand:   target.Name,
				Drill:   journeyDrill,
				Inflow:  eng.InflowDetail(target, journeyDrill),
				Outflow: eng.OutflowDetail(target, journeyDrill),
			})
		}

		return printJSON(struct {
			Brand   string            `json:"brand"`
			Inflow  []model.FlowCount `json:"inflow"`
			Outflow []model.FlowCount `json:"outflow"`
		}{
			Brand:   target.Name,
			Inflow:  eng.Inflow(target),
			Outflow: eng.Outflow(target),
		})
	},
}

func init() {
	journeyCmd.Flags().StringVar(&journeyBrand, "brand", "라운드랩", "target brand name")
	journeyCmd.Flags().StringVar(&journeyDrill, "drill", "", "adjacent brand to drill into product detail")
	rootCmd.AddCommand(journeyCmd)
}
