package main

import (
	"fmt"
	"io"
	"net/url"
	"text/tabwriter"

	"github.com/HendryAvila/imc/internal/form"
	"github.com/HendryAvila/imc/internal/imc"
	"github.com/spf13/cobra"
)

func newCalcCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "calc WEIGHT HEIGHT",
		Short: "Calculate and classify an IMC (weight in kg, height in m)",
		Example: `  imc calc 70 1.75
  imc calc 70,5 1,68`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			weight, err := form.Number("weight", args[0])
			if err != nil {
				return err
			}
			height, err := form.Number("height", args[1])
			if err != nil {
				return err
			}
			if weight == nil || height == nil {
				return fmt.Errorf("weight and height are required")
			}

			value, err := imc.Compute(*weight, *height)
			if err != nil {
				return err
			}
			if err := imc.Delay(cmd.Context(), a.cfg.ResultDelay); err != nil {
				return err
			}

			printResult(cmd.OutOrStdout(), *weight, *height, value)
			return nil
		},
	}
}

func printResult(w io.Writer, weight, height, value float64) {
	cat := imc.Classify(value)
	fmt.Fprintf(w, "IMC: %s\n", imc.Format(value))
	fmt.Fprintf(w, "Classificação: %s (%s)\n", cat.Name, cat.Range)
	fmt.Fprintf(w, "%s\n\n", cat.Description)

	// Hand the measurements to the record form the way the calculator does.
	q := url.Values{}
	q.Set("weight", fmt.Sprint(weight))
	q.Set("height", fmt.Sprint(height))
	q.Set("imc", imc.Format(value))
	fmt.Fprintf(w, "Save it: imc history add --name NAME --prefill %q\n", q.Encode())
}

func newCategoriesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "Show the IMC classification table",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "CLASSIFICAÇÃO\tIMC\tDESCRIÇÃO")
			for _, c := range imc.Categories() {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", c.Name, c.Range, c.Description)
			}
			_ = tw.Flush()
		},
	}
}
