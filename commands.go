package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/aguxez/bmrcalc/calculator"
	"github.com/aguxez/bmrcalc/filewatch"
	"github.com/aguxez/bmrcalc/models"
)

func calcCmd() *cobra.Command {
	var (
		in     models.UserMeasurement
		gender string
	)

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Compute BMR and TDEE for one measurement and print JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in.Gender = models.Gender(gender)
			return runCalc(cmd.OutOrStdout(), in)
		},
	}

	f := cmd.Flags()
	f.IntVar(&in.Age, "age", 0, "age in years (1-120)")
	f.StringVar(&gender, "gender", "", "Male or Female")
	f.Float64Var(&in.WeightPounds, "weight", 0, "weight in pounds")
	f.IntVar(&in.HeightFeet, "feet", 0, "height, feet part")
	f.IntVar(&in.HeightInches, "inches", 0, "height, inches part (0-11)")
	f.StringVar(&in.ActivityLevel, "activity", "", "activity level label, see activity-levels")
	for _, name := range []string{"age", "gender", "weight", "feet", "activity"} {
		cobra.CheckErr(cmd.MarkFlagRequired(name))
	}

	return cmd
}

func runCalc(w io.Writer, in models.UserMeasurement) error {
	res, err := calculator.Compute(in)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

func batchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "batch <input.csv> [output.csv]",
		Short: "Compute every row of a measurements CSV",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := filewatch.ResultPath(args[0], "")
			if len(args) == 2 {
				out = args[1]
			}
			return runBatch(cmd.OutOrStdout(), args[0], out)
		},
	}
}

func runBatch(w io.Writer, input, output string) error {
	run, err := filewatch.ProcessFile(calculator.New(), input, output)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%d rows, %d rejected, results in %s\n", run.Rows, run.Failed, run.Output)
	return nil
}

func activityLevelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "activity-levels",
		Short: "List activity levels and their multipliers",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			printActivityLevels(cmd.OutOrStdout())
		},
	}
}

func printActivityLevels(w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FACTOR\tLABEL")
	for _, l := range models.ActivityLevels() {
		fmt.Fprintf(tw, "%g\t%s\n", l.Factor, l.Label)
	}
	tw.Flush()
}
