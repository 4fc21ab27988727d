package main

import (
	"fmt"
	"os"
	"slices"
	"text/tabwriter"

	"github.com/limaJavier/courseplanner/pkg/model"
	"github.com/spf13/cobra"
)

var filterProfilePath string

var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Show which catalog courses survive a profile's hard constraints",
	RunE:  filterCourses,
}

func init() {
	filterCmd.Flags().StringVarP(&filterProfilePath, "profile", "p", "", "preference profile (json or yaml)")
	_ = filterCmd.MarkFlagRequired("profile")
	rootCmd.AddCommand(filterCmd)
}

func filterCourses(cmd *cobra.Command, args []string) error {
	catalog, err := loadCatalog()
	if err != nil {
		return err
	}
	profile, err := model.ProfileFromFile(filterProfilePath)
	if err != nil {
		return err
	}
	if errors := model.ValidateProfile(profile); len(errors) > 0 {
		for _, message := range errors {
			fmt.Fprintf(os.Stdout, "error: %s\n", message)
		}
		return exitError{code: exitFailure, message: "invalid profile"}
	}

	filtered, errors := model.NewFilter(log).Filter(catalog, profile)
	errors = append(errors, model.CheckFiltered(filtered, profile)...)

	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "CODE\tMEETS\tWRIT\tREQUIRED\tTITLE")
	for _, course := range filtered {
		required := slices.Contains(profile.RemainingRequired, course.Code)
		fmt.Fprintf(writer, "%s\t%s\t%v\t%v\t%s\n", course.Code, course.Meets, course.Writ, required, course.Title)
	}
	if err := writer.Flush(); err != nil {
		return err
	}

	fmt.Printf("Kept courses: %d of %d\n", len(filtered), catalog.Len())
	if shortfall, err := model.DayBalanceShortfall(filtered, profile.DayBalance); err == nil && shortfall > 0 {
		fmt.Printf("Day balance MWF %d / TTh %d is short of %d courses\n", profile.DayBalance.MWF, profile.DayBalance.TTh, shortfall)
	}
	for _, message := range errors {
		fmt.Printf("error: %s\n", message)
	}
	return nil
}
