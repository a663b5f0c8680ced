// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/lore-engine/internal/check"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the corpus for internal contradictions",
	Long: `Check runs consistency rules over the whole corpus: event dates out of
order, impossible location containment, contradictory relationships,
references to missing entries, circular part_of links, and duplicate
names. Critical findings make the command exit nonzero.`,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	ccfg := cfg.Check
	if v, _ := cmd.Flags().GetBool("skip-dates"); v {
		ccfg.SkipDates = true
	}
	if v, _ := cmd.Flags().GetBool("skip-hierarchy"); v {
		ccfg.SkipHierarchy = true
	}
	if v, _ := cmd.Flags().GetBool("skip-relationships"); v {
		ccfg.SkipRelationships = true
	}

	eng, _, err := buildEngine()
	if err != nil {
		return err
	}
	report := check.Run(eng, ccfg)

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		if err := printJSON(report); err != nil {
			return err
		}
	} else if report.Clean() {
		fmt.Printf("No issues found across %d entries.\n", report.TotalEntries)
	} else {
		fmt.Fprintf(os.Stdout, "%-10s  %-20s  %s\n", "Severity", "Kind", "Message")
		fmt.Fprintln(os.Stdout, strings.Repeat("-", 90))
		for _, issue := range report.Issues {
			fmt.Fprintf(os.Stdout, "%-10s  %-20s  %s\n", issue.Severity, issue.Kind, issue.Message)
		}
		fmt.Fprintf(os.Stdout, "\n%d issues: %d critical, %d warnings, %d suggestions\n",
			report.TotalIssues, report.Summary.Critical, report.Summary.Warnings, report.Summary.Suggestions)
	}

	if report.Summary.Critical > 0 {
		return fmt.Errorf("%d critical issue(s) found", report.Summary.Critical)
	}
	return nil
}

func init() {
	checkCmd.Flags().Bool("skip-dates", false, "skip event ordering and lifespan checks")
	checkCmd.Flags().Bool("skip-hierarchy", false, "skip location containment checks")
	checkCmd.Flags().Bool("skip-relationships", false, "skip contradictory relationship checks")
	checkCmd.Flags().Bool("json", false, "output the report as JSON")

	rootCmd.AddCommand(checkCmd)
}
