// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package check

import (
	"fmt"
	"time"
)

// Severity grades how urgently an issue needs attention.
type Severity string

const (
	SeverityCritical   Severity = "critical"
	SeverityWarning    Severity = "warning"
	SeveritySuggestion Severity = "suggestion"
)

// Kind groups issues by the rule family that raised them.
type Kind string

const (
	KindDates         Kind = "date_consistency"
	KindHierarchy     Kind = "location_hierarchy"
	KindRelationships Kind = "relationships"
	KindReferences    Kind = "references"
	KindCycles        Kind = "circular_references"
	KindDuplicates    Kind = "duplicates"
)

// Issue is a single consistency finding.
type Issue struct {
	Kind     Kind     `json:"kind"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

func issuef(kind Kind, sev Severity, format string, args ...any) Issue {
	return Issue{Kind: kind, Severity: sev, Message: fmt.Sprintf(format, args...)}
}

// Summary tallies issues by severity.
type Summary struct {
	Critical    int `json:"critical_issues"`
	Warnings    int `json:"warnings"`
	Suggestions int `json:"suggestions"`
}

// Report is the outcome of a full consistency run.
type Report struct {
	GeneratedAt  time.Time    `json:"timestamp"`
	TotalEntries int          `json:"total_entries"`
	TotalIssues  int          `json:"total_issues"`
	ByKind       map[Kind]int `json:"issues_by_kind"`
	Issues       []Issue      `json:"issues"`
	Summary      Summary      `json:"summary"`
}

// Clean reports whether the run found nothing to complain about.
func (r Report) Clean() bool { return r.TotalIssues == 0 }

func buildReport(total int, issues []Issue) Report {
	report := Report{
		GeneratedAt:  time.Now().UTC(),
		TotalEntries: total,
		TotalIssues:  len(issues),
		ByKind:       make(map[Kind]int),
		Issues:       issues,
	}
	for _, issue := range issues {
		report.ByKind[issue.Kind]++
		switch issue.Severity {
		case SeverityCritical:
			report.Summary.Critical++
		case SeverityWarning:
			report.Summary.Warnings++
		default:
			report.Summary.Suggestions++
		}
	}
	return report
}
