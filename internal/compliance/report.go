// Package compliance scores HTML content against a brand's visual identity,
// voice profile and basic accessibility rules.
package compliance

import "math"

// Severity grades a single issue.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Status is the outcome of a category or of the whole report.
type Status string

const (
	StatusPass    Status = "pass"
	StatusWarning Status = "warning"
	StatusFail    Status = "fail"
	StatusSkip    Status = "skip"
)

// Issue is one finding with a suggested fix.
type Issue struct {
	Severity   Severity `json:"severity"`
	Message    string   `json:"message"`
	Suggestion string   `json:"suggestion"`
}

// CategoryReport is the result of one category check.
type CategoryReport struct {
	Status  Status  `json:"status"`
	Message string  `json:"message,omitempty"`
	Issues  []Issue `json:"issues"`
	Score   int     `json:"score"`
}

// Categories holds the four category reports.
type Categories struct {
	Colors        CategoryReport `json:"colors"`
	Typography    CategoryReport `json:"typography"`
	Voice         CategoryReport `json:"voice"`
	Accessibility CategoryReport `json:"accessibility"`
}

// Report is the aggregate compliance result.
type Report struct {
	OverallScore  int        `json:"overall_score"`
	OverallStatus Status     `json:"overall_status"`
	Categories    Categories `json:"categories"`
	TotalIssues   int        `json:"total_issues"`
}

func skipped(message string) CategoryReport {
	return CategoryReport{Status: StatusSkip, Message: message, Issues: []Issue{}}
}

// penalize returns 100 minus perIssue for each issue, floored at 0.
func penalize(issues []Issue, perIssue int) int {
	score := 100 - perIssue*len(issues)
	if score < 0 {
		return 0
	}
	return score
}

// statusFromSeverity fails on any error, warns on any warning, else passes.
func statusFromSeverity(issues []Issue) Status {
	status := StatusPass
	for _, is := range issues {
		switch is.Severity {
		case SeverityError:
			return StatusFail
		case SeverityWarning:
			status = StatusWarning
		}
	}
	return status
}

func passOrWarn(issues []Issue) Status {
	if len(issues) == 0 {
		return StatusPass
	}
	return StatusWarning
}

func overallStatus(score int) Status {
	switch {
	case score >= 80:
		return StatusPass
	case score >= 60:
		return StatusWarning
	}
	return StatusFail
}

func aggregate(c Categories) Report {
	var sum, n int
	for _, cat := range []CategoryReport{c.Colors, c.Typography, c.Voice, c.Accessibility} {
		if cat.Status != StatusSkip {
			sum += cat.Score
			n++
		}
	}
	if n == 0 {
		return Report{OverallStatus: StatusSkip, Categories: c}
	}

	score := int(math.Round(float64(sum) / float64(n)))
	return Report{
		OverallScore:  score,
		OverallStatus: overallStatus(score),
		Categories:    c,
		TotalIssues:   len(c.Colors.Issues) + len(c.Typography.Issues) + len(c.Voice.Issues) + len(c.Accessibility.Issues),
	}
}
