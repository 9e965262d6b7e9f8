package core

import (
	"fmt"
	"strings"
)

// DescriptionTemplate selects how MapRow writes a job description.
type DescriptionTemplate string

const (
	// DescriptionShort writes a single "Role: <title>" line.
	DescriptionShort DescriptionTemplate = "short"
	// DescriptionLong writes a paragraph built from the row's details.
	DescriptionLong DescriptionTemplate = "long"
)

// employmentTypes maps the spreadsheet vocabulary to job types.
// Keys are matched exactly after trimming.
var employmentTypes = map[string]string{
	"Full time":  JobTypeFullTime,
	"Part time":  JobTypePartTime,
	"Contract":   JobTypeContract,
	"Internship": JobTypeInternship,
	"Temporary":  JobTypeContract,
	"Permanent":  JobTypeFullTime,
}

// NormalizeJobType converts an employment type to a job type.
// Unknown values are lower-cased and hyphenated ("Fixed Term" becomes
// "fixed-term"); blank values become full-time. The result is never empty.
func NormalizeJobType(employmentType string) string {
	v := strings.TrimSpace(employmentType)
	if jt, ok := employmentTypes[v]; ok {
		return jt
	}
	if jt := strings.Join(strings.Fields(strings.ToLower(v)), "-"); jt != "" {
		return jt
	}
	return JobTypeFullTime
}

// MapRow converts one raw row into an unsaved job for companyID.
func MapRow(row RawCsvRow, companyID string, tmpl DescriptionTemplate) Job {
	return Job{
		CompanyID:   companyID,
		Title:       orDefault(row.Title, "Untitled Position"),
		Description: describe(row, tmpl),
		Location:    orDefault(row.Location, "Not specified"),
		JobType:     NormalizeJobType(row.EmploymentType),
		Department:  optional(row.Department),
		SalaryRange: optional(row.SalaryRange),
		IsActive:    true,
	}
}

// MapRows maps every row in order.
func MapRows(rows []RawCsvRow, companyID string, tmpl DescriptionTemplate) []Job {
	jobs := make([]Job, len(rows))
	for i, row := range rows {
		jobs[i] = MapRow(row, companyID, tmpl)
	}
	return jobs
}

func describe(row RawCsvRow, tmpl DescriptionTemplate) string {
	if tmpl != DescriptionLong {
		return "Role: " + orDefault(row.Title, "Unknown")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "We are looking for a %s %s to join our %s team. This is a %s position based in %s.",
		row.ExperienceLevel, row.Title, row.Department, strings.ToLower(row.EmploymentType), row.Location)
	b.WriteString("\n\nKey Details:\n")
	fmt.Fprintf(&b, "• Experience Level: %s\n", row.ExperienceLevel)
	fmt.Fprintf(&b, "• Work Policy: %s\n", row.WorkPolicy)
	fmt.Fprintf(&b, "• Department: %s\n", row.Department)
	if strings.TrimSpace(row.SalaryRange) != "" {
		fmt.Fprintf(&b, "• Salary Range: %s\n", row.SalaryRange)
	}
	b.WriteString("\nWe welcome applications from qualified candidates who are passionate about making an impact in our organization.")
	return b.String()
}

func orDefault(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

func optional(v string) *string {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	return &v
}
