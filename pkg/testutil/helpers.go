// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/mwhitfield/salary-truth/internal/forecast"
)

// FindResult finds a series by name in the results slice.
// Returns a pointer to the result if found, nil otherwise.
func FindResult(results []forecast.Result, name string) *forecast.Result {
	for i := range results {
		if results[i].Name == name {
			return &results[i]
		}
	}
	return nil
}

// FindSummary finds a series summary by name.
// Returns a pointer to the summary entry if found, nil otherwise.
func FindSummary(summary forecast.Summary, name string) *forecast.SeriesSummary {
	for i := range summary.Series {
		if summary.Series[i].Name == name {
			return &summary.Series[i]
		}
	}
	return nil
}
