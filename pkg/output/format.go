// Package output provides utilities for formatting and displaying forecast results.
package output

import (
	"fmt"
	"strings"

	"github.com/mwhitfield/salary-truth/internal/forecast"
	"github.com/mwhitfield/salary-truth/pkg/format"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(results []forecast.Result, summary forecast.Summary) {
	p := message.NewPrinter(language.BritishEnglish)
	for _, result := range results {
		fmt.Printf("--- %s (%s) ---\n", result.Name, result.Kind)
		if result.Kind == forecast.KindSalary {
			fmt.Printf("Year | Amount       | Rate %%  | Real-terms %%\n")
			fmt.Printf("____ | ____________ | _______ | ____________\n")
			for i, period := range result.Periods {
				fmt.Printf("%d | %s | %+.2f%% | %+.2f%%\n",
					int(period), p.Sprintf("£%.2f", result.Values[i]), result.EffectiveRates[i], result.Erosion[i])
			}
		} else {
			fmt.Printf("Year | Amount       | Rate %%\n")
			fmt.Printf("____ | ____________ | _______\n")
			for i, period := range result.Periods {
				fmt.Printf("%d | %s | %+.2f%%\n",
					int(period), p.Sprintf("£%.2f", result.Values[i]), result.EffectiveRates[i])
			}
		}
		fmt.Printf("\n")
	}

	fmt.Printf("--- Summary (reference index: %s) ---\n", summary.ReferenceIndex)
	for _, series := range summary.Series {
		if series.Kind == forecast.KindSalary {
			fmt.Printf("%s: final %s, real-terms gap %s (%+.2f%%)\n",
				series.Name, format.Currency(series.FinalValue),
				format.Currency(series.RealTermsGap), series.RealTermsChange)
		} else {
			fmt.Printf("%s: final %s\n", series.Name, format.Currency(series.FinalValue))
		}
	}
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(results []forecast.Result) {
	fmt.Print(CsvString(results))
}

// CsvString renders the results in comma-separated value format. All series
// share the same horizon, so the years come from the first.
func CsvString(results []forecast.Result) string {
	if len(results) == 0 {
		return ""
	}

	var builder strings.Builder
	builder.WriteString(`"year"`)
	for _, result := range results {
		fmt.Fprintf(&builder, `,"amount (%s)","rate (%s)"`, result.Name, result.Name)
		if result.Kind == forecast.KindSalary {
			fmt.Fprintf(&builder, `,"real-terms %% (%s)"`, result.Name)
		}
	}
	builder.WriteString("\n")

	for i, period := range results[0].Periods {
		fmt.Fprintf(&builder, `"%d"`, int(period))
		for _, result := range results {
			fmt.Fprintf(&builder, `,"%.2f","%.2f"`, result.Values[i], result.EffectiveRates[i])
			if result.Kind == forecast.KindSalary {
				fmt.Fprintf(&builder, `,"%.4f"`, result.Erosion[i])
			}
		}
		builder.WriteString("\n")
	}

	return builder.String()
}
