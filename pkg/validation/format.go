// Package validation provides configuration validation utilities.
package validation

import (
	"fmt"

	"github.com/mwhitfield/salary-truth/pkg/constants"
)

// ValidateOutputFormat checks that the requested output format is supported.
func ValidateOutputFormat(format string) error {
	switch format {
	case constants.OutputFormatPretty, constants.OutputFormatCSV:
		return nil
	default:
		return fmt.Errorf("invalid output format %q, valid formats: %s, %s",
			format, constants.OutputFormatPretty, constants.OutputFormatCSV)
	}
}
