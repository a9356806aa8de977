package common

import (
	"fmt"
	"slices"
)

// ValidateOutputFormat checks a requested format against the configured
// allow-list. An empty list allows any format.
func ValidateOutputFormat(format string, supportedFormats []string) error {
	if len(supportedFormats) == 0 || slices.Contains(supportedFormats, format) {
		return nil
	}
	return fmt.Errorf("unsupported output format '%s'. Supported formats: %v",
		format, supportedFormats)
}

// GetSupportedFormats returns the configured format allow-list
func GetSupportedFormats(supportedFormats []string) []string {
	return supportedFormats
}
