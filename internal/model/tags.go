package model

import "strings"

// SplitTags explodes the raw comma-delimited tags column into labels:
// split on ",", trim whitespace, drop empties. Idempotent under
// re-join/re-split; label order follows the raw string.
func SplitTags(raw string) []string {
	labels := []string{}
	for _, part := range strings.Split(raw, ",") {
		if label := strings.TrimSpace(part); label != "" {
			labels = append(labels, label)
		}
	}
	return labels
}
