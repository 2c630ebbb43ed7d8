package model

import "strings"

// WireToField turns the API's "25/12/2024" into the form's "2024-12-25".
// Segments are reversed as-is, so malformed input stays malformed and is
// left to validation.
func WireToField(wire string) string {
	if wire == "" {
		return ""
	}
	parts := strings.Split(wire, "/")
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, "-")
}
