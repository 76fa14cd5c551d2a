package stringutils

import "strings"

// SplitNonEmpty splits str at sep and returns the non-empty elements.
// Splitting an empty string returns nil.
func SplitNonEmpty(str, sep string) []string {
	var result []string

	for _, elem := range strings.Split(str, sep) {
		if elem == "" {
			continue
		}

		result = append(result, elem)
	}

	return result
}
