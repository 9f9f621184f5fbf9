package gamecrm

import "strings"

// PlatformSeparator joins platform values on the way to HubSpot, which
// expects multi-select enum values separated by semicolons.
const PlatformSeparator = ";"

// SplitPlatforms reads a delimited platform string. Commas, semicolons and
// pipes are all accepted; values are trimmed and empties dropped.
func SplitPlatforms(raw string) []string {
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';' || r == '|'
	})
	return CleanPlatforms(parts)
}

// CleanPlatforms trims each value and drops the empty ones. Values are not
// split further.
func CleanPlatforms(values []string) []string {
	ret := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			ret = append(ret, v)
		}
	}
	return ret
}

// NormalizePlatforms applies the submission rule: several values are cleaned
// as a list, a single value is treated as a delimited string.
func NormalizePlatforms(values []string) []string {
	switch len(values) {
	case 0:
		return []string{}
	case 1:
		return SplitPlatforms(values[0])
	default:
		return CleanPlatforms(values)
	}
}

// JoinPlatforms is the strict write form.
func JoinPlatforms(values []string) string {
	return strings.Join(values, PlatformSeparator)
}
