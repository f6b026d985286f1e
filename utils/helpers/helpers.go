package helpers

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"zakatbackend/utils/constants"
)

// NormalizeTicker uppercases and trims a ticker so identity comparisons are
// case-insensitive everywhere.
func NormalizeTicker(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}

// IsFinite reports whether v holds a usable number. Nil, NaN and infinities
// all count as unknown.
func IsFinite(v *float64) bool {
	if v == nil {
		return false
	}
	return !math.IsNaN(*v) && !math.IsInf(*v, 0)
}

// Float64Ptr returns a pointer to v. Convenience for building optional values.
func Float64Ptr(v float64) *float64 {
	return &v
}

// FormatNumber renders an optional number with a fixed number of fraction
// digits, or the unknown placeholder when the value is absent. It never
// panics on nil input.
func FormatNumber(v *float64, digits int) string {
	if !IsFinite(v) {
		return constants.UnknownValue
	}
	return strconv.FormatFloat(*v, 'f', digits, 64)
}

// FormatPercent renders an optional fraction as a percentage with the given
// fraction digits, e.g. 0.0123 -> "1.23%".
func FormatPercent(v *float64, digits int) string {
	if !IsFinite(v) {
		return constants.UnknownValue
	}
	return strconv.FormatFloat(*v*100, 'f', digits, 64) + "%"
}

// FormatMoney renders an optional amount with thousands separators and two
// fraction digits.
func FormatMoney(v *float64) string {
	if !IsFinite(v) {
		return constants.UnknownValue
	}
	negative := *v < 0
	s := strconv.FormatFloat(math.Abs(*v), 'f', 2, 64)
	parts := strings.SplitN(s, ".", 2)
	whole := parts[0]
	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := b.String() + "." + parts[1]
	if negative {
		out = "-" + out
	}
	return out
}

// FormatString renders an optional string, falling back to the unknown
// placeholder.
func FormatString(v *string) string {
	if v == nil || *v == "" {
		return constants.UnknownValue
	}
	return *v
}

// ExportValue converts a display value to its plain export form: the display
// placeholder becomes the export placeholder, everything else passes through.
func ExportValue(display string) string {
	if display == constants.UnknownValue {
		return constants.ExportUnknownValue
	}
	return display
}

// JoinWarnings flattens a warnings sequence into the single trailing export
// column, preserving emission order.
func JoinWarnings(warnings []string) string {
	return strings.Join(warnings, " ")
}

// EscapeCSV applies the export serialization rule: fields containing a comma,
// a double quote or a line break are wrapped in double quotes with internal
// quotes doubled; all other fields pass through unescaped.
func EscapeCSV(field string) string {
	if !strings.ContainsAny(field, ",\"\n\r") {
		return field
	}
	return "\"" + strings.ReplaceAll(field, "\"", "\"\"") + "\""
}

// ExportFilename derives a filesystem-safe filename stem from the response's
// generated_at timestamp, ISO-8601 with colons replaced by hyphens. An absent
// or unparsable timestamp falls back to the current time.
func ExportFilename(prefix, generatedAt string) string {
	stamp := parseGeneratedAt(generatedAt)
	safe := strings.ReplaceAll(stamp, ":", "-")
	return fmt.Sprintf("%s-%s", prefix, safe)
}

func parseGeneratedAt(generatedAt string) string {
	layouts := []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05.999999", "2006-01-02T15:04:05"}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, generatedAt); err == nil {
			return t.UTC().Format("2006-01-02T15:04:05Z")
		}
	}
	return time.Now().UTC().Format("2006-01-02T15:04:05Z")
}

// RequestID fingerprints one valuation request for cache keys and events: the
// as-of date plus the sorted, deduplicated tickers of both input sets.
func RequestID(asOfDate string, tickers []string) string {
	if len(tickers) == 0 {
		return asOfDate + ":" + uuid.NewString()
	}
	return asOfDate + ":" + strings.Join(tickers, ",")
}
