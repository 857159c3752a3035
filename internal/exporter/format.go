package exporter

import (
	"fmt"
	"strconv"
)

// formatFloat formats a float64 value for CSV output with exactly 2 decimal places
func formatFloat(f float64) string {
	return fmt.Sprintf("%.2f", f)
}

// formatRate formats a GST rate without trailing zeros: 18, 2.5
func formatRate(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// formatCell renders a table value as CSV text
func formatCell(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return formatFloat(val)
	case Rate:
		return formatRate(float64(val))
	default:
		return fmt.Sprint(val)
	}
}
