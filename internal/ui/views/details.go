package views

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/rivo/uniseg"

	"foodsearch/internal/domain"
)

// Field is one display-ready attribute of a food item
type Field struct {
	Key   string
	Value string
}

// Fields returns the item's attributes sorted by key
func Fields(item domain.FoodItem) []Field {
	keys := make([]string, 0, len(item.Fields))
	for k := range item.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fields := make([]Field, 0, len(keys))
	for _, k := range keys {
		fields = append(fields, Field{Key: k, Value: FormatValue(item.Fields[k])})
	}
	return fields
}

// FormatValue renders a decoded JSON value on one line
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	case json.Number:
		return val.String()
	case bool, float64, int, int64:
		return fmt.Sprint(val)
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(data)
	}
}

// RenderDetails renders an item as plain text for the pager
func RenderDetails(item domain.FoodItem) string {
	var b strings.Builder
	b.WriteString(item.Name)
	b.WriteString("\n")
	b.WriteString(strings.Repeat("=", uniseg.StringWidth(item.Name)))
	b.WriteString("\n\n")

	fields := Fields(item)
	if len(fields) == 0 {
		b.WriteString("No further details.\n")
		return b.String()
	}

	width := 0
	for _, f := range fields {
		if len(f.Key) > width {
			width = len(f.Key)
		}
	}
	for _, f := range fields {
		fmt.Fprintf(&b, "%-*s  %s\n", width, f.Key, f.Value)
	}
	return b.String()
}
