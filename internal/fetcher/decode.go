package fetcher

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"foodsearch/internal/domain"
)

// decodeItems parses a JSON array of objects. Keys are converted from
// snake_case to camelCase before mapping; "name" must be a string.
// When several keys map to the same field, a key already in camelCase
// wins, then the lexically smallest source key.
func decodeItems(body []byte) ([]domain.FoodItem, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var raw []map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errors.New("unexpected data after array")
		}
		return nil, fmt.Errorf("decode items: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("decode items: expected array, got null")
	}

	caser := cases.Title(language.Und)
	items := make([]domain.FoodItem, 0, len(raw))
	for i, obj := range raw {
		if obj == nil {
			return nil, fmt.Errorf("decode items: element %d is null", i)
		}
		item := domain.FoodItem{Fields: make(map[string]any, len(obj))}
		hasName := false
		for _, key := range slices.Sorted(maps.Keys(obj)) {
			value := obj[key]
			camel := snakeToCamel(key, caser)
			if camel != key {
				if _, exact := obj[camel]; exact {
					continue
				}
				if _, seen := item.Fields[camel]; seen {
					continue
				}
			}
			if camel == "name" {
				name, ok := value.(string)
				if !ok {
					return nil, fmt.Errorf("decode items: element %d: name is %T, want string", i, value)
				}
				item.Name = name
				hasName = true
				continue
			}
			item.Fields[camel] = value
		}
		if !hasName {
			return nil, fmt.Errorf("decode items: element %d: missing name", i)
		}
		items = append(items, item)
	}
	return items, nil
}

// snakeToCamel lowercases the first word and title-cases the rest.
// Leading and trailing underscores are kept; a key without inner
// underscores is returned unchanged.
func snakeToCamel(key string, caser cases.Caser) string {
	core := strings.Trim(key, "_")
	if core == "" {
		return key
	}
	start := strings.Index(key, core)
	leading, trailing := key[:start], key[start+len(core):]

	words := strings.FieldsFunc(core, func(r rune) bool { return r == '_' })
	if len(words) == 1 {
		return key
	}

	var b strings.Builder
	b.WriteString(leading)
	b.WriteString(strings.ToLower(words[0]))
	for _, w := range words[1:] {
		b.WriteString(caser.String(w))
	}
	b.WriteString(trailing)
	return b.String()
}
