package exports

import (
	"strings"

	"csv-to-json/parsers"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Mapper converts CSV rows into Elements keyed by header name
type Mapper struct {
	keys []string
}

// NewMapper derives the element keys from headers, lower-casing them when
// lowercase is set.
func NewMapper(headers []string, lowercase bool) *Mapper {
	keys := make([]string, len(headers))
	copy(keys, headers)

	if lowercase {
		caser := cases.Lower(language.Und)
		for i, key := range keys {
			keys[i] = caser.String(key)
		}
	}
	return &Mapper{keys: keys}
}

// Keys returns the element keys in header order
func (m *Mapper) Keys() []string {
	return m.keys
}

// Map builds the element for row. Values are trimmed and empty values become
// null. Fields beyond the header are dropped, and headers beyond the end of
// the row are left out of the element.
func (m *Mapper) Map(row parsers.Row) *Element {
	element := NewElement(len(m.keys))
	for i, key := range m.keys {
		if i >= len(row) {
			break
		}

		value := strings.TrimSpace(row[i])
		if value == "" {
			element.SetNull(key)
			continue
		}
		element.SetString(key, value)
	}
	return element
}
