package builder

import (
	"fmt"
	"strconv"
)

// IndexMap maps an index value to the ordinal of the record holding it.
type IndexMap struct {
	Field string
	Map   map[string]int
}

func NewIndexMap(field string) *IndexMap {
	return &IndexMap{Field: field, Map: map[string]int{}}
}

func formatIndexValue(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return fmt.Sprintf("%v", v)
}

func (m *IndexMap) Has(key any) bool {
	_, ok := m.Map[formatIndexValue(key)]
	return ok
}

func (m *IndexMap) Get(key any) (int, bool) {
	val, ok := m.Map[formatIndexValue(key)]
	return val, ok
}

// Set overwrites existing entries: the last record indexed under a key wins.
func (m *IndexMap) Set(key any, ordinal int) {
	m.Map[formatIndexValue(key)] = ordinal
}

func (m *IndexMap) Len() int { return len(m.Map) }
