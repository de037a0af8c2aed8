package query

import (
	"strings"

	"github.com/theographic/theodb/internal/builder"
)

// Search returns every record of c where any of fields contains input,
// ignoring case. Blank input matches nothing.
func Search(c *builder.Collection, input string, fields []string) []*builder.Record {
	found := []*builder.Record{}
	if len(strings.TrimSpace(input)) == 0 {
		return found
	}

	needle := strings.ToLower(input)
	for _, rec := range c.Records() {
		for _, field := range fields {
			value, ok := rec.Get(field).(string)
			if ok && strings.Contains(strings.ToLower(value), needle) {
				found = append(found, rec)
				break
			}
		}
	}
	return found
}
