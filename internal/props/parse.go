package props

import (
	"fmt"
	"strings"

	"github.com/theographic/theodb/internal/types"
)

// ParseRelationPropSafe parses "collection.index" where index may list
// several fallbacks separated by "|", e.g. "people.id|personLookup".
func ParseRelationPropSafe(relation string) (string, []string, error) {
	parsed_rel := strings.Split(relation, ".")
	if len(parsed_rel) != 2 {
		return "", nil, fmt.Errorf("Invalid syntax: relation(%s)", relation)
	}
	collection := strings.TrimSpace(parsed_rel[0])
	if len(collection) == 0 {
		return "", nil, fmt.Errorf("Invalid syntax: relation(%s)", relation)
	}

	indexes := []string{}
	for _, idx := range strings.Split(parsed_rel[1], "|") {
		idx = strings.TrimSpace(idx)
		if len(idx) == 0 {
			return "", nil, fmt.Errorf("Invalid syntax: relation(%s)", relation)
		}
		indexes = append(indexes, idx)
	}
	return collection, indexes, nil
}

func ParseVectorPropSafe(value string) (types.FieldType, error) {
	v_type := types.FieldType(strings.TrimSpace(value))
	if !v_type.IsValid() {
		return "", fmt.Errorf("vector(%s) is not a valid prop; %s is not a valid type", value, v_type)
	}
	if v_type == types.FieldTypeVector {
		return "", fmt.Errorf("vector(%s) is not a valid prop; nested vectors are not supported", value)
	}
	return v_type, nil
}
