package generate

import (
	"fmt"
	"strings"

	"github.com/theographic/theodb/internal/types"
)

const filterInputs = `"""
Filter a string field. All specified sub-fields are combined with AND logic.
"""
input StringFilter {
  "Exact, case-sensitive match"
  eq: String
  "Case-insensitive substring match"
  contains: String
}

"""
Filter an integer field. All specified sub-fields are combined with AND logic.
"""
input IntFilter {
  eq: Int
  gte: Int
  lte: Int
}

"""
Filter a boolean field.
"""
input BooleanFilter {
  eq: Boolean
}
`

// SchemaToGraphQL renders the SDL served by the GraphQL endpoint.
func SchemaToGraphQL(s []ParsedEntity) []byte {
	var res strings.Builder
	res.WriteString(filterInputs)

	for _, e := range s {
		fmt.Fprintf(&res, "\ninput %sFilter {\n", e.Name)
		for _, f := range e.Fields {
			if len(f.Filter) > 0 {
				fmt.Fprintf(&res, "  %s: %s\n", f.Name, filterInput(f.Filter))
			}
		}
		res.WriteString("}\n")
	}

	for _, e := range s {
		fmt.Fprintf(&res, "\ntype %s {\n", e.Name)
		for _, f := range e.Fields {
			fmt.Fprintf(&res, "  %s: %s\n", f.Name, fieldToGraphQL(f))
		}
		res.WriteString("}\n")
	}

	res.WriteString("\ntype Query {\n")
	for _, e := range s {
		fmt.Fprintf(&res, "  %s(where: %sFilter, limit: Int, offset: Int): [%s]\n", e.Collection, e.Name, e.Name)
	}
	for _, e := range s {
		if e.Search != nil {
			fmt.Fprintf(&res, "  %s(input: String!): [%s]\n", e.Search.Name, e.Name)
		}
	}
	res.WriteString("}\n")

	return []byte(res.String())
}

func filterInput(kind string) string {
	if kind == "Bool" {
		return "BooleanFilter"
	}
	return kind + "Filter"
}

func fieldToGraphQL(f ParsedField) string {
	switch {
	case f.Relation != nil:
		return fmt.Sprintf("[%s]", f.Relation.Target)
	case f.BuiltinType == types.FieldTypeVector:
		return fmt.Sprintf("[%s]", typeToGraphQL(f.ElemType))
	case f.Name == "id":
		return typeToGraphQL(f.BuiltinType) + "!"
	default:
		return typeToGraphQL(f.BuiltinType)
	}
}

func typeToGraphQL(t types.FieldType) string {
	switch t {
	case types.FieldTypeInt:
		return "Int"
	case types.FieldTypeFloat:
		return "Float"
	case types.FieldTypeBool:
		return "Boolean"
	}
	return "String"
}
