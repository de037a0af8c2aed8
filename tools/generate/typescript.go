package generate

import (
	"fmt"
	"strings"

	"github.com/theographic/theodb/internal/types"
)

func SchemaToTypescript(s []ParsedEntity) []byte {
	var res strings.Builder
	for i, e := range s {
		if i > 0 {
			res.WriteString("\n")
		}
		fmt.Fprintf(&res, "export type %s = {\n%s\n};\n", e.Name, fieldsToTypescript(e.Fields))
	}

	res.WriteString("\nexport type Schema = {\n")
	for _, e := range s {
		fmt.Fprintf(&res, "\t%s: %s;\n", e.Collection, e.Name)
	}
	res.WriteString("};\n")
	return []byte(res.String())
}

func fieldsToTypescript(fields []ParsedField) string {
	lines := make([]string, len(fields))
	for i, f := range fields {
		lines[i] = fmt.Sprintf("\t%s%s: %s;", f.Name, typescriptOptional(f), fieldToTypescript(f))
	}
	return strings.Join(lines, "\n")
}

// Only the identifier and list fields are always present.
func typescriptOptional(f ParsedField) string {
	if f.Name == "id" || f.BuiltinType == types.FieldTypeVector {
		return ""
	}
	return "?"
}

func fieldToTypescript(f ParsedField) string {
	switch {
	case f.Relation != nil:
		return fmt.Sprintf("%s[]", f.Relation.Target)
	case f.BuiltinType == types.FieldTypeVector:
		return fmt.Sprintf("%s[]", typeToTypescript(f.ElemType))
	case f.Name == "id":
		return typeToTypescript(f.BuiltinType)
	default:
		return typeToTypescript(f.BuiltinType) + " | null"
	}
}

func typeToTypescript(t types.FieldType) string {
	switch t {
	case types.FieldTypeInt, types.FieldTypeFloat:
		return "number"
	case types.FieldTypeString:
		return "string"
	case types.FieldTypeBool:
		return "boolean"
	}
	return "unknown"
}
