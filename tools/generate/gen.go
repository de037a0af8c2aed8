package generate

import (
	"fmt"

	"github.com/theographic/theodb/internal/schema"
)

// SchemaToLang describes the entity declarations of reg in lang:
// graphql (SDL), typescript or json.
func SchemaToLang(reg *schema.Registry, lang string) ([]byte, error) {
	s := schemaDestructure(reg)
	switch lang {
	case "json":
		return SchemaToJson(s)
	case "typescript":
		fallthrough
	case "ts":
		return SchemaToTypescript(s), nil
	case "graphql":
		fallthrough
	case "gql":
		return SchemaToGraphQL(s), nil
	default:
		return nil, fmt.Errorf("Unsupported Language: %s", lang)
	}
}
