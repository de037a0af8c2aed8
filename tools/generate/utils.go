package generate

import (
	"encoding/json"

	"github.com/theographic/theodb/internal/filter"
	"github.com/theographic/theodb/internal/schema"
	"github.com/theographic/theodb/internal/types"
)

type (
	ParsedEntity struct {
		Name       string        `json:"name"`
		Collection string        `json:"collection"`
		Fields     []ParsedField `json:"fields"`
		Search     *ParsedSearch `json:"search,omitempty"`
	}

	ParsedSearch struct {
		Name   string   `json:"name"`
		Fields []string `json:"fields"`
	}

	ParsedField struct {
		Name        string          `json:"name"`
		BuiltinType types.FieldType `json:"type"`
		ElemType    types.FieldType `json:"elemType,omitempty"`
		Rule        string          `json:"rule"`
		Source      string          `json:"source,omitempty"`
		Filter      string          `json:"filter,omitempty"`
		Relation    *ParsedRelation `json:"relation,omitempty"`
	}

	ParsedRelation struct {
		// Target is the entity name; Collection the collection it is loaded from
		Target     string   `json:"target"`
		Collection string   `json:"collection"`
		Indexes    []string `json:"indexes"`
	}
)

func schemaDestructure(reg *schema.Registry) []ParsedEntity {
	res := []ParsedEntity{}
	for _, e := range reg.All() {
		fields := []ParsedField{}
		for _, f := range e.Fields.Values() {
			fields = append(fields, destructureField(reg, f))
		}

		entity := ParsedEntity{Name: e.Name, Collection: e.Collection, Fields: fields}
		if len(e.SearchName) > 0 {
			entity.Search = &ParsedSearch{Name: e.SearchName, Fields: e.SearchFields}
		}
		res = append(res, entity)
	}
	return res
}

func destructureField(reg *schema.Registry, f *schema.Field) ParsedField {
	p := ParsedField{Name: f.Name, BuiltinType: f.BuiltinType, Rule: f.Rule.String()}
	if f.Source() != f.Name {
		p.Source = f.Source()
	}
	if f.Filter != filter.KindNone {
		p.Filter = f.Filter.String()
	}

	if f.IsRelation() {
		rel := &ParsedRelation{Collection: f.Relation.Target, Indexes: f.Relation.Indexes}
		if target, ok := reg.Target(f.Relation); ok {
			rel.Target = target.Name
		}
		p.Relation = rel
	} else if f.BuiltinType == types.FieldTypeVector {
		p.ElemType = f.ElemType()
	}
	return p
}

func SchemaToJson(s []ParsedEntity) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}
