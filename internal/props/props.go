package props

import "slices"

type FieldProp string

var VALID_BUILTIN_PROPS = []FieldProp{
	FieldPropRelation, FieldPropSource, FieldPropVector,
}

const (
	FieldPropRelation FieldProp = "relation" // relation(collection.index|index)
	FieldPropSource   FieldProp = "source"   // source(attribute name)
	FieldPropVector   FieldProp = "vector"   // vector(type)
)

func (p FieldProp) IsValid() bool {
	return slices.Contains(VALID_BUILTIN_PROPS, p)
}

// KeyPropPrimary names the primary index in a relation prop.
const KeyPropPrimary string = "id"
