package types

import "slices"

var VALID_BUILTIN_TYPES = []FieldType{
	FieldTypeInt, FieldTypeString, FieldTypeFloat, FieldTypeBool, FieldTypeVector,
}

// FieldType is the public type of a declared entity field.
// Vector fields are lists; relation fields are always vectors of records.
type FieldType string

const (
	FieldTypeInt    FieldType = "Int"
	FieldTypeString FieldType = "String"
	FieldTypeFloat  FieldType = "Float"
	FieldTypeBool   FieldType = "Bool"
	FieldTypeVector FieldType = "Vector"
)

func (t FieldType) IsValid() bool {
	return slices.Contains(VALID_BUILTIN_TYPES, t)
}
