package types

// Inferred field type names. TypeAny marks a field whose type varies across
// documents.
const (
	TypeString  = "string"
	TypeNumber  = "number"
	TypeBoolean = "boolean"
	TypeNull    = "null"
	TypeArray   = "array"
	TypeObject  = "object"
	TypeAny     = "any"
)

// FieldSchema describes one inferred field: its type, whether it appears in
// every document at its nesting level, and, for object fields, the nested
// field schemas.
type FieldSchema struct {
	Type     string                 `json:"type"`
	Required bool                   `json:"required"`
	Fields   map[string]FieldSchema `json:"fields,omitempty"`
}

// Schema is the inferred structural description of a collection, keyed by
// field name. System fields are excluded at the top level.
type Schema map[string]FieldSchema
