package types

// IndexDefinition declares that a (collection, field) pair is tracked for
// lookup. Unique additionally enforces value uniqueness on insert and update.
type IndexDefinition struct {
	Unique bool `json:"unique"`
}

// RelationDefinition declares that a collection field references records of
// another collection. Field names the referenced field; it defaults to "id"
// when empty.
type RelationDefinition struct {
	Ref   string `json:"ref"`
	Field string `json:"field"`
}

// Metadata holds the store-wide bookkeeping persisted alongside the data:
// the id serial counter plus index and relation definitions, both keyed
// collection name, then field name.
type Metadata struct {
	Serial    int64                                    `json:"serial"`
	Indices   map[string]map[string]IndexDefinition    `json:"indices"`
	Relations map[string]map[string]RelationDefinition `json:"relations"`
}

// Snapshot is the full in-memory state of a store at a point in time:
// metadata plus every collection's ordered record list. It is also the unit
// of persistence: backends read and write whole snapshots.
type Snapshot struct {
	Metadata Metadata            `json:"metadata"`
	Data     map[string][]Record `json:"data"`
}

// NewSnapshot returns an empty initialized snapshot (serial 0, no indices,
// relations, or data).
func NewSnapshot() *Snapshot {
	s := &Snapshot{}
	s.Normalize()
	return s
}

// Normalize ensures all snapshot maps are non-nil. Backends call this after
// decoding so the engine never branches on nil maps.
func (s *Snapshot) Normalize() {
	if s.Metadata.Indices == nil {
		s.Metadata.Indices = make(map[string]map[string]IndexDefinition)
	}
	if s.Metadata.Relations == nil {
		s.Metadata.Relations = make(map[string]map[string]RelationDefinition)
	}
	if s.Data == nil {
		s.Data = make(map[string][]Record)
	}
}

// SetIndex registers or overwrites the index definition for a collection
// field. Idempotent.
func (s *Snapshot) SetIndex(collection, field string, def IndexDefinition) {
	if s.Metadata.Indices[collection] == nil {
		s.Metadata.Indices[collection] = make(map[string]IndexDefinition)
	}
	s.Metadata.Indices[collection][field] = def
}

// SetRelation registers or overwrites the relation definition for a
// collection field. An empty referenced field defaults to "id". Idempotent.
func (s *Snapshot) SetRelation(collection, field string, def RelationDefinition) {
	if def.Field == "" {
		def.Field = FieldID
	}
	if s.Metadata.Relations[collection] == nil {
		s.Metadata.Relations[collection] = make(map[string]RelationDefinition)
	}
	s.Metadata.Relations[collection][field] = def
}

// Indices returns the index definitions for a collection, or nil.
func (s *Snapshot) Indices(collection string) map[string]IndexDefinition {
	return s.Metadata.Indices[collection]
}

// Relations returns the relation definitions for a collection, or nil.
func (s *Snapshot) Relations(collection string) map[string]RelationDefinition {
	return s.Metadata.Relations[collection]
}

// NextSerial increments and returns the id serial counter. The counter only
// ever increases; each value is issued exactly once per snapshot lineage.
func (s *Snapshot) NextSerial() int64 {
	s.Metadata.Serial++
	return s.Metadata.Serial
}
