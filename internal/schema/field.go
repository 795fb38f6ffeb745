package schema

// Field describes one column of a registered table. References names the
// table a foreign key points at; it is empty for ordinary columns.
type Field struct {
	Name       string `json:"name"`
	Type       string `json:"type"` // int, float, string, text, bool, timestamp
	Nullable   bool   `json:"nullable,omitempty"`
	PrimaryKey bool   `json:"primary_key,omitempty"`
	References string `json:"references,omitempty"`
}

// IsForeignKey returns true if the field references another table.
func (f Field) IsForeignKey() bool {
	return f.References != ""
}
