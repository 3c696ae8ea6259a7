package domain

import "reflect"

// ValuesSource describes where the aggregated values come from.
// The request layer never interprets it; it is carried verbatim to the
// execution engine and through both codecs.
type ValuesSource struct {
	Field     string `json:"field,omitempty" mapstructure:"field"`
	Script    any    `json:"script,omitempty" mapstructure:"script"`
	Missing   any    `json:"missing,omitempty" mapstructure:"missing"`
	Format    string `json:"format,omitempty" mapstructure:"format"`
	ValueType string `json:"value_type,omitempty" mapstructure:"value_type"`
}

// IsZero reports whether no value-source field is set.
func (v ValuesSource) IsZero() bool {
	return v.Field == "" && v.Script == nil && v.Missing == nil && v.Format == "" && v.ValueType == ""
}

// Equal compares two descriptors. Script and Missing are compared deeply.
func (v ValuesSource) Equal(other ValuesSource) bool {
	return v.Field == other.Field &&
		v.Format == other.Format &&
		v.ValueType == other.ValueType &&
		reflect.DeepEqual(v.Script, other.Script) &&
		reflect.DeepEqual(v.Missing, other.Missing)
}
