package domain

// TypeName is the aggregation type key used in the text format envelope.
const TypeName = "path_hierarchy"

// Field names of the text format.
const (
	FieldOrder     = "order"
	FieldSeparator = "separator"
	FieldMinDepth  = "minDepth"
	FieldMaxDepth  = "maxDepth"
	FieldDepth     = "depth"

	FieldField     = "field"
	FieldScript    = "script"
	FieldMissing   = "missing"
	FieldFormat    = "format"
	FieldValueType = "value_type"

	FieldMeta = "meta"
	FieldAggs = "aggs"
)

// Defaults applied when a field is absent. Fields equal to their default are
// elided from the text form.
const (
	DefaultSeparator = "/"
	DefaultMinDepth  = 0
	DefaultMaxDepth  = 2
	DefaultDepth     = 0
)
