/*
Package domain contains the core types shared by the path_hierarchy request layer.

It defines the vocabulary used by every other package: the field names and
defaults of the text format, the opaque value-source descriptor that is passed
through to the execution engine untouched, and the error taxonomy. This package
is kept pure and free of I/O.

# Key Entities

  - ValuesSource: the generic field/script/missing/format descriptor.
  - InvalidArgumentError: the single request-authoring error kind.
*/
package domain
