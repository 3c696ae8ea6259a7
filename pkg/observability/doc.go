/*
Package observability provides Prometheus instrumentation for the request
layer.

Operations (parse, encode, decode, normalize, store) are counted by outcome,
and payload sizes are recorded per wire format so the binary and text forms
can be compared.
*/
package observability
