package chart

import "errors"

// ErrTooManyItems is the generator overflow domain error (spec.md §6-§7):
// raised when a column's derivation count for the current sentence length
// exceeds twice the completed-state cap. It is the only error that aborts
// mid-run; a plain parse's chart overflow is a soft rejection instead.
var ErrTooManyItems = errors.New("chart: generator overflow: too many items")
