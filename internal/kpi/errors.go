package kpi

import (
	"errors"
	"math"
)

// Ingestion errors. Lookups never fail; only building a dataset or a chart
// catalog can.
var (
	ErrDuplicateRow       = errors.New("duplicate kpi row")
	ErrUnknownMonth       = errors.New("unknown month")
	ErrUnknownPerspective = errors.New("unknown perspective")
	ErrEmptyField         = errors.New("required field is empty")
	ErrInvalidValue       = errors.New("invalid value")
	ErrInvalidChartKind   = errors.New("invalid chart kind")
)

// Finite reports whether v is neither NaN nor an infinity.
func Finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
