package mesh

import (
	"github.com/matzehuels/halfmesh/pkg/errors"
	"github.com/matzehuels/halfmesh/pkg/geom"
)

// positionOf queries the read capability on a vertex payload.
func positionOf[V any](payload V) (geom.Vector, bool) {
	if p, ok := any(payload).(geom.Positioned); ok {
		return p.Position(), true
	}
	return geom.Vector{}, false
}

// buildAt queries the construction capability on a vertex payload: a
// WithPosition method producing a new payload of the same type at the given
// position. template supplies the non-positional fields of the result.
func buildAt[V any](template V, p geom.Vector) (V, bool) {
	if b, ok := any(template).(interface {
		WithPosition(geom.Vector) V
	}); ok {
		return b.WithPosition(p), true
	}
	var zero V
	return zero, false
}

// errNoPosition is the failure for a payload lacking the read capability.
func errNoPosition[V any](payload V) error {
	return errors.New(errors.ErrCodeCapabilityUnavailable,
		"vertex payload %T does not implement geom.Positioned", payload)
}

// errNoBuilder is the failure for a payload lacking the construction
// capability.
func errNoBuilder[V any](payload V) error {
	return errors.New(errors.ErrCodeCapabilityUnavailable,
		"vertex payload %T does not implement WithPosition(geom.Vector) %T", payload, payload)
}
