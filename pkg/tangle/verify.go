package tangle

import "github.com/fsh/qplanarity/pkg/errors"

// Verify checks the structural invariants of the crossing state and returns
// an INTERNAL_ERROR describing the first violation found.
//
// It does not re-test geometry; compare against a fresh [New] for that.
func (t *Tracker) Verify() error {
	for e, set := range t.collisions {
		if len(set) == 0 {
			return errors.New(errors.ErrCodeInternal, "edge %s is tangled with nothing", e)
		}
		if _, ok := t.untangled[e]; ok {
			return errors.New(errors.ErrCodeInternal, "edge %s is both tangled and untangled", e)
		}
		for xy := range set {
			if xy == e {
				return errors.New(errors.ErrCodeInternal, "edge %s crosses itself", e)
			}
			if xy.Adjacent(e) {
				return errors.New(errors.ErrCodeInternal, "edges %s and %s share an endpoint but are recorded as crossing", e, xy)
			}
			if _, ok := t.collisions[xy][e]; !ok {
				return errors.New(errors.ErrCodeInternal, "crossing %s-%s is not symmetric", e, xy)
			}
		}
	}

	for _, e := range t.edges {
		_, tangled := t.collisions[e]
		_, untangled := t.untangled[e]
		if !tangled && !untangled {
			return errors.New(errors.ErrCodeInternal, "edge %s is neither tangled nor untangled", e)
		}
	}
	if got := len(t.collisions) + len(t.untangled); got != len(t.edges) {
		return errors.New(errors.ErrCodeInternal, "classified %d edges, have %d", got, len(t.edges))
	}
	return nil
}
