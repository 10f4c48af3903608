package offset

import "github.com/flowcore/connio/internal/connlog"

// Frontier maps each offset key to the highest committed Value ever
// observed on that channel. The runtime persists a Frontier snapshot
// after every FinishedSource{commit_allowed:true} and replays it into
// Reader.Seek on restart.
type Frontier map[Key]Value

// New returns an empty frontier.
func New() Frontier {
	return make(Frontier)
}

// Clone returns a shallow copy safe to mutate independently of f.
func (f Frontier) Clone() Frontier {
	out := make(Frontier, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Advance records value as the new position for key if it is greater than
// (or there is no) existing stored value, maintaining the invariant that a
// frontier always holds the maximum ever observed on each channel. It
// panics-free no-ops on a kind mismatch, logging instead, since that
// denotes a bug rather than a recoverable state (spec.md §3).
func (f Frontier) Advance(key Key, value Value) {
	existing, ok := f[key]
	if !ok {
		f[key] = value
		return
	}
	if existing.Kind() != value.Kind() {
		connlog.Errorf(connlog.Name(key.String()), "offset kind mismatch on advance: stored %s, got %s", existing, value)
		return
	}
	f[key] = Max(existing, value)
}

// Merge combines a and b commutatively and associatively over comparable
// entries: for each key present in either side, the result holds the
// maximum under that key's variant-specific order. When both sides hold a
// value for the same key but under different Kinds, this denotes a bug,
// not a recoverable state: the left-hand value is kept and the
// discrepancy is logged (spec.md §3 "Frontier merge").
func Merge(a, b Frontier) Frontier {
	out := make(Frontier, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		left, ok := out[k]
		if !ok {
			out[k] = v
			continue
		}
		if left.Kind() != v.Kind() {
			connlog.Errorf(connlog.Name(k.String()), "frontier merge: offset kind mismatch, keeping left value %s over %s", left, v)
			continue
		}
		out[k] = Max(left, v)
	}
	return out
}

// Get returns the stored value for key and whether it was present.
func (f Frontier) Get(key Key) (Value, bool) {
	v, ok := f[key]
	return v, ok
}
