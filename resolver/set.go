package resolver

import (
	"github.com/tie/claunch/models"
)

// LibrarySet is the insertion ordered result of library resolution.
// At most one classpath entry and one native jar is registered per
// conflict key.
type LibrarySet struct {
	classpath registry
	natives   registry
}

func NewLibrarySet() *LibrarySet {
	return &LibrarySet{
		classpath: registry{kind: "library", paths: make(map[string]string)},
		natives:   registry{kind: "native", paths: make(map[string]string)},
	}
}

// Paths returns the classpath entries in resolution order.
func (s *LibrarySet) Paths() []string {
	return s.classpath.list()
}

// Len returns the number of classpath entries.
func (s *LibrarySet) Len() int {
	return len(s.classpath.list())
}

// Natives returns the native jars in resolution order.
func (s *LibrarySet) Natives() []string {
	return s.natives.list()
}

// registry maps conflict keys to paths, remembering the order in which
// keys were last registered.
type registry struct {
	kind  string
	order []string
	paths map[string]string
}

// register inserts fpath under key, replacing an existing entry only when
// the new declaration has child rank. A replaced entry moves to the end.
func (r *registry) register(log models.Sink, key, fpath string, rank Rank) {
	existing, ok := r.paths[key]
	switch {
	case !ok:
		log.Debugf("%s: %s -> %s", r.kind, key, fpath)
	case existing == fpath:
		return
	case rank == RankChild:
		log.Infof("%s conflict resolved with child priority: %s: replacing %s with %s", r.kind, key, existing, fpath)
		r.order = remove(r.order, key)
	default:
		log.Debugf("%s conflict: keeping %s for %s, ignoring %s", r.kind, existing, key, fpath)
		return
	}
	r.paths[key] = fpath
	r.order = append(r.order, key)
}

func (r *registry) list() []string {
	out := make([]string, 0, len(r.order))
	seen := make(map[string]bool, len(r.order))
	for _, key := range r.order {
		p := r.paths[key]
		if seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}

func remove(ss []string, s string) []string {
	out := ss[:0]
	for _, v := range ss {
		if v != s {
			out = append(out, v)
		}
	}
	return out
}
