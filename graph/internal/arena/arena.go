// Package arena issues stable, monotonically increasing identifiers and
// tracks which of them are still alive. Graph objects (regions, nodes,
// ports) reference each other through plain Go pointers; arena only backs
// the identifiers those objects expose through their ID() accessors, so log lines, dumps,
// and statistics records have something stable to print that doesn't
// change if the underlying struct is moved or recreated.
package arena

// ID is an identifier issued by an Arena. IDs are never reused within one
// Arena's lifetime, so an ID found stale in a log or a cached summary can
// be distinguished from a live object that happens to reuse storage.
type ID uint64

// Arena issues IDs and tracks liveness. The zero value is not usable; use
// New.
type Arena struct {
	next  uint64
	alive map[ID]bool
}

// New returns an empty Arena ready to issue IDs starting at 1 (0 is
// reserved as the not-an-id value for zero Go structs).
func New() *Arena {
	return &Arena{next: 1, alive: make(map[ID]bool)}
}

// Alloc issues a fresh, live ID.
func (a *Arena) Alloc() ID {
	id := ID(a.next)
	a.next++
	a.alive[id] = true
	return id
}

// Kill marks id as no longer alive. Killing an already-dead or unknown ID
// is a no-op.
func (a *Arena) Kill(id ID) {
	delete(a.alive, id)
}

// Alive reports whether id was issued by this Arena and has not since been
// killed.
func (a *Arena) Alive(id ID) bool {
	return a.alive[id]
}

// Len returns the number of currently live IDs.
func (a *Arena) Len() int {
	return len(a.alive)
}
