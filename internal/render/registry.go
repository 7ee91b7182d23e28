package render

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownJob is returned when an id does not name a live job.
var ErrUnknownJob = errors.New("render: unknown job")

// JobID identifies a job in a Registry. The low 32 bits are the slot index
// and the high 32 bits its generation, so a stale id never aliases a job
// that later reuses the slot. The zero value is never issued.
type JobID uint64

func makeID(index, gen uint32) JobID {
	return JobID(uint64(gen)<<32 | uint64(index))
}

func (id JobID) index() uint32 { return uint32(id) }
func (id JobID) gen() uint32   { return uint32(id >> 32) }

// String returns a debug representation of the id.
func (id JobID) String() string {
	return fmt.Sprintf("job(%d@%d)", id.index(), id.gen())
}

type slot struct {
	job   Job
	layer Layer
	seq   uint64
	gen   uint32
	live  bool
}

// Registry is an arena of render jobs keyed by generational ids.
// Draw order is (layer, insertion sequence), independent of the id encoding.
type Registry struct {
	slots []slot
	free  []uint32
	seq   uint64
	live  int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Add stores job on the given layer and returns its id.
func (r *Registry) Add(job Job, layer Layer) JobID {
	r.seq++
	var idx uint32
	if n := len(r.free); n > 0 {
		idx = r.free[n-1]
		r.free = r.free[:n-1]
	} else {
		idx = uint32(len(r.slots))
		r.slots = append(r.slots, slot{})
	}
	s := &r.slots[idx]
	s.gen++
	s.job = job
	s.layer = layer
	s.seq = r.seq
	s.live = true
	r.live++
	return makeID(idx, s.gen)
}

func (r *Registry) lookup(id JobID) *slot {
	idx := id.index()
	if int(idx) >= len(r.slots) {
		return nil
	}
	s := &r.slots[idx]
	if !s.live || s.gen != id.gen() {
		return nil
	}
	return s
}

// Remove deletes the job and returns it. Removing a stale id is a no-op.
func (r *Registry) Remove(id JobID) (Job, bool) {
	s := r.lookup(id)
	if s == nil {
		return Job{}, false
	}
	job := s.job
	s.job = Job{}
	s.live = false
	r.free = append(r.free, id.index())
	r.live--
	return job, true
}

// Get returns a pointer to the live job for in-place mutation.
// The pointer is invalidated by the next Add.
func (r *Registry) Get(id JobID) (*Job, bool) {
	s := r.lookup(id)
	if s == nil {
		return nil, false
	}
	return &s.job, true
}

// Set replaces the job stored under id.
func (r *Registry) Set(job Job, id JobID) error {
	s := r.lookup(id)
	if s == nil {
		return fmt.Errorf("%w: %s", ErrUnknownJob, id)
	}
	s.job = job
	return nil
}

// Layer returns the layer a job was added on.
func (r *Registry) Layer(id JobID) (Layer, bool) {
	s := r.lookup(id)
	if s == nil {
		return 0, false
	}
	return s.layer, true
}

// Len returns the number of live jobs.
func (r *Registry) Len() int {
	return r.live
}

// Ordered returns live ids sorted by layer, then by insertion order.
func (r *Registry) Ordered() []JobID {
	ids := make([]JobID, 0, r.live)
	for i := range r.slots {
		if r.slots[i].live {
			ids = append(ids, makeID(uint32(i), r.slots[i].gen))
		}
	}
	sort.Slice(ids, func(a, b int) bool {
		sa, sb := &r.slots[ids[a].index()], &r.slots[ids[b].index()]
		if sa.layer != sb.layer {
			return sa.layer < sb.layer
		}
		return sa.seq < sb.seq
	})
	return ids
}

// Clear drops every job. Previously issued ids stay invalid.
func (r *Registry) Clear() {
	r.free = r.free[:0]
	for i := range r.slots {
		if r.slots[i].live {
			r.slots[i].live = false
			r.slots[i].job = Job{}
		}
		r.free = append(r.free, uint32(i))
	}
	r.live = 0
}
