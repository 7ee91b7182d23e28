package partition

import "sort"

// ID identifies an entry in an Index.
type ID int

// Index maps registered tiles to their partitions and caches the ids whose
// partition collides with the player's.
//
// The cache is rebuilt only when SetPlayer sees a different partition.
// Add, Remove and Set patch the cache in place so it never goes stale.
type Index struct {
	entries  map[ID]Partition
	next     ID
	player   Partition
	cache    []ID
	rebuilds int
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{entries: make(map[ID]Partition)}
}

// Add registers a partition and returns its id.
func (ix *Index) Add(p Partition) ID {
	id := ix.next
	ix.next++
	ix.entries[id] = p
	if p.Collides(ix.player) {
		ix.insertCached(id)
	}
	return id
}

// Remove drops an id. Unknown ids are ignored.
func (ix *Index) Remove(id ID) {
	if _, ok := ix.entries[id]; !ok {
		return
	}
	delete(ix.entries, id)
	ix.dropCached(id)
}

// Set updates the partition of a registered id.
func (ix *Index) Set(id ID, p Partition) {
	if _, ok := ix.entries[id]; !ok {
		return
	}
	ix.entries[id] = p
	if p.Collides(ix.player) {
		ix.insertCached(id)
	} else {
		ix.dropCached(id)
	}
}

// Get returns the stored partition for id.
func (ix *Index) Get(id ID) (Partition, bool) {
	p, ok := ix.entries[id]
	return p, ok
}

// SetPlayer stores the player's partition and rebuilds the candidate
// cache if it changed. It reports whether a rebuild happened.
func (ix *Index) SetPlayer(p Partition) bool {
	if p == ix.player {
		return false
	}
	ix.player = p
	ix.rebuild()
	return true
}

// Player returns the last partition given to SetPlayer.
func (ix *Index) Player() Partition {
	return ix.player
}

func (ix *Index) rebuild() {
	ix.rebuilds++
	ix.cache = ix.cache[:0]
	for id, p := range ix.entries {
		if p.Collides(ix.player) {
			ix.cache = append(ix.cache, id)
		}
	}
	sort.Slice(ix.cache, func(i, j int) bool { return ix.cache[i] < ix.cache[j] })
}

// Candidates returns the cached ids in ascending order. The slice is owned
// by the index and is valid until the next mutating call.
func (ix *Index) Candidates() []ID {
	return ix.cache
}

// Rebuilds returns how many times the cache has been rebuilt.
func (ix *Index) Rebuilds() int {
	return ix.rebuilds
}

// Len returns the number of registered ids.
func (ix *Index) Len() int {
	return len(ix.entries)
}

// Clear drops every registration and forgets the player partition, so the
// next SetPlayer always rebuilds. Ids restart from zero.
func (ix *Index) Clear() {
	clear(ix.entries)
	ix.cache = ix.cache[:0]
	ix.next = 0
	ix.player = Partition{}
}

func (ix *Index) insertCached(id ID) {
	i := sort.Search(len(ix.cache), func(i int) bool { return ix.cache[i] >= id })
	if i < len(ix.cache) && ix.cache[i] == id {
		return
	}
	ix.cache = append(ix.cache, 0)
	copy(ix.cache[i+1:], ix.cache[i:])
	ix.cache[i] = id
}

func (ix *Index) dropCached(id ID) {
	i := sort.Search(len(ix.cache), func(i int) bool { return ix.cache[i] >= id })
	if i < len(ix.cache) && ix.cache[i] == id {
		ix.cache = append(ix.cache[:i], ix.cache[i+1:]...)
	}
}
