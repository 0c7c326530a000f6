package cache

// entry is a cached value linked into its cache's recency list.
type entry[K comparable, V any] struct {
	key   K
	value V
	cost  int

	newer, older *entry[K, V]
}

// recency orders entries from most recently used (front) to least
// recently used (back) and keeps their summed cost.
//
// Not safe for concurrent use; Cache guards it with its mutex.
type recency[K comparable, V any] struct {
	front, back *entry[K, V]
	cost        int
}

// pushFront links e as the most recently used entry.
func (r *recency[K, V]) pushFront(e *entry[K, V]) {
	e.newer = nil
	e.older = r.front
	if r.front != nil {
		r.front.newer = e
	} else {
		r.back = e
	}
	r.front = e
	r.cost += e.cost
}

// touch marks e most recently used.
func (r *recency[K, V]) touch(e *entry[K, V]) {
	if e == r.front {
		return
	}
	r.unlink(e)
	r.pushFront(e)
}

// unlink removes e from the list.
func (r *recency[K, V]) unlink(e *entry[K, V]) {
	if e.newer != nil {
		e.newer.older = e.older
	} else {
		r.front = e.older
	}
	if e.older != nil {
		e.older.newer = e.newer
	} else {
		r.back = e.newer
	}
	e.newer, e.older = nil, nil
	r.cost -= e.cost
}

// popBack unlinks and returns the least recently used entry, or nil.
func (r *recency[K, V]) popBack() *entry[K, V] {
	e := r.back
	if e != nil {
		r.unlink(e)
	}
	return e
}

func (r *recency[K, V]) reset() {
	r.front, r.back = nil, nil
	r.cost = 0
}
