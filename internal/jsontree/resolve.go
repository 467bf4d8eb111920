package jsontree

// Get walks root along path and returns the value there. The second result
// is false when any prefix of the path runs through null, a missing key, an
// out-of-range index, or a value of the wrong container kind. Get never
// fails on a dangling path; a miss is an ordinary result.
func Get(root Value, path Path) (Value, bool) {
	cur := root
	for _, seg := range path {
		if cur == nil || cur.Kind() == KindNull {
			return nil, false
		}
		next, ok := child(cur, seg)
		if !ok {
			return nil, false
		}
		cur = next
	}
	if cur == nil {
		return nil, false
	}
	return cur, true
}

// Set writes v at path and returns the root of the resulting tree. An empty
// path replaces the root outright. Intermediates that are absent or not the
// container kind the next segment needs are materialized (Index segments
// get a fresh array, Key segments a fresh object), so Set always succeeds
// by growing the tree. Mutation happens in place wherever a container
// already exists; a scalar root under a non-empty path cannot be mutated,
// so callers must use the return value.
func Set(root Value, path Path, v Value) Value {
	if len(path) == 0 {
		return v
	}
	if !containerFits(root, path[0]) {
		root = newContainer(path[0])
	}
	cur := root
	for i := 0; i < len(path)-1; i++ {
		seg := path[i]
		next, ok := child(cur, seg)
		if !ok || !containerFits(next, path[i+1]) {
			next = newContainer(path[i+1])
			setChild(cur, seg, next)
		}
		cur = next
	}
	setChild(cur, path[len(path)-1], v)
	return root
}

// child indexes one step into a container. A kind mismatch (Key into an
// array, Index into anything but an array) is a miss, not an error.
func child(v Value, seg Segment) (Value, bool) {
	switch s := seg.(type) {
	case Key:
		obj, ok := v.(*Object)
		if !ok {
			return nil, false
		}
		return obj.Get(string(s))
	case Index:
		arr, ok := v.(*Array)
		if !ok {
			return nil, false
		}
		return arr.At(int(s))
	default:
		return nil, false
	}
}

// setChild assigns into a container whose kind matches seg; Set guarantees
// the match by materializing first.
func setChild(v Value, seg Segment, child Value) {
	switch s := seg.(type) {
	case Key:
		if obj, ok := v.(*Object); ok {
			obj.Set(string(s), child)
		}
	case Index:
		if arr, ok := v.(*Array); ok {
			arr.SetAt(int(s), child)
		}
	}
}

// containerFits reports whether v is the container kind seg indexes into.
func containerFits(v Value, seg Segment) bool {
	switch seg.(type) {
	case Index:
		_, ok := v.(*Array)
		return ok
	case Key:
		_, ok := v.(*Object)
		return ok
	default:
		return false
	}
}

func newContainer(seg Segment) Value {
	if _, ok := seg.(Index); ok {
		return NewArray()
	}
	return NewObject()
}
