package zset

// ZSet is an ordered name->score container: the sorted-set value kind a
// keyspace Entry may hold. Exact lookups go through byName; ordered
// traversal (seek/offset) goes through the skip list. Both index the same
// *Node, so a Delete only has to unlink once from each.
type ZSet struct {
	list   *skiplist
	byName map[string]*Node
}

// New returns an empty sorted set.
func New() *ZSet {
	return &ZSet{
		list:   newSkiplist(0),
		byName: make(map[string]*Node),
	}
}

// Insert adds name with score if absent, or moves it to its new ranked
// position if score changed. Returns true iff name was newly added.
func (z *ZSet) Insert(name string, score float64) bool {
	if n, ok := z.byName[name]; ok {
		if n.Score == score {
			return false
		}
		z.list.delete(n)
		n.Score = score
		z.list.insert(n)
		return false
	}

	n := &Node{Name: name, Score: score}
	z.list.insert(n)
	z.byName[name] = n
	return true
}

// Lookup returns the node for name, or (nil, false) if absent.
func (z *ZSet) Lookup(name string) (*Node, bool) {
	n, ok := z.byName[name]
	return n, ok
}

// Delete removes n from the set. n must have come from this ZSet.
func (z *ZSet) Delete(n *Node) {
	delete(z.byName, n.Name)
	z.list.delete(n)
}

// SeekGE returns the first node with (Score, Name) >= (score, name), or
// (nil, false) if none qualifies.
func (z *ZSet) SeekGE(score float64, name string) (*Node, bool) {
	n := z.list.seekGE(score, name)
	return n, n != nil
}

// Offset steps from n by k positions in the total order: forward for
// k > 0, backward for k < 0. Returns (nil, false) if the walk runs off
// either end.
func (z *ZSet) Offset(n *Node, k int) (*Node, bool) {
	if n == nil {
		return nil, false
	}
	for k > 0 && n != nil {
		n = n.forward[0]
		k--
	}
	for k < 0 && n != nil {
		n = n.backward
		k++
	}
	if n == nil {
		return nil, false
	}
	return n, true
}

// Clear removes every node, leaving an empty set.
func (z *ZSet) Clear() {
	z.list = newSkiplist(0)
	z.byName = make(map[string]*Node)
}

// Size returns the number of (name, score) pairs currently stored.
func (z *ZSet) Size() int {
	return len(z.byName)
}
