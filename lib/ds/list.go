package ds

// ListNode is one link in an intrusive, circular, doubly-linked list. A
// ListNode used as a sentinel (created via NewList) is never itself a
// member; Value is nil for the sentinel and set for every real member.
type ListNode struct {
	prev, next *ListNode

	// Value is the owner of this node, stored so a detach or walk can get
	// back to the connection (or other structure) the node belongs to.
	Value interface{}
}

// List is a circular doubly-linked FIFO with a dedicated sentinel node.
// The sentinel's Next is the head (least recently pushed) and its Prev is
// the tail (most recently pushed). All operations are O(1).
type List struct {
	sentinel ListNode
}

// NewList returns an empty list.
func NewList() *List {
	l := &List{}
	l.sentinel.next = &l.sentinel
	l.sentinel.prev = &l.sentinel
	return l
}

// Empty reports whether the list has no members.
func (l *List) Empty() bool {
	return l.sentinel.next == &l.sentinel
}

// Front returns the head node (oldest), or nil if the list is empty.
func (l *List) Front() *ListNode {
	if l.Empty() {
		return nil
	}
	return l.sentinel.next
}

// PushBack appends a new node wrapping value to the tail and returns it.
func (l *List) PushBack(value interface{}) *ListNode {
	n := &ListNode{Value: value}
	l.insertBefore(n, &l.sentinel)
	return n
}

// MoveToBack detaches n (if attached) and re-inserts it at the tail. Used
// on every I/O event to mark a connection as most-recently-active.
func (l *List) MoveToBack(n *ListNode) {
	l.detach(n)
	l.insertBefore(n, &l.sentinel)
}

// Detach removes n from whatever list it is in. Safe to call on a node
// already detached (it becomes a no-op, self-linked node).
func (l *List) Detach(n *ListNode) {
	l.detach(n)
}

func (l *List) insertBefore(n, anchor *ListNode) {
	n.prev = anchor.prev
	n.next = anchor
	anchor.prev.next = n
	anchor.prev = n
}

func (l *List) detach(n *ListNode) {
	n.prev.next = n.next
	n.next.prev = n.prev
	n.next = n
	n.prev = n
}
