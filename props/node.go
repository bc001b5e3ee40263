// Package props implements the hierarchical property tree that drives
// canvases. Every node has a name, an index among its same-named siblings,
// an optional scalar value and a list of listeners. Child additions, child
// removals and value changes are reported synchronously to the listeners of
// the affected node and of all its ancestors.
//
// The tree is not safe for concurrent use. Mutations must be serialized with
// the frame loop that consumes the notifications.
package props

import (
	"strconv"
	"strings"
)

// Listener receives change notifications for a node and its descendants.
type Listener interface {
	ValueChanged(n *Node)
	ChildAdded(parent, child *Node)
	ChildRemoved(parent, child *Node)
}

// Node is a single element of a property tree.
type Node struct {
	name      string
	index     int
	parent    *Node
	children  []*Node
	value     any
	listeners []Listener
}

// NewRoot returns an empty, unnamed root node.
func NewRoot() *Node {
	return &Node{}
}

// Name returns the node name without index.
func (n *Node) Name() string { return n.name }

// Index returns the index of the node among siblings sharing its name.
func (n *Node) Index() int { return n.index }

// Parent returns the parent node, or nil for a root or detached node.
func (n *Node) Parent() *Node { return n.parent }

// DisplayName returns the name with a "[index]" suffix for non-zero indices.
func (n *Node) DisplayName() string {
	if n.index == 0 {
		return n.name
	}
	return n.name + "[" + strconv.Itoa(n.index) + "]"
}

// Path returns the absolute slash-separated path of the node.
func (n *Node) Path() string {
	if n.parent == nil {
		return "/"
	}
	var parts []string
	for p := n; p.parent != nil; p = p.parent {
		parts = append(parts, p.DisplayName())
	}
	var b strings.Builder
	for i := len(parts) - 1; i >= 0; i-- {
		b.WriteByte('/')
		b.WriteString(parts[i])
	}
	return b.String()
}

// Root returns the topmost ancestor of n.
func (n *Node) Root() *Node {
	r := n
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// --- Children ---

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildrenNamed returns the children with the given name in insertion order.
func (n *Node) ChildrenNamed(name string) []*Node {
	var out []*Node
	for _, c := range n.children {
		if c.name == name {
			out = append(out, c)
		}
	}
	return out
}

// Child returns the child with the given name and index, or nil.
func (n *Node) Child(name string, index int) *Node {
	for _, c := range n.children {
		if c.name == name && c.index == index {
			return c
		}
	}
	return nil
}

// GetChild returns the child with the given name and index. When the child
// does not exist and create is true it is created and announced to listeners.
func (n *Node) GetChild(name string, index int, create bool) *Node {
	if c := n.Child(name, index); c != nil || !create {
		return c
	}
	if name == "" || index < 0 {
		panic("props: invalid child name or index")
	}
	c := &Node{name: name, index: index, parent: n}
	n.children = append(n.children, c)
	n.fireChildAdded(c)
	return c
}

// AddChild creates a new child named name using the first index past the
// highest existing index for that name.
func (n *Node) AddChild(name string) *Node {
	next := 0
	for _, c := range n.children {
		if c.name == name && c.index >= next {
			next = c.index + 1
		}
	}
	return n.GetChild(name, next, true)
}

// RemoveChild detaches the child with the given name and index and returns
// it, or nil if there is no such child. Listeners are notified before the
// child loses its parent pointer so they can still inspect its position.
func (n *Node) RemoveChild(name string, index int) *Node {
	for i, c := range n.children {
		if c.name != name || c.index != index {
			continue
		}
		copy(n.children[i:], n.children[i+1:])
		n.children[len(n.children)-1] = nil
		n.children = n.children[:len(n.children)-1]
		n.fireChildRemoved(c)
		c.parent = nil
		return c
	}
	return nil
}

// RemoveChildren removes every child with the given name.
func (n *Node) RemoveChildren(name string) {
	for _, c := range n.ChildrenNamed(name) {
		n.RemoveChild(c.name, c.index)
	}
}

// Node resolves a relative path such as "mouse/x" or "size[1]". A leading
// slash resolves from the root. Missing nodes are created when create is true;
// otherwise nil is returned.
func (n *Node) Node(path string, create bool) *Node {
	cur := n
	if strings.HasPrefix(path, "/") {
		cur = n.Root()
	}
	for _, seg := range strings.Split(path, "/") {
		switch seg {
		case "", ".":
			continue
		case "..":
			if cur.parent == nil {
				return nil
			}
			cur = cur.parent
			continue
		}
		name, index, ok := parseSegment(seg)
		if !ok {
			return nil
		}
		cur = cur.GetChild(name, index, create)
		if cur == nil {
			return nil
		}
	}
	return cur
}

// parseSegment splits "name[3]" into its name and index.
func parseSegment(seg string) (string, int, bool) {
	open := strings.IndexByte(seg, '[')
	if open < 0 {
		return seg, 0, true
	}
	if !strings.HasSuffix(seg, "]") || open == 0 {
		return "", 0, false
	}
	idx, err := strconv.Atoi(seg[open+1 : len(seg)-1])
	if err != nil || idx < 0 {
		return "", 0, false
	}
	return seg[:open], idx, true
}

// --- Listeners ---

// AddListener attaches l to n. l is notified about n and all descendants.
func (n *Node) AddListener(l Listener) {
	n.listeners = append(n.listeners, l)
}

// RemoveListener detaches l from n. No-op if l is not attached.
func (n *Node) RemoveListener(l Listener) {
	for i, cur := range n.listeners {
		if cur == l {
			copy(n.listeners[i:], n.listeners[i+1:])
			n.listeners[len(n.listeners)-1] = nil
			n.listeners = n.listeners[:len(n.listeners)-1]
			return
		}
	}
}

// NumListeners returns the number of listeners attached directly to n.
func (n *Node) NumListeners() int {
	return len(n.listeners)
}

// FireCreatedRecursive replays the creation of the subtree below n: every
// child is announced with ChildAdded and every node carrying a value with
// ValueChanged. Used to bring a listener attached late up to date.
func (n *Node) FireCreatedRecursive() {
	for i := 0; i < len(n.children); i++ {
		c := n.children[i]
		n.fireChildAdded(c)
		c.FireCreatedRecursive()
	}
	if n.value != nil {
		n.fireValueChanged()
	}
}

// Listeners are called through an index loop so that a listener may add or
// remove listeners while being notified.

func (n *Node) fireValueChanged() {
	for p := n; p != nil; p = p.parent {
		for i := 0; i < len(p.listeners); i++ {
			p.listeners[i].ValueChanged(n)
		}
	}
}

func (n *Node) fireChildAdded(child *Node) {
	for p := n; p != nil; p = p.parent {
		for i := 0; i < len(p.listeners); i++ {
			p.listeners[i].ChildAdded(n, child)
		}
	}
}

func (n *Node) fireChildRemoved(child *Node) {
	for p := n; p != nil; p = p.parent {
		for i := 0; i < len(p.listeners); i++ {
			p.listeners[i].ChildRemoved(n, child)
		}
	}
}
