// Package scenegraph implements a named tree of transform nodes that
// resolves world transforms and submits draw calls in one pre-order pass.
package scenegraph

import (
	"fmt"
	"slices"

	"github.com/Faultbox/minirace/pkg/math"
)

// RootName is the name of the sentinel root node.
const RootName = "root"

const rootIndex = 0

const noParent = -1

type node struct {
	name     string
	attrs    Attrs
	parent   int
	children []int
	alive    bool
}

// Graph is a tree of named nodes stored in an arena.
// It is not safe for concurrent use.
type Graph struct {
	nodes []node
	index map[string]int
	free  []int
}

// New creates a graph holding only the root node.
func New() *Graph {
	g := &Graph{
		index: make(map[string]int),
	}
	g.nodes = append(g.nodes, node{
		name:   RootName,
		attrs:  DefaultAttrs(),
		parent: noParent,
		alive:  true,
	})
	g.index[RootName] = rootIndex
	return g
}

// AddNode creates a node named name. It is attached to the root unless
// WithParent names another node. On error the graph is unchanged.
func (g *Graph) AddNode(name string, opts ...Option) error {
	o := addOptions{parent: RootName, attrs: DefaultAttrs()}
	for _, opt := range opts {
		opt(&o)
	}

	if name == "" {
		return fmt.Errorf("add node: empty name: %w", ErrInvalidOperation)
	}
	if _, ok := g.index[name]; ok {
		return fmt.Errorf("add node %q: %w", name, ErrDuplicateNode)
	}
	parent, ok := g.index[o.parent]
	if !ok {
		return fmt.Errorf("add node %q under %q: %w", name, o.parent, ErrUnknownParent)
	}
	if !o.attrs.validate() {
		return fmt.Errorf("add node %q: drawable needs mesh and pipeline: %w", name, ErrInvalidOperation)
	}

	n := node{name: name, attrs: o.attrs.clone(), parent: parent, alive: true}
	var idx int
	if k := len(g.free); k > 0 {
		idx = g.free[k-1]
		g.free = g.free[:k-1]
		g.nodes[idx] = n
	} else {
		idx = len(g.nodes)
		g.nodes = append(g.nodes, n)
	}
	g.index[name] = idx
	g.nodes[parent].children = append(g.nodes[parent].children, idx)
	return nil
}

// Has reports whether a node named name exists.
func (g *Graph) Has(name string) bool {
	_, ok := g.index[name]
	return ok
}

// Len returns the number of nodes, root included.
func (g *Graph) Len() int {
	return len(g.index)
}

// Get returns a copy of the node's attributes.
func (g *Graph) Get(name string) (Attrs, error) {
	idx, err := g.lookup(name)
	if err != nil {
		return Attrs{}, err
	}
	return g.nodes[idx].attrs.clone(), nil
}

// Set replaces the node's attributes.
func (g *Graph) Set(name string, a Attrs) error {
	idx, err := g.lookup(name)
	if err != nil {
		return err
	}
	if !a.validate() {
		return fmt.Errorf("set node %q: drawable needs mesh and pipeline: %w", name, ErrInvalidOperation)
	}
	g.nodes[idx].attrs = a.clone()
	return nil
}

// Update applies fn to the node's attributes in place.
func (g *Graph) Update(name string, fn func(*Attrs)) error {
	a, err := g.Get(name)
	if err != nil {
		return err
	}
	fn(&a)
	return g.Set(name, a)
}

// SetTransform replaces only the node's override transform.
func (g *Graph) SetTransform(name string, m math.Mat4) error {
	idx, err := g.lookup(name)
	if err != nil {
		return err
	}
	g.nodes[idx].attrs.Transform = m
	return nil
}

// Parent returns the name of the node's parent. The root has no parent.
func (g *Graph) Parent(name string) (string, error) {
	idx, err := g.lookup(name)
	if err != nil {
		return "", err
	}
	p := g.nodes[idx].parent
	if p == noParent {
		return "", fmt.Errorf("parent of %q: %w", name, ErrInvalidOperation)
	}
	return g.nodes[p].name, nil
}

// Children returns the names of the node's direct children in insertion order.
func (g *Graph) Children(name string) ([]string, error) {
	idx, err := g.lookup(name)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(g.nodes[idx].children))
	for _, c := range g.nodes[idx].children {
		out = append(out, g.nodes[c].name)
	}
	return out, nil
}

// RemoveNode deletes the node and its whole subtree. The root cannot be removed.
func (g *Graph) RemoveNode(name string) error {
	idx, err := g.lookup(name)
	if err != nil {
		return err
	}
	if idx == rootIndex {
		return fmt.Errorf("remove %q: %w", name, ErrInvalidOperation)
	}

	var subtree []int
	err = g.walkFrom(idx, func(i int) error {
		subtree = append(subtree, i)
		return nil
	})
	if err != nil {
		return fmt.Errorf("remove %q: %w", name, err)
	}

	parent := g.nodes[idx].parent
	if i := slices.Index(g.nodes[parent].children, idx); i >= 0 {
		g.nodes[parent].children = slices.Delete(g.nodes[parent].children, i, i+1)
	}

	for _, i := range subtree {
		delete(g.index, g.nodes[i].name)
		g.nodes[i] = node{}
		g.free = append(g.free, i)
	}
	return nil
}

// WorldTransform returns override * parentWorld * local for the node,
// resolving its ancestor chain from the root down.
func (g *Graph) WorldTransform(name string) (math.Mat4, error) {
	idx, err := g.lookup(name)
	if err != nil {
		return math.Identity(), err
	}

	var chain []int
	for i := idx; i != noParent; i = g.nodes[i].parent {
		if len(chain) > len(g.nodes) {
			return math.Identity(), fmt.Errorf("world transform of %q: %w", name, ErrCycle)
		}
		chain = append(chain, i)
	}

	world := math.Identity()
	for i := len(chain) - 1; i >= 0; i-- {
		world = compose(g.nodes[chain[i]].attrs, world)
	}
	return world, nil
}

// WorldTransforms resolves every node in a single pre-order traversal.
func (g *Graph) WorldTransforms() (map[string]math.Mat4, error) {
	out := make(map[string]math.Mat4, len(g.index))
	err := g.traverse(func(name string, _ *Attrs, world math.Mat4) error {
		out[name] = world
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Walk visits every node in pre-order with its world transform.
// Returning an error from fn stops the walk. fn must not add or remove nodes.
func (g *Graph) Walk(fn func(name string, a Attrs, world math.Mat4) error) error {
	return g.traverse(func(name string, a *Attrs, world math.Mat4) error {
		return fn(name, *a, world)
	})
}

func compose(a Attrs, parentWorld math.Mat4) math.Mat4 {
	return a.Transform.Mul(parentWorld).Mul(a.Local())
}

func (g *Graph) lookup(name string) (int, error) {
	idx, ok := g.index[name]
	if !ok {
		return 0, fmt.Errorf("%q: %w", name, ErrUnknownNode)
	}
	return idx, nil
}

// traverse runs a pre-order pass from the root, handing each node its world transform.
func (g *Graph) traverse(fn func(name string, a *Attrs, world math.Mat4) error) error {
	type frame struct {
		idx         int
		parentWorld math.Mat4
		depth       int
	}

	visited := make([]bool, len(g.nodes))
	stack := []frame{{idx: rootIndex, parentWorld: math.Identity()}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if visited[f.idx] || f.depth > len(g.nodes) {
			return fmt.Errorf("node %q reached twice: %w", g.nodes[f.idx].name, ErrCycle)
		}
		visited[f.idx] = true

		n := &g.nodes[f.idx]
		world := compose(n.attrs, f.parentWorld)
		if err := fn(n.name, &n.attrs, world); err != nil {
			return err
		}

		for i := len(n.children) - 1; i >= 0; i-- {
			stack = append(stack, frame{idx: n.children[i], parentWorld: world, depth: f.depth + 1})
		}
	}
	return nil
}

// walkFrom collects the subtree rooted at start in pre-order.
func (g *Graph) walkFrom(start int, fn func(int) error) error {
	visited := make(map[int]bool)
	stack := []int{start}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[i] {
			return fmt.Errorf("node %q reached twice: %w", g.nodes[i].name, ErrCycle)
		}
		visited[i] = true
		if err := fn(i); err != nil {
			return err
		}
		children := g.nodes[i].children
		for k := len(children) - 1; k >= 0; k-- {
			stack = append(stack, children[k])
		}
	}
	return nil
}
