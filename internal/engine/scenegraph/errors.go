package scenegraph

import "errors"

var (
	// ErrDuplicateNode is returned when adding a node whose name is taken.
	ErrDuplicateNode = errors.New("duplicate node")
	// ErrUnknownNode is returned when a named node does not exist.
	ErrUnknownNode = errors.New("unknown node")
	// ErrUnknownParent is returned when adding a node under a missing parent.
	ErrUnknownParent = errors.New("unknown parent")
	// ErrInvalidOperation is returned for operations the tree cannot allow,
	// such as removing the root.
	ErrInvalidOperation = errors.New("invalid operation")
	// ErrCycle is returned when a traversal reaches a node twice.
	ErrCycle = errors.New("cycle in scene graph")
)
