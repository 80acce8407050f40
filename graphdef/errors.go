package graphdef

import (
	"errors"
	"fmt"
)

// Build-time structural sentinels, following lvlath's package-level-var
// convention.
var (
	ErrUnknownType         = errors.New("graphdef: unknown node type")
	ErrUnknownDependency   = errors.New("graphdef: unknown dependency")
	ErrDuplicateNodeName   = errors.New("graphdef: duplicate node name")
	ErrMissingNamedInput   = errors.New("graphdef: missing named input")
	ErrCycleDetected       = errors.New("graphdef: cycle detected")
	ErrTemplateNotFound    = errors.New("graphdef: template not found")
	ErrTemplateCycle       = errors.New("graphdef: template expansion cycle")
	ErrInvalidProperty     = errors.New("graphdef: invalid property")
	ErrUnsupportedFileType = errors.New("graphdef: unsupported file extension")
)

// TypeError reports an unrecognized NodeDef.Type.
type TypeError struct {
	Node string
	Type string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("graphdef: node %q has unknown type %q", e.Node, e.Type)
}
func (e *TypeError) Unwrap() error { return ErrUnknownType }

// DependencyError reports a NodeDef referencing an upstream name that was
// never declared (after template expansion).
type DependencyError struct {
	Node string
	Upstream string
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("graphdef: node %q depends on unknown node %q", e.Node, e.Upstream)
}
func (e *DependencyError) Unwrap() error { return ErrUnknownDependency }

// DuplicateError reports two NodeDef entries (post-expansion) sharing a
// name.
type DuplicateError struct{ Name string }

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("graphdef: duplicate node name %q", e.Name)
}
func (e *DuplicateError) Unwrap() error { return ErrDuplicateNodeName }

// NamedInputError reports a factory's declared role with no corresponding
// entry in NodeDef.Inputs.
type NamedInputError struct {
	Node string
	Role string
}

func (e *NamedInputError) Error() string {
	return fmt.Sprintf("graphdef: node %q missing named input %q", e.Node, e.Role)
}
func (e *NamedInputError) Unwrap() error { return ErrMissingNamedInput }

// PropertyError reports a malformed or out-of-range property value.
type PropertyError struct {
	Node     string
	Property string
	Reason   string
}

func (e *PropertyError) Error() string {
	return fmt.Sprintf("graphdef: node %q property %q invalid: %s", e.Node, e.Property, e.Reason)
}
func (e *PropertyError) Unwrap() error { return ErrInvalidProperty }

// InstantiationCycleError reports that the pre-sort over declared node
// names (before factories ever run) could not produce a total order.
type InstantiationCycleError struct {
	Pending []string
}

func (e *InstantiationCycleError) Error() string {
	return fmt.Sprintf("graphdef: cycle detected among node declarations: %d node(s) pending (first: %q)",
		len(e.Pending), firstOrEmpty(e.Pending))
}
func (e *InstantiationCycleError) Unwrap() error { return ErrCycleDetected }

func firstOrEmpty(s []string) string {
	if len(s) == 0 {
		return ""
	}
	return s[0]
}
