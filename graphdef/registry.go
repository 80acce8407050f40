package graphdef

import "github.com/katalvlaran/stabilize/node"

// ResolvedUpstream is one already-instantiated upstream node handed to a
// NodeFactory, paired with the role name the compiler resolved it under
// ("" for positional dependencies).
type ResolvedUpstream struct {
	Role string
	Node node.Node
}

// NodeFactory builds one node.Node from its declared properties and its
// already-instantiated, already-ordered upstreams. It returns the node
// plus whether the compiler should register it as a source (i.e.
// implements node.Source and should be left dirty-seeded and reachable
// via MarkDirtyName).
type NodeFactory func(name string, properties map[string]interface{}, upstreams []ResolvedUpstream) (n node.Node, isSource bool, err error)

// registration pairs a factory with the named input roles (if any) it
// expects, in order. A nil/empty NamedInputRoles means the type takes
// positional dependencies instead.
type registration struct {
	factory         NodeFactory
	namedInputRoles []string
}

// Registry maps a NodeDef.Type string to a registration: a closed set of
// built-ins plus any user-registered kinds.
type Registry struct {
	byType map[string]registration
}

// NewRegistry builds a Registry pre-populated with every built-in kernel
// named in §4.3/§4.5: scalar_source, vector_source, sum, diff, product,
// ratio, select, vector_element, vector_spread, ewma, sma,
// rolling_stddev, compare.
func NewRegistry() *Registry {
	r := &Registry{byType: make(map[string]registration)}
	registerBuiltins(r)
	return r
}

// RegisterPositional adds a user kind taking positional dependencies.
func (r *Registry) RegisterPositional(typeName string, factory NodeFactory) {
	r.byType[typeName] = registration{factory: factory}
}

// RegisterNamed adds a user kind taking named inputs, in the given role
// order.
func (r *Registry) RegisterNamed(typeName string, roles []string, factory NodeFactory) {
	r.byType[typeName] = registration{factory: factory, namedInputRoles: roles}
}

// lookup returns the registration for typeName, or ok=false.
func (r *Registry) lookup(typeName string) (registration, bool) {
	reg, ok := r.byType[typeName]
	return reg, ok
}

// namedInputRoles reports the declared role order for typeName, nil if
// the type takes positional dependencies or is unknown.
func (r *Registry) namedInputRoles(typeName string) []string {
	return r.byType[typeName].namedInputRoles
}
