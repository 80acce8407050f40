package graphdef

import "github.com/katalvlaran/stabilize/node"

// Property coercion helpers perform best-effort coercion from the
// untyped definition — a decoded JSON/YAML document hands every property
// through as interface{}, so these centralize the type assertions and
// defaulting every built-in kernel factory needs.

func propFloat64(props map[string]interface{}, key string, def float64) float64 {
	v, ok := props[key]
	if !ok {
		return def
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	}
	return def
}

func propInt(props map[string]interface{}, key string, def int) int {
	v, ok := props[key]
	if !ok {
		return def
	}
	switch n := v.(type) {
	case int:
		return n
	case float64:
		return int(n)
	}
	return def
}

func propString(props map[string]interface{}, key, def string) string {
	v, ok := props[key]
	if !ok {
		return def
	}
	if s, ok := v.(string); ok {
		return s
	}
	return def
}

func propStringSlice(props map[string]interface{}, key string) []string {
	v, ok := props[key]
	if !ok {
		return nil
	}
	raw, ok := v.([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func propFloat64Slice(props map[string]interface{}, key string) []float64 {
	v, ok := props[key]
	if !ok {
		return nil
	}
	raw, ok := v.([]interface{})
	if !ok {
		return nil
	}
	out := make([]float64, 0, len(raw))
	for _, item := range raw {
		switch n := item.(type) {
		case float64:
			out = append(out, n)
		case int:
			out = append(out, float64(n))
		}
	}
	return out
}

// propCutoff resolves the "cutoff"/"tolerance" properties into a
// node.Cutoff, defaulting to node.Exact() when absent.
func propCutoff(nodeName string, props map[string]interface{}) (node.Cutoff, error) {
	kind := propString(props, "cutoff", "exact")
	tol := propFloat64(props, "tolerance", 0)
	switch kind {
	case "exact":
		return node.Exact(), nil
	case "absolute":
		return node.Absolute(tol), nil
	case "relative":
		return node.Relative(tol), nil
	case "always":
		return node.Always(), nil
	case "never":
		return node.Never(), nil
	default:
		return node.Cutoff{}, &PropertyError{Node: nodeName, Property: "cutoff", Reason: "must be one of exact|absolute|relative|always|never"}
	}
}

func scalarHandle(nodeName string, upstreams []ResolvedUpstream, i int) (node.ScalarHandle, error) {
	if i >= len(upstreams) {
		return nil, &NamedInputError{Node: nodeName, Role: "<positional>"}
	}
	h, ok := upstreams[i].Node.(node.ScalarHandle)
	if !ok {
		return nil, &PropertyError{Node: nodeName, Property: "upstreams", Reason: "upstream does not produce a scalar value"}
	}
	return h, nil
}

func vectorHandle(nodeName string, upstreams []ResolvedUpstream, i int) (node.VectorHandle, error) {
	if i >= len(upstreams) {
		return nil, &NamedInputError{Node: nodeName, Role: "<positional>"}
	}
	h, ok := upstreams[i].Node.(node.VectorHandle)
	if !ok {
		return nil, &PropertyError{Node: nodeName, Property: "upstreams", Reason: "upstream does not produce a vector value"}
	}
	return h, nil
}

func boolHandle(nodeName string, upstreams []ResolvedUpstream, i int) (node.BoolHandle, error) {
	if i >= len(upstreams) {
		return nil, &NamedInputError{Node: nodeName, Role: "<positional>"}
	}
	h, ok := upstreams[i].Node.(node.BoolHandle)
	if !ok {
		return nil, &PropertyError{Node: nodeName, Property: "upstreams", Reason: "upstream does not produce a boolean value"}
	}
	return h, nil
}
