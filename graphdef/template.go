package graphdef

import (
	"fmt"
	"strings"
)

// ExpandTemplates resolves every type=="template" NodeDef in def.Nodes
// into its substituted template body, recursively (a template body may
// itself contain type=="template" nodes), and returns the flattened list
// of plain NodeDefs ready for the instantiation phase.
//
// Substitution is purely textual {{var}} replacement over the node name,
// input/dependency references, and string-valued properties; nesting
// terminates because templates form a DAG — a template that (directly or
// transitively) references itself is reported as ErrTemplateCycle.
func ExpandTemplates(def *GraphDefinition) ([]NodeDef, error) {
	templates := make(map[string]TemplateDef, len(def.Templates))
	for _, t := range def.Templates {
		templates[t.Name] = t
	}

	var out []NodeDef
	for _, n := range def.Nodes {
		expanded, err := expandNode(n, templates, map[string]bool{})
		if err != nil {
			return nil, err
		}
		out = append(out, expanded...)
	}
	return out, nil
}

func expandNode(n NodeDef, templates map[string]TemplateDef, stack map[string]bool) ([]NodeDef, error) {
	if n.Type != "template" {
		return []NodeDef{n}, nil
	}

	templateName, ok := n.templateProperty()
	if !ok {
		return nil, &PropertyError{Node: n.Name, Property: "template", Reason: "required string property missing"}
	}
	if stack[templateName] {
		return nil, fmt.Errorf("%w: %q", ErrTemplateCycle, templateName)
	}
	tmpl, ok := templates[templateName]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrTemplateNotFound, templateName)
	}

	vars := make(map[string]string, len(n.Properties))
	for k, v := range n.Properties {
		if k == "template" {
			continue
		}
		vars[k] = fmt.Sprint(v)
	}

	nextStack := make(map[string]bool, len(stack)+1)
	for k := range stack {
		nextStack[k] = true
	}
	nextStack[templateName] = true

	var out []NodeDef
	for _, body := range tmpl.Nodes {
		substituted := substituteNode(body, vars)
		expanded, err := expandNode(substituted, templates, nextStack)
		if err != nil {
			return nil, err
		}
		out = append(out, expanded...)
	}
	return out, nil
}

// substituteNode returns a copy of n with {{var}} markers in its name,
// input references, dependency list, and string-valued properties
// replaced per vars. Non-string property values pass through unchanged.
func substituteNode(n NodeDef, vars map[string]string) NodeDef {
	out := NodeDef{
		Name:        substitute(n.Name, vars),
		Type:        n.Type,
		Description: n.Description,
	}

	if n.Inputs != nil {
		out.Inputs = make(map[string]string, len(n.Inputs))
		for role, upstream := range n.Inputs {
			out.Inputs[role] = substitute(upstream, vars)
		}
	}
	if n.Dependencies != nil {
		out.Dependencies = make([]string, len(n.Dependencies))
		for i, dep := range n.Dependencies {
			out.Dependencies[i] = substitute(dep, vars)
		}
	}
	if n.Properties != nil {
		out.Properties = make(map[string]interface{}, len(n.Properties))
		for k, v := range n.Properties {
			if s, ok := v.(string); ok {
				out.Properties[k] = substitute(s, vars)
			} else {
				out.Properties[k] = v
			}
		}
	}
	return out
}

func substitute(s string, vars map[string]string) string {
	if len(vars) == 0 || !strings.Contains(s, "{{") {
		return s
	}
	for k, v := range vars {
		s = strings.ReplaceAll(s, "{{"+k+"}}", v)
	}
	return s
}
