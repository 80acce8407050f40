package graphdef

// GraphDefinition is the top-level declarative document consumed by
// Compile. Field tags cover both encoding/json (for .json files) and
// gopkg.in/yaml.v3 (for .yml/.yaml files) so LoadFile can sniff the
// extension and use either unmarshaler over the same Go type.
type GraphDefinition struct {
	Name        string         `json:"name" yaml:"name"`
	Version     string         `json:"version" yaml:"version"`
	Epoch       int            `json:"epoch,omitempty" yaml:"epoch,omitempty"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Templates   []TemplateDef  `json:"templates,omitempty" yaml:"templates,omitempty"`
	Nodes       []NodeDef      `json:"nodes" yaml:"nodes"`
}

// TemplateDef is a reusable named subgraph: a list of NodeDef bodies in
// which {{var}} markers are substituted at expansion time.
type TemplateDef struct {
	Name  string    `json:"name" yaml:"name"`
	Nodes []NodeDef `json:"nodes" yaml:"nodes"`
}

// NodeDef declares one node (or, with Type == "template", one template
// instantiation) in either raw or template-body form.
type NodeDef struct {
	Name         string                 `json:"name" yaml:"name"`
	Type         string                 `json:"type" yaml:"type"`
	Description  string                 `json:"description,omitempty" yaml:"description,omitempty"`
	Inputs       map[string]string      `json:"inputs,omitempty" yaml:"inputs,omitempty"`
	Dependencies []string               `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
	Properties   map[string]interface{} `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// templateProperty reads the "template" property that selects which
// TemplateDef a type=="template" NodeDef expands.
func (n NodeDef) templateProperty() (string, bool) {
	if n.Properties == nil {
		return "", false
	}
	v, ok := n.Properties["template"]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}
