package graphdef_test

import (
	"testing"

	"github.com/katalvlaran/stabilize/graphdef"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pairTemplateDef() *graphdef.GraphDefinition {
	return &graphdef.GraphDefinition{
		Name: "fx-pairs", Version: "1",
		Templates: []graphdef.TemplateDef{
			{
				Name: "fx_pair",
				Nodes: []graphdef.NodeDef{
					{Name: "{{pair}}.Bid", Type: "scalar_source", Properties: map[string]interface{}{"initial_value": 0.0}},
					{Name: "{{pair}}.Ask", Type: "scalar_source", Properties: map[string]interface{}{"initial_value": 0.0}},
					{
						Name: "{{pair}}.Spread", Type: "diff",
						Inputs: map[string]string{"a": "{{pair}}.Ask", "b": "{{pair}}.Bid"},
					},
				},
			},
		},
		Nodes: []graphdef.NodeDef{
			{Name: "eurusd", Type: "template", Properties: map[string]interface{}{"template": "fx_pair", "pair": "EURUSD"}},
			{Name: "usdjpy", Type: "template", Properties: map[string]interface{}{"template": "fx_pair", "pair": "USDJPY"}},
		},
	}
}

func TestExpandTemplates_TwoInstantiationsNoCrossTalk(t *testing.T) {
	def := pairTemplateDef()
	expanded, err := graphdef.ExpandTemplates(def)
	require.NoError(t, err)
	require.Len(t, expanded, 6)

	names := make(map[string]bool, len(expanded))
	for _, n := range expanded {
		names[n.Name] = true
	}
	for _, want := range []string{"EURUSD.Bid", "EURUSD.Ask", "EURUSD.Spread", "USDJPY.Bid", "USDJPY.Ask", "USDJPY.Spread"} {
		assert.True(t, names[want], "expected expanded node %q", want)
	}
}

func TestExpandTemplates_SelfReferentialCycleRejected(t *testing.T) {
	def := &graphdef.GraphDefinition{
		Templates: []graphdef.TemplateDef{
			{
				Name: "recursive",
				Nodes: []graphdef.NodeDef{
					{Name: "{{x}}.Inner", Type: "template", Properties: map[string]interface{}{"template": "recursive", "x": "{{x}}"}},
				},
			},
		},
		Nodes: []graphdef.NodeDef{
			{Name: "root", Type: "template", Properties: map[string]interface{}{"template": "recursive", "x": "A"}},
		},
	}
	_, err := graphdef.ExpandTemplates(def)
	assert.ErrorIs(t, err, graphdef.ErrTemplateCycle)
}

func TestCompile_CompiledTemplateGraphStabilizes(t *testing.T) {
	def := pairTemplateDef()
	eng, topo, err := graphdef.Compile(def, graphdef.NewRegistry())
	require.NoError(t, err)
	require.Equal(t, 6, topo.NodeCount())
	count := eng.Stabilize()
	assert.Equal(t, 6, count)
}
