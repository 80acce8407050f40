package graphdef_test

import (
	"strings"
	"testing"

	"github.com/katalvlaran/stabilize/graphdef"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlDoc = `
name: curve
version: "1"
nodes:
  - name: A
    type: scalar_source
    properties:
      initial_value: 2.0
  - name: B
    type: scalar_source
    properties:
      initial_value: 3.0
  - name: Sum
    type: sum
    dependencies: [A, B]
`

const jsonDoc = `{
  "name": "curve",
  "version": "1",
  "nodes": [
    {"name": "A", "type": "scalar_source", "properties": {"initial_value": 2.0}},
    {"name": "B", "type": "scalar_source", "properties": {"initial_value": 3.0}},
    {"name": "Sum", "type": "sum", "dependencies": ["A", "B"]}
  ]
}`

func TestLoadYAMLAndJSON_CompileToIdenticalTopoIndices(t *testing.T) {
	yamlDef, err := graphdef.LoadYAML(strings.NewReader(yamlDoc))
	require.NoError(t, err)
	jsonDef, err := graphdef.LoadJSON(strings.NewReader(jsonDoc))
	require.NoError(t, err)

	_, yamlTopo, err := graphdef.Compile(yamlDef, graphdef.NewRegistry())
	require.NoError(t, err)
	_, jsonTopo, err := graphdef.Compile(jsonDef, graphdef.NewRegistry())
	require.NoError(t, err)

	for _, name := range []string{"A", "B", "Sum"} {
		iy, ok := yamlTopo.TopoIndex(name)
		require.True(t, ok)
		ij, ok := jsonTopo.TopoIndex(name)
		require.True(t, ok)
		assert.Equal(t, iy, ij, "topoIndex for %s must match across yaml/json compiles", name)
	}
}
