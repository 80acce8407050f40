// Package graphdef loads a declarative GraphDefinition (JSON or YAML),
// expands its templates, and compiles it into a running engine.Engine
// backed by a topology.Topology.
//
// Grounded on lvlath's builder package for the instantiate-in-
// dependency-order idiom (same determinism requirement the topology
// builder itself has to satisfy), generalized here to cover named and
// positional upstream resolution, template expansion, and a pluggable
// node-type registry. The wire format itself borrows gopkg.in/yaml.v3
// struct tags in addition to encoding/json so a deployment may author
// either format, matching AleutianLocal's broader use of yaml.v3 for
// config files.
package graphdef
