// Package prototype loads tile module descriptions and turns them into
// adjacency rules.
//
// A prototype set is a map from module id to a record describing the mesh
// and, for each of the six cube faces, which module ids may sit next to it.
// Neighbor lists are ordered +x, -z, -x, +z, +y, -y, the order of
// space.Directions. JSON documents parse as-is; YAML is accepted too.
//
//	set, err := prototype.Load("modules.json")
//	if err != nil { ... }
//	r := set.Builder(rule.NewWeighted[string, *state.SetState[string]](set.Weights())).Build()
//
// Every referenced id must be defined in the same set. Unknown fields are
// rejected so typos surface early.
package prototype
