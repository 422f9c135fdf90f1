package prototype

import _ "embed"

// modulesJSON is the nine-module demo set: eight corner and wall pieces
// (p0..p7) on a single layer, and the empty module p-1 between layers.
//
//go:embed modules.json
var modulesJSON []byte

// Bundled parses the embedded demo set.
func Bundled() (*Set, error) {
	return Parse(modulesJSON)
}

// BundledJSON returns a copy of the embedded demo document.
func BundledJSON() []byte {
	return append([]byte(nil), modulesJSON...)
}
