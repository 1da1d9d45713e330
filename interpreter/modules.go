package interpreter

import "nilan/object"

// resolveModule implements `import "name"` for the tree-walking
// interpreter by delegating to the shared builtin module registry the vm
// also uses, so `import` behaves identically under either execution
// strategy.
func resolveModule(path string) (*object.Module, *object.Exception) {
	return object.ResolveModule(path)
}
