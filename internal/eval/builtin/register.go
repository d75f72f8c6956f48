// Package builtin provides the standard function and method set for
// pipeline evaluation.
package builtin

import "github.com/marcelocantos/spigot/internal/eval"

// RegisterAll adds every built-in function, method and constant to the
// environment.
func RegisterAll(env *eval.Env) {
	registerCore(env)
	registerStrings(env)
	registerNumbers(env)
}
