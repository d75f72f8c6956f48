package cli

import (
	"fmt"
	"io"

	"github.com/marcelocantos/spigot/internal/eval"
)

// RunList lists the registered functions, methods and constants.
func RunList(env *eval.Env, w io.Writer) int {
	for _, name := range env.Funcs() {
		fmt.Fprintf(w, "%-20s function\n", name)
	}
	for _, name := range env.Methods() {
		fmt.Fprintf(w, "%-20s method\n", "."+name)
	}
	for _, name := range env.Consts() {
		v, _ := env.LookupConst(name)
		fmt.Fprintf(w, "%-20s constant = %s\n", name, eval.Format(v))
	}
	return ExitOK
}
