package cli

import (
	"fmt"
	"io"
)

// RunHelp shows general usage.
func RunHelp(w io.Writer) int {
	fmt.Fprintln(w, "spigot — pipeline expression compiler")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "usage:")
	fmt.Fprintln(w, "  spigot --compile <pipeline>       compile and print the composed expression")
	fmt.Fprintln(w, "  spigot --eval <pipeline>          compile and evaluate a pipeline")
	fmt.Fprintln(w, "                                    (a lone - reads the pipeline from stdin)")
	fmt.Fprintln(w, "  spigot --run <name>               evaluate a pipeline from config")
	fmt.Fprintln(w, "  spigot --list                     list functions, methods and constants")
	fmt.Fprintln(w, "  spigot --trace <verify|tail>      trace log operations")
	fmt.Fprintln(w, "  spigot --help                     show this help")
	fmt.Fprintln(w, "  spigot --version                  show version")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "flags:")
	fmt.Fprintln(w, "  --config <path>                   read config from <path>")
	fmt.Fprintln(w, "  --force                           bypass config lint rules")
	fmt.Fprintln(w, "  --verbose                         enable debug log output")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "stage operators:")
	fmt.Fprintln(w, "  =>   apply the operand to the value")
	fmt.Fprintln(w, "  =>&  and_then on an optional/result value")
	fmt.Fprintln(w, "  =>@  map on an optional/result value")
	fmt.Fprintln(w, "  =>?  unwrap or propagate the absent case")
	fmt.Fprintln(w, "  =>*  unwrap, faulting on the absent case")
	fmt.Fprintln(w, "  =>+  continue with a duplicate of the value")
	fmt.Fprintln(w, "  =>#  side effect; the value passes through")
	fmt.Fprintln(w, "  =>$  side effect with a mutable handle")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "operands: function, function(args), .method(args), |x| body,")
	fmt.Fprintln(w, "          (Type), (Type?), (as Type), ... (no-op)")
	fmt.Fprintln(w, "use () inside an argument list to place the piped value")
	return ExitOK
}
