package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/marcelocantos/spigot/internal/trace"
)

// RunTrace handles the --trace subcommand.
func RunTrace(w io.Writer, logPath string, args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(w, "usage: spigot --trace <verify|tail>")
		return ExitCompile
	}

	switch args[0] {
	case "verify":
		if err := trace.Verify(logPath); err != nil {
			fmt.Fprintf(w, "trace verification FAILED: %v\n", err)
			return ExitCompile
		}
		fmt.Fprintln(w, "trace log integrity verified")
		return ExitOK

	case "show", "tail":
		entries, err := trace.Tail(logPath, 20)
		if err != nil {
			fmt.Fprintf(w, "spigot trace: %v\n", err)
			return ExitCompile
		}
		if len(entries) == 0 {
			fmt.Fprintln(w, "no trace entries")
			return ExitOK
		}
		for _, e := range entries {
			data, _ := json.MarshalIndent(e, "", "  ")
			fmt.Fprintf(w, "%s\n", data)
		}
		return ExitOK

	default:
		fmt.Fprintf(w, "spigot trace: unknown subcommand %q\n", args[0])
		return ExitCompile
	}
}
