package cli

import (
	"fmt"
	"io"
	"strings"
)

// Source resolves the pipeline text from command arguments. A single
// "-" argument reads the pipeline from r instead.
func Source(r io.Reader, args []string) (string, error) {
	src := strings.Join(args, " ")
	if strings.TrimSpace(src) != "-" {
		return src, nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read pipeline from stdin: %w", err)
	}
	return string(data), nil
}
