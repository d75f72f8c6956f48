package operand

import (
	"fmt"
	"strings"
)

// splitArgs splits the interior of an argument list on top-level commas.
// Nested brackets and string literals are respected; each argument is
// returned trimmed. The empty interior yields no arguments.
func splitArgs(s string) ([]string, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	var args []string
	depth := 0
	inString := false
	escaped := false
	start := 0

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case inString:
			if escaped {
				escaped = false
			} else if c == '\\' {
				escaped = true
			} else if c == '"' {
				inString = false
			}
		case c == '"':
			inString = true
		case c == '(' || c == '[' || c == '{':
			depth++
		case c == ')' || c == ']' || c == '}':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("unbalanced %q in argument list", string(c))
			}
		case c == ',' && depth == 0:
			args = append(args, strings.TrimSpace(s[start:i]))
			start = i + 1
		}
	}
	if inString {
		return nil, fmt.Errorf("unterminated string in argument list")
	}
	if depth != 0 {
		return nil, fmt.Errorf("unbalanced parentheses in argument list")
	}
	args = append(args, strings.TrimSpace(s[start:]))

	for i, a := range args {
		if a == "" {
			return nil, fmt.Errorf("empty argument at position %d", i)
		}
	}
	return args, nil
}

// matchedParen returns the index of the ')' matching the '(' at s[0],
// or -1 if the parentheses are unbalanced.
func matchedParen(s string) int {
	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case inString:
			if escaped {
				escaped = false
			} else if c == '\\' {
				escaped = true
			} else if c == '"' {
				inString = false
			}
		case c == '"':
			inString = true
		case c == '(':
			depth++
		case c == ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
