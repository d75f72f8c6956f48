package stage

import (
	"fmt"
	"strings"
)

// Scan splits pipeline source text into the initial expression and its
// ordered stages. A stage begins at a "=>" token found at bracket depth
// zero outside string literals; an operator sigil immediately after the
// arrow selects the operator, otherwise the stage is Basic. Everything
// before the first arrow is the initial expression.
//
// Operand interiors are opaque at this level: Scan only tracks enough
// structure (brackets, strings) to know which arrows are stage
// boundaries.
func Scan(src string) (string, []Stage, error) {
	if strings.TrimSpace(src) == "" {
		return "", nil, fmt.Errorf("empty pipeline")
	}

	var bounds []boundary

	line, col := 1, 1
	depth := 0
	var strStart Span
	inString := false
	escaped := false

	i := 0
	for i < len(src) {
		c := src[i]
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
			strStart = Span{line, col}
		case c == '(' || c == '[' || c == '{':
			depth++
		case c == ')' || c == ']' || c == '}':
			depth--
			if depth < 0 {
				return "", nil, fmt.Errorf("%d:%d: unbalanced %q", line, col, string(c))
			}
		case depth == 0 && c == '=' && i+1 < len(src) && src[i+1] == '>':
			b := boundary{op: Basic, span: Span{line, col}, arrow: i}
			i += 2
			col += 2
			if i < len(src) {
				if op, ok := operatorForSigil(src[i]); ok {
					b.op = op
					i++
					col++
				}
			}
			b.start = i
			bounds = append(bounds, b)
			continue
		}
		if c == '\n' {
			line++
			col = 1
		} else {
			col++
		}
		i++
	}
	if inString {
		return "", nil, fmt.Errorf("%s: unterminated string", strStart)
	}
	if depth != 0 {
		return "", nil, fmt.Errorf("unbalanced parentheses in pipeline")
	}

	end := len(src)
	initialEnd := end
	if len(bounds) > 0 {
		initialEnd = bounds[0].arrow
	}
	initial := strings.TrimSpace(src[:initialEnd])
	if initial == "" {
		return "", nil, fmt.Errorf("1:1: missing initial expression")
	}

	stages := make([]Stage, 0, len(bounds))
	for n, b := range bounds {
		opEnd := end
		if n+1 < len(bounds) {
			opEnd = bounds[n+1].arrow
		}
		operand := strings.TrimSpace(src[b.start:opEnd])
		if operand == "" {
			return "", nil, fmt.Errorf("%s: stage %s has no operand", b.span, b.op.Token())
		}
		stages = append(stages, Stage{Op: b.op, Operand: operand, Span: b.span})
	}
	return initial, stages, nil
}

// boundary marks one "=>" token found during the scan.
type boundary struct {
	op    Operator
	span  Span
	arrow int // byte offset of "=>"
	start int // operand start offset (after the sigil, if any)
}
