package operand

import (
	"fmt"
	"strings"
)

// Classify determines the shape of one stage's operand text. The rules
// are checked in priority order:
//
//  1. "..." exactly is the no-op.
//  2. A leading '.' is a method call on the threaded value.
//  3. A parenthesized form is a type conversion: (T), (T?), (as T).
//  4. A leading '|' is a closure literal, captured verbatim.
//  5. A bare path is a callable taking the threaded value as its sole
//     argument.
//  6. A path followed by an argument list is a call; the list is
//     scanned once for the placeholder token "()".
//
// Anything else is a malformed operand.
func Classify(text string) (Shape, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Shape{}, fmt.Errorf("empty operand")
	}

	if text == "..." {
		return Shape{Kind: KindNoOp}, nil
	}

	switch text[0] {
	case '.':
		return classifyMethod(text[1:])
	case '(':
		return classifyConversion(text)
	case '|':
		return classifyClosure(text)
	}

	name, rest := scanPath(text)
	if name == "" {
		return Shape{}, fmt.Errorf("unrecognized operand %q", text)
	}
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return Shape{Kind: KindBareCall, Name: name}, nil
	}
	if rest[0] != '(' {
		return Shape{}, fmt.Errorf("unexpected text after %q: %q", name, rest)
	}
	end := matchedParen(rest)
	if end < 0 {
		return Shape{}, fmt.Errorf("unbalanced parentheses in call to %q", name)
	}
	if trailing := strings.TrimSpace(rest[end+1:]); trailing != "" {
		return Shape{}, fmt.Errorf("unexpected text after call to %q: %q", name, trailing)
	}
	args, err := splitArgs(rest[1:end])
	if err != nil {
		return Shape{}, fmt.Errorf("call to %q: %w", name, err)
	}
	sh := Shape{Kind: KindCall, Name: name, Args: args}
	for _, a := range args {
		if IsPlaceholder(a) {
			sh.HasPlaceholder = true
			break
		}
	}
	return sh, nil
}

// classifyMethod parses the text after the leading dot. A bare name is
// a zero-argument method call; with parentheses, the contained
// arguments pass through unmodified. Placeholders are not recognized
// here: the threaded value is always the receiver.
func classifyMethod(rest string) (Shape, error) {
	name, tail := scanIdent(rest)
	if name == "" {
		return Shape{}, fmt.Errorf("method call needs a name after '.'")
	}
	tail = strings.TrimSpace(tail)
	if tail == "" {
		return Shape{Kind: KindMethod, Name: name}, nil
	}
	if tail[0] != '(' {
		return Shape{}, fmt.Errorf("unexpected text after method %q: %q", name, tail)
	}
	end := matchedParen(tail)
	if end < 0 {
		return Shape{}, fmt.Errorf("unbalanced parentheses in method %q", name)
	}
	if trailing := strings.TrimSpace(tail[end+1:]); trailing != "" {
		return Shape{}, fmt.Errorf("unexpected text after method %q: %q", name, trailing)
	}
	args, err := splitArgs(tail[1:end])
	if err != nil {
		return Shape{}, fmt.Errorf("method %q: %w", name, err)
	}
	return Shape{Kind: KindMethod, Name: name, Args: args}, nil
}

// classifyConversion parses (T), (T?) and (as T).
func classifyConversion(text string) (Shape, error) {
	end := matchedParen(text)
	if end < 0 {
		return Shape{}, fmt.Errorf("unbalanced parentheses in conversion")
	}
	if trailing := strings.TrimSpace(text[end+1:]); trailing != "" {
		return Shape{}, fmt.Errorf("unexpected text after conversion: %q", trailing)
	}
	inner := strings.TrimSpace(text[1:end])
	if inner == "" {
		return Shape{}, fmt.Errorf("empty conversion")
	}

	// The "as" keyword claims the operand even when what follows is
	// not a valid target, so "(as )" is an error, not a From of "as".
	if rest, ok := strings.CutPrefix(inner, "as"); ok && (rest == "" || rest[0] == ' ' || rest[0] == '\t') {
		ty := strings.TrimSpace(rest)
		if ty == "" {
			return Shape{}, fmt.Errorf("cast is missing a target type")
		}
		if !isPath(ty) || ty == "as" {
			return Shape{}, fmt.Errorf("bad cast target %q", ty)
		}
		return Shape{Kind: KindConvert, Name: ty, Conv: ConvCast}, nil
	}

	conv := ConvFrom
	ty := inner
	if strings.HasSuffix(inner, "?") {
		conv = ConvTryFrom
		ty = strings.TrimSpace(inner[:len(inner)-1])
	}
	if !isPath(ty) || ty == "as" {
		return Shape{}, fmt.Errorf("bad conversion target %q", ty)
	}
	return Shape{Kind: KindConvert, Name: ty, Conv: conv}, nil
}

// classifyClosure captures a closure literal verbatim. Only the
// parameter head is validated; the body is opaque.
func classifyClosure(text string) (Shape, error) {
	// Find the closing '|' of the parameter list.
	pipe := strings.IndexByte(text[1:], '|')
	if pipe < 0 {
		return Shape{}, fmt.Errorf("closure is missing the closing '|'")
	}
	if strings.TrimSpace(text[pipe+2:]) == "" {
		return Shape{}, fmt.Errorf("closure has no body")
	}
	return Shape{Kind: KindClosure, Closure: text}, nil
}

// scanPath consumes a callable path (identifiers joined by "::") and
// returns it with the remaining text.
func scanPath(s string) (string, string) {
	i := 0
	for i < len(s) {
		if isIdentByte(s[i], i > 0 && s[i-1] != ':') {
			i++
			continue
		}
		if s[i] == ':' && i+1 < len(s) && s[i+1] == ':' {
			i += 2
			continue
		}
		break
	}
	path := s[:i]
	if path == "" || !isPath(path) {
		return "", s
	}
	return path, s[i:]
}

// scanIdent consumes a single identifier.
func scanIdent(s string) (string, string) {
	i := 0
	for i < len(s) && isIdentByte(s[i], i > 0) {
		i++
	}
	return s[:i], s[i:]
}

// isPath reports whether s is a well-formed callable or type path.
func isPath(s string) bool {
	for _, seg := range strings.Split(s, "::") {
		if !isIdent(seg) {
			return false
		}
	}
	return true
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isIdentByte(s[i], i > 0) {
			return false
		}
	}
	return true
}

func isIdentByte(c byte, interior bool) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_':
		return true
	case c >= '0' && c <= '9':
		return interior
	default:
		return false
	}
}
