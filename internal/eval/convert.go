package eval

import (
	"context"
	"fmt"

	"github.com/spf13/cast"

	"github.com/marcelocantos/spigot/internal/expr"
)

// evalConv handles T::from and T::try_from. A failed try_from is not a
// fault: it surfaces as the result container's error value, for later
// and_then/map/try stages to handle.
func evalConv(ctx context.Context, n expr.Conv, env *Env, fr *frame) (Value, error) {
	v, err := evaluate(ctx, n.Inner, env, fr)
	if err != nil {
		return nil, err
	}
	out, err := convert(v, n.Type)
	if n.TryFrom {
		if err != nil {
			return Err(err.Error()), nil
		}
		return Ok(out), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s::from: %w", n.Type, err)
	}
	return out, nil
}

// convert coerces a value to the named target type. Type names accept
// both the capitalized and the Rust-flavored primitive spellings.
func convert(v Value, typ string) (Value, error) {
	v = Deref(v)
	if isContainer(v) {
		return nil, fmt.Errorf("cannot convert container value %s", Format(v))
	}
	switch typ {
	case "Int", "int", "i8", "i16", "i32", "i64", "isize", "u8", "u16", "u32", "u64", "usize":
		return cast.ToInt64E(v)
	case "Float", "float", "f32", "f64":
		return cast.ToFloat64E(v)
	case "String", "str", "string":
		return cast.ToStringE(v)
	case "Bool", "bool":
		return cast.ToBoolE(v)
	default:
		return nil, fmt.Errorf("unknown conversion target %q", typ)
	}
}
