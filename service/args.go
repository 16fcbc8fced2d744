package service

import (
	"fmt"
	"math"

	"github.com/mitchellh/mapstructure"
)

// Positional argument helpers. JSON numbers arrive as float64 and objects as
// map[string]any; anything else is ErrInvalidArgs.

func stringArg(args []any, i int) (string, error) {
	if i >= len(args) {
		return "", fmt.Errorf("%w: missing argument %d", ErrInvalidArgs, i)
	}
	s, ok := args[i].(string)
	if !ok {
		return "", fmt.Errorf("%w: argument %d is %T, want string", ErrInvalidArgs, i, args[i])
	}
	return s, nil
}

func numberArg(args []any, i int) (float64, error) {
	if i >= len(args) {
		return 0, fmt.Errorf("%w: missing argument %d", ErrInvalidArgs, i)
	}
	f, ok := toNumber(args[i])
	if !ok {
		return 0, fmt.Errorf("%w: argument %d is %T, want number", ErrInvalidArgs, i, args[i])
	}
	return f, nil
}

func numbersArg(args []any, i int) ([]float64, error) {
	if i >= len(args) {
		return nil, fmt.Errorf("%w: missing argument %d", ErrInvalidArgs, i)
	}
	raw, ok := args[i].([]any)
	if !ok {
		if vals, ok := args[i].([]float64); ok {
			return vals, nil
		}
		return nil, fmt.Errorf("%w: argument %d is %T, want array", ErrInvalidArgs, i, args[i])
	}
	vals := make([]float64, 0, len(raw))
	for j, v := range raw {
		f, ok := toNumber(v)
		if !ok {
			return nil, fmt.Errorf("%w: argument %d[%d] is %T, want number", ErrInvalidArgs, i, j, v)
		}
		vals = append(vals, f)
	}
	return vals, nil
}

// decodeArg decodes an object or array argument into out with mapstructure.
func decodeArg(args []any, i int, out any) error {
	if i >= len(args) {
		return fmt.Errorf("%w: missing argument %d", ErrInvalidArgs, i)
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  out,
		TagName: "json",
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(args[i]); err != nil {
		return fmt.Errorf("%w: argument %d: %v", ErrInvalidArgs, i, err)
	}
	return nil
}

func toNumber(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
