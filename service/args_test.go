package service

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"go-tabletop/dto"
)

func TestArgHelpers(t *testing.T) {
	args := []any{"c1", float64(2.5), []any{float64(1), float64(2)}, map[string]any{"ID": "s1", "x": float64(4)}}

	if s, err := stringArg(args, 0); err != nil || s != "c1" {
		t.Fatalf("stringArg = %q, %v", s, err)
	}
	if f, err := numberArg(args, 1); err != nil || f != 2.5 {
		t.Fatalf("numberArg = %v, %v", f, err)
	}
	if vals, err := numbersArg(args, 2); err != nil || !reflect.DeepEqual(vals, []float64{1, 2}) {
		t.Fatalf("numbersArg = %v, %v", vals, err)
	}
	var stack dto.CardStackInitArgs
	if err := decodeArg(args, 3, &stack); err != nil || stack.ID != "s1" || stack.X != 4 {
		t.Fatalf("decodeArg = %+v, %v", stack, err)
	}

	bad := []struct {
		name string
		err  error
	}{
		{"string from number", func() error { _, err := stringArg(args, 1); return err }()},
		{"missing", func() error { _, err := stringArg(args, 9); return err }()},
		{"number from string", func() error { _, err := numberArg(args, 0); return err }()},
		{"nan", func() error { _, err := numberArg([]any{math.NaN()}, 0); return err }()},
		{"mixed array", func() error { _, err := numbersArg([]any{[]any{float64(1), "x"}}, 0); return err }()},
		{"object from string", func() error { return decodeArg(args, 0, &stack) }()},
	}
	for _, tt := range bad {
		if !errors.Is(tt.err, ErrInvalidArgs) {
			t.Errorf("%s: err = %v, want ErrInvalidArgs", tt.name, tt.err)
		}
	}
}
