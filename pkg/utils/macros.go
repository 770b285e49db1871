package utils

import "golang.org/x/exp/constraints"

// ZeroAdjust returns 1 when v is 0, otherwise v. Bank registers that can
// never select bank 0 use this.
func ZeroAdjust[T constraints.Unsigned](v T) T {
	if v == 0 {
		return 1
	}
	return v
}
