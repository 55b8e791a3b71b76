//go:build go1.18
// +build go1.18

package calc_test

import (
	"testing"

	"github.com/calc-shell/calc"
)

func FuzzEval(f *testing.F) {
	f.Add("1 + 2 * 3")
	f.Add("sin(pi/2) ^ 2")
	f.Add("|5 - e| + 3!")
	f.Add("log(8, 2) / sqrt(2)")
	f.Add("1 / 0")
	f.Fuzz(func(t *testing.T, src string) {
		r, err := calc.EvalString(src)
		if err != nil {
			return
		}
		if r == nil {
			t.Errorf("%q evaluated to nil without error", src)
		}
	})
}
