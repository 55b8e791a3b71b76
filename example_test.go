package calc_test

import (
	"fmt"
	"math/big"

	"github.com/calc-shell/calc"
)

func Example() {
	c := calc.NewCalculator()
	c.Assign("x", big.NewFloat(5))
	e, err := calc.ParseString("2 * x + 4")
	if err != nil {
		panic(err)
	}
	r, err := c.Evaluate(e)
	if err != nil {
		panic(err)
	}
	fmt.Println(r)
	// Output: 14
}

func ExampleCalculator_Clear() {
	c := calc.NewCalculator()
	c.Assign("budget", big.NewFloat(250))
	c.Assign("scratch", big.NewFloat(1))
	if err := c.AddPreserved("budget"); err != nil {
		panic(err)
	}
	c.Clear()
	fmt.Println(c.Lookup("budget"))
	fmt.Println(c.Lookup("scratch") == nil)
	// Output:
	// 250
	// true
}
