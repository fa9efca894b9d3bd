package detrend_test

import (
	"fmt"

	"github.com/cwbudde/algo-tremor/dsp/detrend"
)

func ExampleMovingAverage() {
	out, _ := detrend.MovingAverage([]float64{2, 4, 6, 8}, 2)
	fmt.Println(out)
	// Output:
	// [0 1 1 1]
}
