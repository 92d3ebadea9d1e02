package gain_test

import (
	"fmt"

	"github.com/cwbudde/algo-spatial/spatial/gain"
)

func ExampleNew() {
	m, err := gain.New(gain.KindRealistic, gain.WithPower(2))
	if err != nil {
		fmt.Println("error")
		return
	}

	for _, d := range []float64{0.5, 2, 10} {
		fmt.Printf("d=%g gain=%.4f\n", d, m.Calculate(d))
	}
	// Output:
	// d=0.5 gain=1.0000
	// d=2 gain=0.2500
	// d=10 gain=0.0100
}
