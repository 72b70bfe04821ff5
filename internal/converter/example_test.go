package converter_test

import (
	"fmt"

	"github.com/woozymasta/coordsuite/internal/converter"
	"github.com/woozymasta/coordsuite/internal/geo"
)

func ExampleConverter_Convert() {
	c := converter.New(nil)

	res, err := c.Convert("41.651285, -0.869147\nnot,a,number\n41.65, -0.87", converter.Options{})
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(res.Detection)
	for _, o := range res.Outcomes {
		if o.OK() {
			fmt.Printf("%d: %s\n", o.Line, o.Record.UTM)
		} else {
			fmt.Printf("%d: %s %s\n", o.Line, o.Err.Kind, o.Err.Message)
		}
	}

	// Output:
	// latlon/comma
	// 1: 30N 677437.23 4613253.34
	// 2: TokenCountMismatch expected 2 values, found 3
	// 3: 30N 677369.72 4613108.90
}

func ExampleFixedZone() {
	c := converter.New(nil)

	opts := converter.Options{Zone: converter.FixedZone(30, geo.North)}
	res, err := c.Convert("676000, 4610000", opts)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(res.Direction)
	fmt.Println(res.Records()[0].Geographic)

	// Output:
	// utm-to-geo
	// 41.622320, -0.887352
}
