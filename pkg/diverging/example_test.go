package diverging_test

import (
	"fmt"

	"github.com/matzehuels/butterfly/pkg/chart"
	"github.com/matzehuels/butterfly/pkg/diverging"
)

func ExampleComputeDomain() {
	records := []chart.Record{
		{Category: "小于50w", Left: 14, Right: 15},
		{Category: "50w-100w", Left: 12, Right: 13},
	}
	fmt.Println(diverging.ComputeDomain(records))
	// Output:
	// 17
}

func ExampleSignRecords() {
	for _, tr := range diverging.SignRecords([]chart.Record{{Category: "X", Left: 5, Right: -3}}) {
		fmt.Println(tr.Category, tr.SignedLeft, tr.SignedRight)
	}
	// Output:
	// X -5 3
}

func ExamplePlaceLabel() {
	// A left bar 40 units long ending at x=160.
	bar := diverging.Rect{X: 200, Y: 0, Width: -40, Height: 30}
	label, _ := diverging.PlaceLabel(bar, -14, true)
	fmt.Printf("%v %v %s %s\n", label.X, label.Y, label.Align, label.Text)
	// Output:
	// 155 15 end 14%
}
