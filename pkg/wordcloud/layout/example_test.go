package layout_test

import (
	"context"
	"fmt"

	"github.com/matzehuels/wordcloud/pkg/wordcloud"
	"github.com/matzehuels/wordcloud/pkg/wordcloud/layout"
	"github.com/matzehuels/wordcloud/pkg/wordcloud/raster/rastertest"
)

func ExampleLayout() {
	words := []wordcloud.Word{
		{Name: "two", Value: 5},
		{Name: "one", Value: 10},
	}
	canvas := wordcloud.Canvas{Width: 100, Height: 100, MinFontSize: 10, MaxFontSize: 20}

	placed, err := layout.Layout(context.Background(), words, canvas, rastertest.Blocks{}, layout.Options{})
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, w := range placed {
		fmt.Println(w.Name, w.FontSize, w.Unplaced)
	}
	// Output:
	// one 20 false
	// two 10 false
}
