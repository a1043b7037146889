package sink

import (
	"strings"

	"github.com/matzehuels/butterfly/pkg/chart"
	"github.com/matzehuels/butterfly/pkg/diverging"
)

// FormatCSV serializes records back to text. Every line, including the
// last, ends in a newline. NaN values are written as "NaN".
func FormatCSV(records []chart.Record, leftLabel, rightLabel string) string {
	var b strings.Builder
	b.WriteString("Category,")
	b.WriteString(leftLabel)
	b.WriteByte(',')
	b.WriteString(rightLabel)
	b.WriteByte('\n')
	for _, r := range records {
		b.WriteString(r.Category)
		b.WriteByte(',')
		b.WriteString(diverging.FormatValue(r.Left))
		b.WriteByte(',')
		b.WriteString(diverging.FormatValue(r.Right))
		b.WriteByte('\n')
	}
	return b.String()
}
