package analyzer

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spacesedan/sentirank/internal/models"
)

const maxRenderedText = 60

// WriteResults renders records as an aligned table in the given order.
func WriteResults(w io.Writer, records []*models.SentimentRecord) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "#\tSENTIMENT\tCONFIDENCE\tTEXT")
	for i, record := range records {
		if record == nil {
			fmt.Fprintf(tw, "%d\t-\t-\t(analysis failed)\n", i+1)
			continue
		}
		fmt.Fprintf(tw, "%d\t%s\t%.2f%%\t%s\n",
			i+1, strings.ToUpper(string(record.Category)), record.Confidence, truncate(record.Text))
	}

	return tw.Flush()
}

func truncate(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) <= maxRenderedText {
		return text
	}
	return string(runes[:maxRenderedText-3]) + "..."
}
