package notifier

import (
	"fmt"
	"sort"
	"strings"

	"fxconfluence/internal/model"
)

// FormatAlert renders one record as an HTML Telegram message.
func FormatAlert(rec model.ConfluenceRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🎯 <b>%s</b> — %s (%d%%)\n\n", rec.Pair, rec.Summary, rec.Percent)

	names := make([]string, 0, len(rec.Timeframes))
	for name := range rec.Timeframes {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Fprintf(&b, "• %s: %s\n", name, rec.Timeframes[name].Label())
	}
	return b.String()
}
