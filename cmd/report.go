package main

import (
	"fmt"
	"io"

	"vizhener/internal/cracker"
	"vizhener/internal/i18n"
	"vizhener/pkg/options"
)

func progressPrinter(w io.Writer) options.ProgressFunc {
	return func(done, total int) {
		percent := 0.0
		if total > 0 {
			percent = float64(done) / float64(total) * 100
		}
		fmt.Fprintln(w, i18n.T("progress", map[string]any{
			"Done":    done,
			"Total":   total,
			"Percent": fmt.Sprintf("%.2f", percent),
		}))
	}
}

// writeReport prints the ranking. The header names the requested topK even
// when fewer keys were ranked.
func writeReport(w io.Writer, rep cracker.Report, topK int) {
	if topK <= 0 {
		topK = len(rep.Top)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, i18n.T("top_header", map[string]any{"Count": topK}))
	for _, r := range rep.Top {
		fmt.Fprintln(w, i18n.T("result_key", map[string]any{"Key": r.Key, "Score": r.Score}))
		fmt.Fprintln(w, i18n.T("result_text", map[string]any{"Text": r.Decoded}))
		fmt.Fprintln(w, i18n.T("result_key_again", map[string]any{"Key": r.Key}))
		fmt.Fprintln(w, i18n.T("separator", nil))
	}
	fmt.Fprintln(w, i18n.T("total", map[string]any{"Total": rep.Total}))
}
