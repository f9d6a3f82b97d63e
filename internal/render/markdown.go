// Package render formats a refresh report as markdown tables for terminals.
// Column widths use display width, so CJK and other wide titles stay aligned.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"newspulse/internal/domain/entity"
	fetchUC "newspulse/internal/usecase/fetch"
)

// MaxTitleWidth is the display width at which article titles are truncated.
const MaxTitleWidth = 60

// Table renders a markdown table. Cells are padded to the widest cell of their
// column, measured in terminal columns. Pipes inside cells are escaped.
func Table(headers []string, rows [][]string) string {
	colCount := len(headers)
	for _, row := range rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}

	all := make([][]string, 0, len(rows)+1)
	all = append(all, headers)
	all = append(all, rows...)

	colWidths := make([]int, colCount)
	for _, row := range all {
		for i := 0; i < len(row); i++ {
			if w := runewidth.StringWidth(escapeCell(row[i])); w > colWidths[i] {
				colWidths[i] = w
			}
		}
	}
	for i := range colWidths {
		if colWidths[i] < 3 {
			colWidths[i] = 3
		}
	}

	var sb strings.Builder
	writeRow := func(row []string) {
		sb.WriteString("|")
		for j := 0; j < colCount; j++ {
			content := ""
			if j < len(row) {
				content = escapeCell(row[j])
			}
			sb.WriteString(" ")
			sb.WriteString(runewidth.FillRight(content, colWidths[j]))
			sb.WriteString(" |")
		}
		sb.WriteString("\n")
	}

	writeRow(headers)
	sb.WriteString("|")
	for j := 0; j < colCount; j++ {
		sb.WriteString(" ")
		sb.WriteString(strings.Repeat("-", colWidths[j]))
		sb.WriteString(" |")
	}
	sb.WriteString("\n")
	for _, row := range rows {
		writeRow(row)
	}
	return sb.String()
}

// Report writes the headline metrics, the article list, the country ranking
// and the country x sentiment breakdown of r.
func Report(w io.Writer, r *fetchUC.Report) error {
	var sb strings.Builder
	view := r.View

	fmt.Fprintf(&sb, "# News insights: %s\n\n", r.Query.Text)
	fmt.Fprintf(&sb, "Provider: %s | Language: %s | Fetched: %s\n\n",
		r.Provider, r.Query.Language, r.FetchedAt.Format("2006-01-02 15:04 MST"))

	sb.WriteString("## Headline metrics\n\n")
	sb.WriteString(Table(
		[]string{"Total", "Positive", "Neutral", "Negative"},
		[][]string{{
			strconv.Itoa(view.TotalArticles),
			strconv.Itoa(view.Sentiment[entity.SentimentPositive]),
			strconv.Itoa(view.Sentiment[entity.SentimentNeutral]),
			strconv.Itoa(view.Sentiment[entity.SentimentNegative]),
		}},
	))

	sb.WriteString("\n## Articles\n\n")
	if len(r.Articles) == 0 {
		sb.WriteString("No articles matched the query.\n")
	} else {
		rows := make([][]string, 0, len(r.Articles))
		for _, a := range r.Articles {
			rows = append(rows, []string{
				runewidth.Truncate(a.Title, MaxTitleWidth, "…"),
				a.CountryLabel(),
				a.Sentiment.String(),
				a.Timestamp,
				a.URL,
			})
		}
		sb.WriteString(Table([]string{"Title", "Country", "Sentiment", "Published", "URL"}, rows))
	}

	if len(view.Countries) > 0 {
		sb.WriteString("\n## Top countries\n\n")
		rows := make([][]string, 0, len(view.Countries))
		for _, c := range view.Countries {
			rows = append(rows, []string{c.Country, strconv.Itoa(c.Count)})
		}
		sb.WriteString(Table([]string{"Country", "Mentions"}, rows))
	}

	sb.WriteString("\n## Sentiment by country\n\n")
	switch {
	case view.InsufficientCountryData:
		fmt.Fprintf(&sb, "Not enough data: no country is mentioned at least %d times.\n", view.MinMentions)
	case len(view.CountrySentiment) == 0:
		sb.WriteString("No articles to break down.\n")
	default:
		rows := make([][]string, 0, len(view.CountrySentiment))
		for _, c := range view.CountrySentiment {
			rows = append(rows, []string{c.Country, c.Sentiment.String(), strconv.Itoa(c.Count)})
		}
		sb.WriteString(Table([]string{"Country", "Sentiment", "Articles"}, rows))
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "|", `\|`)
}
