package watch

import (
	"fmt"
	"strings"

	"fxwatch/internal/application/port"
	"fxwatch/internal/domain"
)

const (
	ansiReset  = "\033[0m"
	ansiRed    = "\033[31m"
	ansiGreen  = "\033[32m"
	ansiYellow = "\033[33m"
	ansiDim    = "\033[2m"
)

func colorize(s, c string) string {
	if c == "" {
		return s
	}
	return c + s + ansiReset
}

func signalColor(sig domain.Signal) string {
	switch sig.Color() {
	case "green":
		return ansiGreen
	case "red":
		return ansiRed
	default:
		return ""
	}
}

type Formatter struct{}

func NewFormatter() *Formatter {
	return &Formatter{}
}

// Render draws the full view: header, search term, the current page of
// codes, the detail panel, pagination and the command hint.
func (f *Formatter) Render(st *Session, feed port.FeedState, notice string) string {
	page := st.View()

	var sb strings.Builder
	sb.WriteString(colorize("[FXWATCH] ", ansiDim))
	fmt.Fprintf(&sb, "feed: %s  currencies: %d\n", feedStateLabel(feed), st.Quotes().Len())
	fmt.Fprintf(&sb, "search: %s\n\n", st.Term())

	if len(page.Codes) == 0 {
		sb.WriteString(colorize("  (no currencies)", ansiDim))
		sb.WriteString("\n")
	}
	for i, code := range page.Codes {
		marker := "  "
		if sel, ok := st.Selected(); ok && sel == code {
			marker = "> "
		}
		fmt.Fprintf(&sb, "%s%2d. %s\n", marker, i+1, code)
	}
	sb.WriteString("\n")

	if d, ok := st.Detail(); ok {
		fmt.Fprintf(&sb, "Prices for %s\n", d.Code)
		bid, ask := "--", "--"
		if d.Known {
			bid, ask = d.Quote.Bid, d.Quote.Ask
		}
		bidCol, askCol := "", ""
		if d.Compared {
			bidCol, askCol = signalColor(d.Comparison.Bid), signalColor(d.Comparison.Ask)
		}
		sb.WriteString(colorize("Bid: "+bid, bidCol))
		sb.WriteString("\n")
		sb.WriteString(colorize("Ask: "+ask, askCol))
		sb.WriteString("\n\n")
	}

	sb.WriteString(pagination(page))
	sb.WriteString("\n")

	if notice != "" {
		sb.WriteString(colorize(notice, ansiYellow))
		sb.WriteString("\n")
	}
	sb.WriteString(colorize("/term search  s CODE or row number select  n next  p prev  q quit", ansiDim))
	sb.WriteString("\n")
	return sb.String()
}

func pagination(p domain.Page) string {
	prev := "< prev"
	if !p.HasPrev() {
		prev = colorize(prev, ansiDim)
	}
	next := "next >"
	if !p.HasNext() {
		next = colorize(next, ansiDim)
	}
	return fmt.Sprintf("%s  Page %d of %d  %s", prev, p.Number, p.TotalPages, next)
}

func feedStateLabel(s port.FeedState) string {
	switch s {
	case port.FeedOpen:
		return colorize(s.String(), ansiGreen)
	case port.FeedErrored:
		return colorize(s.String(), ansiRed)
	case port.FeedClosed:
		return colorize(s.String(), ansiYellow)
	default:
		return s.String()
	}
}
