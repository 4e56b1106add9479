package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/poiesic/litsearch/core"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	scoreStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

const (
	snippetLength = 240
	bylineAuthors = 3
)

// outcomeJSON is the machine-readable form of a pipeline outcome.
type outcomeJSON struct {
	Status     string              `json:"status"`
	Message    string              `json:"message,omitempty"`
	Query      core.Query          `json:"query"`
	Tier       string              `json:"tier"`
	Candidates int                 `json:"candidates"`
	Fetched    int                 `json:"fetched"`
	Results    []core.RankedResult `json:"results"`
}

func writeOutcomeJSON(w io.Writer, o core.Outcome) error {
	results := o.Results
	if results == nil {
		results = []core.RankedResult{}
	}
	return writeJSON(w, outcomeJSON{
		Status:     o.Status.String(),
		Message:    o.Message,
		Query:      o.Provenance.Query,
		Tier:       o.Provenance.Tier.String(),
		Candidates: o.Provenance.Candidates,
		Fetched:    o.Provenance.Fetched,
		Results:    results,
	})
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderOutcome(w io.Writer, o core.Outcome) error {
	var b strings.Builder
	switch o.Status {
	case core.OutcomeFailure:
		b.WriteString(errorStyle.Render("Search failed: " + o.Message))
		b.WriteString("\n")
	case core.OutcomeEmpty:
		b.WriteString(mutedStyle.Render(o.Message))
		b.WriteString("\n")
	default:
		prov := o.Provenance
		b.WriteString(headerStyle.Render(fmt.Sprintf("%d results", len(o.Results))))
		b.WriteString(" ")
		b.WriteString(mutedStyle.Render(fmt.Sprintf("(%s tier, %d candidates, %d fetched)",
			prov.Tier, prov.Candidates, prov.Fetched)))
		b.WriteString("\n")
		if prov.Query.Vocabulary != "" {
			b.WriteString(mutedStyle.Render("query: " + prov.Query.Vocabulary))
			b.WriteString("\n")
		}
		for i, r := range o.Results {
			writeResult(&b, i+1, r)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeResult(b *strings.Builder, rank int, r core.RankedResult) {
	a := r.Article
	title := a.Title
	if title == "" {
		title = "(untitled)"
	}
	fmt.Fprintf(b, "\n%2d. %s %s\n", rank, scoreStyle.Render(fmt.Sprintf("%.3f", r.Score)), headerStyle.Render(title))
	meta := "PMID " + a.ID
	if a.Journal != "" {
		meta += " | " + a.Journal
	}
	if a.Year > 0 {
		meta += fmt.Sprintf(" | %d", a.Year)
	}
	b.WriteString("    " + mutedStyle.Render(meta) + "\n")
	if len(a.Authors) > 0 {
		b.WriteString("    " + byline(a.Authors, bylineAuthors) + "\n")
	}
	if a.Link != "" {
		b.WriteString("    " + a.Link + "\n")
	}
	if a.Abstract != "" {
		b.WriteString("    " + snippet(a.Abstract, snippetLength) + "\n")
	}
}

func renderHistory(w io.Writer, records []*core.SearchRecord) error {
	var b strings.Builder
	if len(records) == 0 {
		b.WriteString(mutedStyle.Render("No searches stored."))
		b.WriteString("\n")
	}
	for _, r := range records {
		who := r.Requester
		if who == "" {
			who = "anonymous"
		}
		fmt.Fprintf(&b, "%s %s %s\n",
			mutedStyle.Render(fmt.Sprintf("#%d", r.Id)),
			headerStyle.Render(r.OriginalQuery),
			mutedStyle.Render(fmt.Sprintf("(%s, %s, %s tier, %d results)",
				who, r.Timestamp.Local().Format(time.DateTime), r.Tier, len(r.Results))))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// byline lists the first n authors, adding "et al." when there are more.
func byline(authors []string, n int) string {
	if len(authors) <= n {
		return strings.Join(authors, ", ")
	}
	return strings.Join(authors[:n], ", ") + " et al."
}

// snippet shortens text to at most n runes on a word boundary.
func snippet(text string, n int) string {
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	cut := string(runes[:n])
	if i := strings.LastIndexByte(cut, ' '); i > 0 {
		cut = cut[:i]
	}
	return cut + "..."
}
