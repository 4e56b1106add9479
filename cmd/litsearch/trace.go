package main

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/poiesic/litsearch/core"
	"github.com/poiesic/litsearch/pipeline"
)

// traceMonitor prints every pipeline stage as it happens.
type traceMonitor struct {
	mu sync.Mutex
	w  io.Writer
}

var _ pipeline.Monitor = (*traceMonitor)(nil)

func newTraceMonitor(w io.Writer) *traceMonitor {
	return &traceMonitor{w: w}
}

func (t *traceMonitor) printf(format string, args ...any) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintln(t.w, mutedStyle.Render("trace: "+fmt.Sprintf(format, args...)))
}

func (t *traceMonitor) Start(raw string) {
	t.printf("query %q", raw)
}

func (t *traceMonitor) AfterNormalize(normalized string) {
	t.printf("normalized %q", normalized)
}

func (t *traceMonitor) AfterReformulation(boolean string, substituted bool, vocabulary string) {
	if substituted {
		t.printf("no boolean query extracted, using normalized text")
	}
	t.printf("boolean %q", boolean)
	t.printf("vocabulary %q", vocabulary)
}

func (t *traceMonitor) AfterRetrieval(tier core.RetrievalTier, query string, ids []string) {
	t.printf("%s tier %q returned %d ids", tier, query, len(ids))
}

func (t *traceMonitor) AfterFetch(articles []core.Article, dropped int) {
	t.printf("fetched %d articles, dropped %d malformed", len(articles), dropped)
}

func (t *traceMonitor) AfterRank(results []core.RankedResult) {
	scores := make([]string, len(results))
	for i, r := range results {
		scores[i] = fmt.Sprintf("%s=%.3f", r.Article.ID, r.Score)
	}
	t.printf("ranked %d [%s]", len(results), strings.Join(scores, " "))
}

func (t *traceMonitor) AfterPersist(id core.ID, err error) {
	if err != nil {
		t.printf("persist failed: %v", err)
		return
	}
	t.printf("stored search record #%d", id)
}

func (t *traceMonitor) Finish(outcome core.Outcome) {
	t.printf("finished with %s", outcome.Status)
}
