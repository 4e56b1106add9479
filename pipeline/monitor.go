package pipeline

import "github.com/poiesic/litsearch/core"

// Monitor provides hooks to observe a pipeline run.
// Implement this interface to trace intermediate queries and results.
// AfterPersist is called from a background worker, possibly after the
// run's outcome has been returned.
type Monitor interface {
	Start(raw string)
	AfterNormalize(normalized string)
	AfterReformulation(boolean string, substituted bool, vocabulary string)
	AfterRetrieval(tier core.RetrievalTier, query string, ids []string)
	AfterFetch(articles []core.Article, dropped int)
	AfterRank(results []core.RankedResult)
	AfterPersist(id core.ID, err error)
	Finish(outcome core.Outcome)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                                            {}
func (n *noopMonitor) AfterNormalize(_ string)                                   {}
func (n *noopMonitor) AfterReformulation(_ string, _ bool, _ string)             {}
func (n *noopMonitor) AfterRetrieval(_ core.RetrievalTier, _ string, _ []string) {}
func (n *noopMonitor) AfterFetch(_ []core.Article, _ int)                        {}
func (n *noopMonitor) AfterRank(_ []core.RankedResult)                           {}
func (n *noopMonitor) AfterPersist(_ core.ID, _ error)                           {}
func (n *noopMonitor) Finish(_ core.Outcome)                                     {}
