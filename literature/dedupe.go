package literature

import (
	"strings"

	"github.com/poiesic/litsearch/core"
)

// UniqueIDs trims ids and drops empty and repeated entries.
// The first occurrence keeps its position.
func UniqueIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// CleanArticles drops articles that fail validation or repeat an earlier
// identifier, and fills in missing canonical links. It returns the kept
// articles and the number dropped.
func CleanArticles(articles []core.Article) ([]core.Article, int) {
	seen := make(map[string]bool, len(articles))
	out := make([]core.Article, 0, len(articles))
	dropped := 0
	for _, a := range articles {
		if core.ValidateArticle(&a) != nil || seen[a.ID] {
			dropped++
			continue
		}
		seen[a.ID] = true
		if a.Link == "" {
			a.Link = core.ArticleLink(a.ID)
		}
		out = append(out, a)
	}
	return out, dropped
}
