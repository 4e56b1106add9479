package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIDFromContent(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantSame bool
	}{
		{
			name:     "same content produces same ID",
			content:  "test content",
			wantSame: true,
		},
		{
			name:     "empty string",
			content:  "",
			wantSame: true,
		},
		{
			name:     "long content",
			content:  "This is a much longer piece of content that should still hash consistently",
			wantSame: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id1 := IDFromContent(tt.content)
			id2 := IDFromContent(tt.content)

			if tt.wantSame && id1 != id2 {
				t.Errorf("IDFromContent() produced different IDs for same content: %d vs %d", id1, id2)
			}
		})
	}
}

func TestIDFromContent_Different(t *testing.T) {
	id1 := IDFromContent("alice")
	id2 := IDFromContent("bob")

	if id1 == id2 {
		t.Errorf("IDFromContent() produced same ID for different content")
	}
}

func TestArticleLink(t *testing.T) {
	assert.Equal(t, "https://pubmed.ncbi.nlm.nih.gov/111/", ArticleLink("111"))
	assert.Empty(t, ArticleLink(""))
}

func TestQuery_StagesDoNotMutate(t *testing.T) {
	raw := NewQuery("Metformin, and the gut?")
	normalized := raw.WithNormalized("metformin and the gut")
	boolean := normalized.WithBoolean(`metformin AND "gut microbiota"`)
	mapped := boolean.WithVocabulary(`"metformin"[MeSH] AND "gut microbiota"[MeSH]`)

	assert.Empty(t, raw.Normalized)
	assert.Empty(t, normalized.Boolean)
	assert.Empty(t, boolean.Vocabulary)
	assert.Equal(t, "Metformin, and the gut?", mapped.Raw)
	assert.Equal(t, "metformin and the gut", mapped.Normalized)
	assert.Equal(t, `metformin AND "gut microbiota"`, mapped.Boolean)
	assert.Equal(t, `"metformin"[MeSH] AND "gut microbiota"[MeSH]`, mapped.Vocabulary)
}

func TestRetrievalTier_String(t *testing.T) {
	assert.Equal(t, "vocabulary", TierVocabulary.String())
	assert.Equal(t, "boolean", TierBoolean.String())
	assert.Equal(t, "original", TierOriginal.String())
	assert.Equal(t, "none", TierNone.String())
}

func TestNewSearchRecord(t *testing.T) {
	ts := time.Now().UTC()
	q := Query{Raw: "raw", Normalized: "raw", Boolean: "b", Vocabulary: "v"}
	results := []RankedResult{{Article: Article{ID: "1"}, Score: 0.9}}

	record := NewSearchRecord("user-1", q, TierBoolean, results, ts)

	assert.Equal(t, ID(0), record.Id)
	assert.Equal(t, "user-1", record.Requester)
	assert.Equal(t, "raw", record.OriginalQuery)
	assert.Equal(t, "b", record.BooleanQuery)
	assert.Equal(t, "v", record.VocabularyQuery)
	assert.Equal(t, TierBoolean, record.Tier)
	assert.Equal(t, results, record.Results)
	assert.Equal(t, ts, record.Timestamp)
}
