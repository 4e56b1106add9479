package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ArticleLinkBase is the prefix of every canonical article link.
const ArticleLinkBase = "https://pubmed.ncbi.nlm.nih.gov/"

// ID is a unique identifier for persisted entities.
// It is generated using content-based hashing or database sequences.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Query carries every form a research question takes while moving through
// the pipeline. Each stage fills one field from the one before it and hands
// back a new value; nothing is rewritten in place.
type Query struct {
	Raw        string `json:"raw"`
	Normalized string `json:"normalized"`
	Boolean    string `json:"boolean"`
	Vocabulary string `json:"vocabulary"`
}

// NewQuery starts a query from raw user text.
func NewQuery(raw string) Query {
	return Query{Raw: raw}
}

// WithNormalized returns a copy of q with the normalized form set.
func (q Query) WithNormalized(text string) Query {
	q.Normalized = text
	return q
}

// WithBoolean returns a copy of q with the Boolean form set.
func (q Query) WithBoolean(text string) Query {
	q.Boolean = text
	return q
}

// WithVocabulary returns a copy of q with the vocabulary-mapped form set.
func (q Query) WithVocabulary(text string) Query {
	q.Vocabulary = text
	return q
}

// Article is a bibliographic record fetched from the literature index.
// Only the identifier is mandatory. Every other field may be empty, and a
// zero Year means the publication year is unknown.
type Article struct {
	ID       string   `json:"pmid"`
	Title    string   `json:"title,omitempty"`
	Abstract string   `json:"abstract,omitempty"`
	Journal  string   `json:"journal,omitempty"`
	Authors  []string `json:"authors,omitempty"`
	Year     int      `json:"year,omitempty"`
	Link     string   `json:"link,omitempty"`
}

// ArticleLink derives the canonical link for an article identifier.
// An empty identifier has no link.
func ArticleLink(id string) string {
	if id == "" {
		return ""
	}
	return ArticleLinkBase + id + "/"
}

// RankedResult pairs an article with its cosine similarity to the query.
type RankedResult struct {
	Article Article `json:"article"`
	Score   float64 `json:"score"`
}

// RetrievalTier identifies which query form produced the candidate identifiers.
type RetrievalTier int

const (
	// TierNone means no tier produced candidates.
	TierNone RetrievalTier = iota
	// TierVocabulary is the controlled-vocabulary query.
	TierVocabulary
	// TierBoolean is the concept extractor's Boolean query.
	TierBoolean
	// TierOriginal is the raw user query.
	TierOriginal
)

func (t RetrievalTier) String() string {
	switch t {
	case TierVocabulary:
		return "vocabulary"
	case TierBoolean:
		return "boolean"
	case TierOriginal:
		return "original"
	default:
		return "none"
	}
}

// Provenance records how a result set was produced.
type Provenance struct {
	Query      Query         `json:"query"`
	Tier       RetrievalTier `json:"tier"`
	Candidates int           `json:"candidates"`
	Fetched    int           `json:"fetched"`
}

// SearchRecord is the persisted trace of one completed pipeline run.
// Records are append-only. Nothing in this module updates or deletes them.
type SearchRecord struct {
	Id              ID             `json:"id"`
	Requester       string         `json:"requester"`
	OriginalQuery   string         `json:"original_query"`
	BooleanQuery    string         `json:"boolean_query"`
	VocabularyQuery string         `json:"vocabulary_query"`
	Tier            RetrievalTier  `json:"tier"`
	Results         []RankedResult `json:"results"`
	Timestamp       time.Time      `json:"timestamp"`   // When the search completed
	InsertedAt      time.Time      `json:"inserted_at"` // When the record was inserted into the database
}

// NewSearchRecord builds the record for a completed run.
func NewSearchRecord(requester string, q Query, tier RetrievalTier, results []RankedResult, ts time.Time) *SearchRecord {
	return &SearchRecord{
		Requester:       requester,
		OriginalQuery:   q.Raw,
		BooleanQuery:    q.Boolean,
		VocabularyQuery: q.Vocabulary,
		Tier:            tier,
		Results:         results,
		Timestamp:       ts,
	}
}
