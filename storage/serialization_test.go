package storage

import (
	"testing"
	"time"

	"github.com/poiesic/litsearch/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalID(t *testing.T) {
	tests := []struct {
		name string
		id   core.ID
	}{
		{"zero ID", core.ID(0)},
		{"small ID", core.ID(42)},
		{"large ID", core.ID(18446744073709551615)}, // max uint64
		{"content-based ID", core.IDFromContent("test content")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalID(tt.id)

			decoded, err := UnmarshalID(data)
			require.NoError(t, err)
			assert.Equal(t, tt.id, decoded)
		})
	}
}

func TestUnmarshalID_Invalid(t *testing.T) {
	// 0x80 sets the continuation bit, so the varint never terminates.
	for _, data := range [][]byte{nil, {}, {0x80, 0x80}} {
		_, err := UnmarshalID(data)
		assert.ErrorIs(t, err, ErrTruncatedData)
	}
}

func TestUnmarshalID_TrailingBytes(t *testing.T) {
	data := append(MarshalID(42), 0x01)
	_, err := UnmarshalID(data)
	assert.ErrorIs(t, err, ErrSerializationFailed)
}

func TestMarshalUnmarshalSearchRecord(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)
	q := core.NewQuery("Metformin and cancer").
		WithNormalized("metformin and cancer").
		WithBoolean(`("metformin") AND ("cancer")`).
		WithVocabulary(`"Metformin"[MeSH] AND "Neoplasms"[MeSH]`)

	record := core.NewSearchRecord("user-1", q, core.TierVocabulary, []core.RankedResult{
		{
			Article: core.Article{
				ID:       "123",
				Title:    "Metformin in oncology",
				Abstract: "BACKGROUND: text",
				Journal:  "Cancer Res",
				Authors:  []string{"Jane Doe", "Richard Roe"},
				Year:     2021,
				Link:     core.ArticleLink("123"),
			},
			Score: 0.91,
		},
		{Article: core.Article{ID: "456", Link: core.ArticleLink("456")}, Score: 0.8},
	}, now)
	record.Id = 7
	record.InsertedAt = now.Add(time.Second)

	data := MarshalSearchRecord(record)

	decoded, err := UnmarshalSearchRecord(data)
	require.NoError(t, err)
	assert.Equal(t, record.Id, decoded.Id)
	assert.Equal(t, record.Requester, decoded.Requester)
	assert.Equal(t, record.OriginalQuery, decoded.OriginalQuery)
	assert.Equal(t, record.BooleanQuery, decoded.BooleanQuery)
	assert.Equal(t, record.VocabularyQuery, decoded.VocabularyQuery)
	assert.Equal(t, record.Tier, decoded.Tier)
	assert.Equal(t, record.Results, decoded.Results)
	assert.True(t, record.Timestamp.Equal(decoded.Timestamp))
	assert.True(t, record.InsertedAt.Equal(decoded.InsertedAt))
}

func TestMarshalSearchRecord_EmptyResults(t *testing.T) {
	record := core.NewSearchRecord("", core.NewQuery("q"), core.TierOriginal, []core.RankedResult{}, time.Now().UTC())

	data := MarshalSearchRecord(record)

	decoded, err := UnmarshalSearchRecord(data)
	require.NoError(t, err)
	assert.Empty(t, decoded.Results)
	assert.Empty(t, decoded.Requester)
}

func TestUnmarshalSearchRecord_Invalid(t *testing.T) {
	record := core.NewSearchRecord("u", core.NewQuery("q"), core.TierOriginal, nil, time.Now().UTC())
	data := MarshalSearchRecord(record)

	_, err := UnmarshalSearchRecord(data[:len(data)-1])
	assert.ErrorIs(t, err, ErrTruncatedData)

	_, err = UnmarshalSearchRecord(append(data, 0x00))
	assert.ErrorIs(t, err, ErrSerializationFailed)
}
