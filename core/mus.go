package core

import (
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for the persisted types. Field order is the wire order;
// append new fields at the end of a struct's encoding.
var (
	IDMUS            = idMUS{}
	RetrievalTierMUS = retrievalTierMUS{}
	ArticleMUS       = articleMUS{}
	RankedResultMUS  = rankedResultMUS{}
	SearchRecordMUS  = searchRecordMUS{}

	timeMUS    = unixMicroMUS{}
	stringsMUS = ord.NewSliceSer[string](ord.String)
	resultsMUS = ord.NewSliceSer[RankedResult](RankedResultMUS)
)

type idMUS struct{}

func (s idMUS) Marshal(v ID, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(v), bs)
}

func (s idMUS) Unmarshal(bs []byte) (v ID, n int, err error) {
	tmp, n, err := varint.Uint64.Unmarshal(bs)
	v = ID(tmp)
	return
}

func (s idMUS) Size(v ID) (size int) {
	return varint.Uint64.Size(uint64(v))
}

func (s idMUS) Skip(bs []byte) (n int, err error) {
	return varint.Uint64.Skip(bs)
}

type retrievalTierMUS struct{}

func (s retrievalTierMUS) Marshal(v RetrievalTier, bs []byte) (n int) {
	return varint.Int.Marshal(int(v), bs)
}

func (s retrievalTierMUS) Unmarshal(bs []byte) (v RetrievalTier, n int, err error) {
	tmp, n, err := varint.Int.Unmarshal(bs)
	v = RetrievalTier(tmp)
	return
}

func (s retrievalTierMUS) Size(v RetrievalTier) (size int) {
	return varint.Int.Size(int(v))
}

func (s retrievalTierMUS) Skip(bs []byte) (n int, err error) {
	return varint.Int.Skip(bs)
}

// unixMicroMUS stores a time as microseconds since the Unix epoch and
// decodes it in UTC.
type unixMicroMUS struct{}

func (s unixMicroMUS) Marshal(v time.Time, bs []byte) (n int) {
	return varint.Int64.Marshal(v.UnixMicro(), bs)
}

func (s unixMicroMUS) Unmarshal(bs []byte) (v time.Time, n int, err error) {
	tmp, n, err := varint.Int64.Unmarshal(bs)
	if err != nil {
		return
	}
	v = time.UnixMicro(tmp).UTC()
	return
}

func (s unixMicroMUS) Size(v time.Time) (size int) {
	return varint.Int64.Size(v.UnixMicro())
}

func (s unixMicroMUS) Skip(bs []byte) (n int, err error) {
	return varint.Int64.Skip(bs)
}

type articleMUS struct{}

func (s articleMUS) Marshal(v Article, bs []byte) (n int) {
	n = ord.String.Marshal(v.ID, bs)
	n += ord.String.Marshal(v.Title, bs[n:])
	n += ord.String.Marshal(v.Abstract, bs[n:])
	n += ord.String.Marshal(v.Journal, bs[n:])
	n += stringsMUS.Marshal(v.Authors, bs[n:])
	n += varint.Int.Marshal(v.Year, bs[n:])
	return n + ord.String.Marshal(v.Link, bs[n:])
}

func (s articleMUS) Unmarshal(bs []byte) (v Article, n int, err error) {
	v.ID, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Title, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Abstract, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Journal, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Authors, n1, err = stringsMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	if len(v.Authors) == 0 {
		v.Authors = nil
	}
	v.Year, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Link, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	return
}

func (s articleMUS) Size(v Article) (size int) {
	size = ord.String.Size(v.ID)
	size += ord.String.Size(v.Title)
	size += ord.String.Size(v.Abstract)
	size += ord.String.Size(v.Journal)
	size += stringsMUS.Size(v.Authors)
	size += varint.Int.Size(v.Year)
	return size + ord.String.Size(v.Link)
}

func (s articleMUS) Skip(bs []byte) (n int, err error) {
	n, err = ord.String.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	for _, skip := range []func([]byte) (int, error){
		ord.String.Skip, ord.String.Skip, ord.String.Skip,
		stringsMUS.Skip, varint.Int.Skip, ord.String.Skip,
	} {
		n1, err = skip(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}
	return
}

type rankedResultMUS struct{}

func (s rankedResultMUS) Marshal(v RankedResult, bs []byte) (n int) {
	n = ArticleMUS.Marshal(v.Article, bs)
	return n + varint.Float64.Marshal(v.Score, bs[n:])
}

func (s rankedResultMUS) Unmarshal(bs []byte) (v RankedResult, n int, err error) {
	v.Article, n, err = ArticleMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Score, n1, err = varint.Float64.Unmarshal(bs[n:])
	n += n1
	return
}

func (s rankedResultMUS) Size(v RankedResult) (size int) {
	return ArticleMUS.Size(v.Article) + varint.Float64.Size(v.Score)
}

func (s rankedResultMUS) Skip(bs []byte) (n int, err error) {
	n, err = ArticleMUS.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = varint.Float64.Skip(bs[n:])
	n += n1
	return
}

type searchRecordMUS struct{}

func (s searchRecordMUS) Marshal(v SearchRecord, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.Requester, bs[n:])
	n += ord.String.Marshal(v.OriginalQuery, bs[n:])
	n += ord.String.Marshal(v.BooleanQuery, bs[n:])
	n += ord.String.Marshal(v.VocabularyQuery, bs[n:])
	n += RetrievalTierMUS.Marshal(v.Tier, bs[n:])
	n += resultsMUS.Marshal(v.Results, bs[n:])
	n += timeMUS.Marshal(v.Timestamp, bs[n:])
	return n + timeMUS.Marshal(v.InsertedAt, bs[n:])
}

func (s searchRecordMUS) Unmarshal(bs []byte) (v SearchRecord, n int, err error) {
	v.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Requester, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.OriginalQuery, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.BooleanQuery, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.VocabularyQuery, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Tier, n1, err = RetrievalTierMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Results, n1, err = resultsMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Timestamp, n1, err = timeMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.InsertedAt, n1, err = timeMUS.Unmarshal(bs[n:])
	n += n1
	return
}

func (s searchRecordMUS) Size(v SearchRecord) (size int) {
	size = IDMUS.Size(v.Id)
	size += ord.String.Size(v.Requester)
	size += ord.String.Size(v.OriginalQuery)
	size += ord.String.Size(v.BooleanQuery)
	size += ord.String.Size(v.VocabularyQuery)
	size += RetrievalTierMUS.Size(v.Tier)
	size += resultsMUS.Size(v.Results)
	size += timeMUS.Size(v.Timestamp)
	return size + timeMUS.Size(v.InsertedAt)
}

func (s searchRecordMUS) Skip(bs []byte) (n int, err error) {
	n, err = IDMUS.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	for _, skip := range []func([]byte) (int, error){
		ord.String.Skip, ord.String.Skip, ord.String.Skip, ord.String.Skip,
		RetrievalTierMUS.Skip, resultsMUS.Skip, timeMUS.Skip, timeMUS.Skip,
	} {
		n1, err = skip(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}
	return
}
