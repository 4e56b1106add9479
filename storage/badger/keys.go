package badger

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/poiesic/litsearch/core"
)

// Key prefixes for different data types
const (
	searchRecordPrefix          = "srchrec"
	searchRecordDatePrefix      = "srchrecd"
	searchRecordRequesterPrefix = "srchrecu"
	searchRecordIDSeq           = "srchrecseq"
)

// latestTime is the seek origin for newest-first iteration.
var latestTime = time.Date(9999, 12, 31, 23, 59, 59, 999999999, time.UTC)

// makeSearchRecordKey generates a key for a search record by ID.
func makeSearchRecordKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", searchRecordPrefix, id))
}

// makeSearchDateKey generates a composite key for the date index.
// Format: prefix:timestamp:id
func makeSearchDateKey(timestamp time.Time, id core.ID) []byte {
	prefix := []byte(searchRecordDatePrefix + ":")
	buf := make([]byte, len(prefix)+16) // 8 bytes for timestamp + 8 bytes for ID
	offset := copy(buf, prefix)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialSearchDateKey generates a partial key for date range queries.
// Format: prefix:timestamp
func makePartialSearchDateKey(timestamp time.Time) []byte {
	prefix := []byte(searchRecordDatePrefix + ":")
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	return buf
}

// makeRequesterKey generates a composite key for the per-requester index.
// The requester string is reduced to a fixed-width content hash.
// Format: prefix:requesterHash:timestamp:id
func makeRequesterKey(requester string, timestamp time.Time, id core.ID) []byte {
	prefix := makeRequesterPrefix(requester)
	buf := make([]byte, len(prefix)+16)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makeRequesterPrefix generates the key prefix shared by one requester's entries.
// Format: prefix:requesterHash
func makeRequesterPrefix(requester string) []byte {
	prefix := []byte(searchRecordRequesterPrefix + ":")
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(core.IDFromContent(requester)))
	return buf
}

// makeLatestRequesterKey is the largest possible key for a requester.
func makeLatestRequesterKey(requester string) []byte {
	return makeRequesterKey(requester, latestTime, core.ID(math.MaxUint64))
}
