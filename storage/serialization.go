// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package storage

import (
	"errors"
	"fmt"

	"github.com/mus-format/mus-go"
	"github.com/poiesic/litsearch/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	id, n, err := core.IDMUS.Unmarshal(data)
	if err != nil {
		return 0, decodeError("id", err)
	}
	if n != len(data) {
		return 0, fmt.Errorf("%w: id has %d trailing bytes", ErrSerializationFailed, len(data)-n)
	}
	return id, nil
}

// MarshalSearchRecord serializes a SearchRecord to bytes.
func MarshalSearchRecord(record *core.SearchRecord) []byte {
	buf := make([]byte, core.SearchRecordMUS.Size(*record))
	core.SearchRecordMUS.Marshal(*record, buf)
	return buf
}

// UnmarshalSearchRecord deserializes a SearchRecord from bytes.
func UnmarshalSearchRecord(data []byte) (*core.SearchRecord, error) {
	record, n, err := core.SearchRecordMUS.Unmarshal(data)
	if err != nil {
		return nil, decodeError("search record", err)
	}
	if n != len(data) {
		return nil, fmt.Errorf("%w: search record has %d trailing bytes", ErrSerializationFailed, len(data)-n)
	}
	return &record, nil
}

func decodeError(what string, err error) error {
	if errors.Is(err, mus.ErrTooSmallByteSlice) {
		return fmt.Errorf("%w: %s: %w", ErrTruncatedData, what, err)
	}
	return fmt.Errorf("%w: %s: %w", ErrSerializationFailed, what, err)
}
