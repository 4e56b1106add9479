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


package core

import (
	"fmt"
	"time"
)

// ValidateArticle validates an Article according to domain rules.
//
// Validation rules:
//   - ID must not be empty
//
// NOT validated (optional in fetched records):
//   - Title, Abstract, Journal
//   - Link (derived from ID)
func ValidateArticle(article *Article) error {
	if article == nil {
		return fmt.Errorf("%w: article is nil", ErrInvalidArticle)
	}

	if article.ID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidArticle, ErrEmptyIdentifier)
	}

	return nil
}

// ValidateSearchRecord validates a SearchRecord before it is persisted.
//
// Validation rules:
//   - OriginalQuery must not be empty
//   - Timestamp must not be in the future
//   - Every result must hold a valid Article
//
// NOT validated:
//   - Requester (opaque, may be empty for anonymous use)
//   - ID (assigned by the store)
func ValidateSearchRecord(record *SearchRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidSearchRecord)
	}

	if record.OriginalQuery == "" {
		return fmt.Errorf("%w: %w", ErrInvalidSearchRecord, ErrEmptyQuery)
	}

	if !IsValidTimestamp(record.Timestamp) {
		return fmt.Errorf("%w: %w", ErrInvalidSearchRecord, ErrInvalidTimestamp)
	}

	for i := range record.Results {
		if err := ValidateArticle(&record.Results[i].Article); err != nil {
			return fmt.Errorf("%w: result %d: %w", ErrInvalidSearchRecord, i, err)
		}
	}

	return nil
}

// IsValidTimestamp checks if a timestamp is valid (not in the future).
func IsValidTimestamp(ts time.Time) bool {
	return !ts.After(time.Now())
}
