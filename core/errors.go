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

import "errors"

// Pipeline outcome errors
var (
	// ErrReformulationAmbiguous indicates a generated reformulation lacked its marker.
	// It is logged where it is recovered and never reaches callers of the pipeline.
	ErrReformulationAmbiguous = errors.New("reformulation ambiguous")

	// ErrRetrievalEmpty indicates every retrieval tier returned no identifiers.
	// It is logged; callers see an Empty outcome instead.
	ErrRetrievalEmpty = errors.New("retrieval empty")

	// ErrCollaboratorUnavailable indicates a generation, retrieval or encoder call failed.
	ErrCollaboratorUnavailable = errors.New("collaborator unavailable")

	// ErrMalformedRecord indicates a fetched record lacked required fields.
	ErrMalformedRecord = errors.New("malformed record")
)

// Domain validation errors
var (
	// ErrInvalidArticle indicates an Article failed validation.
	ErrInvalidArticle = errors.New("invalid article")

	// ErrInvalidSearchRecord indicates a SearchRecord failed validation.
	ErrInvalidSearchRecord = errors.New("invalid search record")

	// ErrInvalidTimestamp indicates a timestamp is in the future.
	ErrInvalidTimestamp = errors.New("timestamp cannot be in the future")

	// ErrEmptyIdentifier indicates an article has no external identifier.
	ErrEmptyIdentifier = errors.New("identifier cannot be empty")

	// ErrEmptyQuery indicates a query has no text.
	ErrEmptyQuery = errors.New("query cannot be empty")
)
