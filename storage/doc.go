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


// Package storage provides the persistence layer for search records.
//
// This package defines repository interfaces that decouple the storage
// implementation from the pipeline. The pipeline only ever appends; the read
// methods back the history view.
//
// # Errors
//
// Lookups of unknown ids return ErrNotFound. Inserts that fail inside the
// backend wrap ErrTransactionFailed around the cause, and every operation on
// a closed backend returns ErrStorageClosed.
//
// # Usage
//
// Use in tests with in-memory storage:
//
//	repo, backend, err := badger.NewMemoryRepository()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer backend.Close()
//	defer repo.Close()
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support
// concurrent inserts from multiple goroutines.
package storage
