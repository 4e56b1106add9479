// Package pipeline runs one semantic literature search from raw query text
// to a ranked, persisted result set.
//
// A run normalizes the query, asks the text generator for a Boolean
// reformulation and a controlled-vocabulary rewrite, then retrieves
// candidate identifiers with a three-tier fallback:
//
//  1. the vocabulary-mapped query
//  2. the Boolean query (or the normalized query when no Boolean line was found)
//  3. the raw query as typed
//
// The first tier that yields identifiers wins. If none do, the run ends with
// an empty outcome and nothing is stored. Otherwise up to the fetch ceiling of
// records are fetched, ranked against the raw query and returned. The search
// record is written by a background worker; Search never waits for it.
//
// Every run returns a core.Outcome. Generator, index and encoder errors
// become failures wrapping core.ErrCollaboratorUnavailable.
package pipeline
