// Package query turns a free-text research question into the forms the
// literature index understands.
//
// Three steps run in order. Normalize canonicalizes the raw text.
// ConceptExtractor asks a text generator for the core concepts and a Boolean
// query, reading the answer after a fixed marker line. VocabularyMapper asks
// the generator to rewrite that Boolean query into controlled-vocabulary
// (MeSH) terms and returns the reply as is.
//
// Generated text is parsed best-effort. A reply without the marker is
// reported as absent so the caller can fall back to the normalized query.
package query
