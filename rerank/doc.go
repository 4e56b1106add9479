// Package rerank orders candidate articles by semantic similarity to a query.
//
// The query is embedded once. Each article's weighted title/abstract
// embedding is computed on a worker pool, scored by cosine similarity,
// sorted in descending order with ties kept in input order, filtered by a
// minimum score and cut to the requested count.
package rerank
