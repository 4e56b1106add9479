// Package literature defines the bibliographic index the pipeline retrieves
// candidate articles from.
//
// An Index has two operations. Search turns a query string into an ordered
// list of opaque identifiers. Fetch turns identifiers into Article records.
// The pubmed sub-package implements Index over NCBI E-utilities and the mock
// sub-package provides a scripted double for tests.
package literature
