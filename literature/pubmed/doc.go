// Package pubmed implements literature.Index over the NCBI E-utilities API.
//
// Search calls esearch.fcgi and Fetch calls efetch.fcgi, both with XML
// responses. Requests are paced by a token-bucket limiter to stay within
// NCBI's published limits: 3 requests per second without an API key and 10
// with one.
//
//	client, err := pubmed.NewClient(pubmed.DefaultConfig())
//	ids, err := client.Search(ctx, `"metformin"[MeSH] AND "gut microbiota"[MeSH]`, 80, literature.Filter{})
//	articles, err := client.Fetch(ctx, ids)
package pubmed
