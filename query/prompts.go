package query

import "strings"

// BooleanMarker introduces the Boolean query line in a concept extraction reply.
const BooleanMarker = "Optimized Boolean Query:"

const conceptPrompt = `You are a biomedical information specialist who builds PubMed searches.

Research question: "{{QUERY}}"

Step 1. List the 2 to 4 core concepts of the question, one per line, prefixed with "- ".
Step 2. Combine them into one Boolean search string for PubMed:
  - join distinct concepts with AND
  - join synonyms of the same concept with OR inside parentheses
  - use NOT only to exclude a clearly irrelevant meaning
  - use * for truncation of word stems (for example diabet*)
  - wrap multi-word terms that must match exactly in double quotes

Finish with exactly one line in this form and nothing after it:
` + BooleanMarker + ` <boolean query>`

const vocabularyPrompt = `You are a biomedical indexing expert familiar with the MeSH controlled vocabulary.

Rewrite the PubMed Boolean query below so that every disease, gene, drug and
biomarker term uses its MeSH heading, tagged [MeSH]. Keep free-text terms
that have no MeSH equivalent, tagged [tiab]. Preserve the Boolean operators,
the parentheses, the truncation symbols and the quoted phrases.

Query: {{QUERY}}

Reply with the rewritten query only.`

func buildConceptPrompt(query string) string {
	return strings.ReplaceAll(conceptPrompt, "{{QUERY}}", query)
}

func buildVocabularyPrompt(query string) string {
	return strings.ReplaceAll(vocabularyPrompt, "{{QUERY}}", query)
}
