// Package doccrawler turns documentation websites into retrievable knowledge
// chunks and serves hybrid (dense + sparse) search over them. A session
// crawls seed URLs under per-target LLM budgets, recovers code samples hidden
// behind tabbed UI, chunks and summarizes pages with an LLM, embeds chunks
// into dense and sparse vectors, and upserts them into a remote vector index.
//
// This package contains domain types and capability interfaces following
// the Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., rod/, gemini/, pinecone/, sqlite/).
package doccrawler
