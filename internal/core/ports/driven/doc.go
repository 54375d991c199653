// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Interfaces
//
//   - RepositoryHost / Repository: Remote repository listing (GitHub)
//   - FileTransport: Raw file download by URL
//   - Partitioner: Splits a document into structural elements (goldmark)
//   - Chunker: Merges elements into chunks (by_title, basic)
//   - Segmenter: Partitioner + Chunker behind one call
//   - ConfigStore: Settings file access (TOML)
//   - DatasetEncoder: Serialises a dataset (parquet)
//   - DatasetHub: Publishes a dataset (Hugging Face)
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or normaliser package
package driven
