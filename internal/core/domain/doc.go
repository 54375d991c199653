// Package domain defines the core entities of the docs-dataset pipeline.
//
// This package is the innermost layer of the hexagon. It has NO external
// dependencies and defines the fundamental types:
//
//   - RemoteFileEntry: One item of a remote repository listing
//   - Element: A structural unit of a partitioned document
//   - Chunk: A group of elements merged into one text span
//   - ChunkMap: Ordered mapping from file name to chunk texts
//   - Dataset: Ordered rows with filename, chunks and repo_name columns
//   - Settings: Every tunable of a run
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
