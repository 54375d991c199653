package domain

// LocalDocument is a file materialised on local storage.
// It is created by the fetcher and only read afterwards.
type LocalDocument struct {
	// Path is the location on disk.
	Path string

	// Name is the key used in the dataset's filename column,
	// relative to the docs root with forward slashes.
	Name string
}
