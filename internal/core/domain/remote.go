package domain

// Entry types reported by a repository listing.
const (
	EntryTypeFile      = "file"
	EntryTypeDir       = "dir"
	EntryTypeSymlink   = "symlink"
	EntryTypeSubmodule = "submodule"
)

// RemoteFileEntry represents one item in a remote repository listing.
// It is produced transiently by a listing call and never persisted.
type RemoteFileEntry struct {
	// Path is relative to the repository root, using forward slashes.
	Path string

	// DownloadURL is the raw content location.
	// Empty for directories.
	DownloadURL string

	// Type is the listing type (file, dir, symlink, submodule). Informational only.
	Type string

	// Size is the file size in bytes as reported by the host.
	Size int
}

// IsDir reports whether the entry is a directory.
// A missing download URL is the only signal that matters.
func (e RemoteFileEntry) IsDir() bool {
	return e.DownloadURL == ""
}
