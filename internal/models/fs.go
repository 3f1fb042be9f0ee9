package models

const (
	EntryTypeFile      = "file"
	EntryTypeDirectory = "directory"
)

type DirectoryEntry struct {
	Name string `json:"name"`
	Type string `json:"type"` // "file" or "directory"
	Size *int64 `json:"size,omitempty"`
}

// Request fields are pointers with omitempty: a field the UI left out is
// not sent to the shim, which then applies its own default or rejects it.

type FsListRequest struct {
	Path *string `json:"path,omitempty"`
}

type FsReadRequest struct {
	Path *string `json:"path,omitempty"`
}

type FsWriteRequest struct {
	Path       *string `json:"path,omitempty"`
	Content    *string `json:"content,omitempty"`
	CreateDirs *bool   `json:"createDirs,omitempty"`
}

// ListResponse carries Error only on failure, alongside an empty Entries.
type ListResponse struct {
	Entries []DirectoryEntry `json:"entries"`
	Error   string           `json:"error,omitempty"`
}

type ReadResponse struct {
	Content string `json:"content"`
}

type WriteResponse struct {
	Message string `json:"message"`
}
