package gallery

// Error is a categorized failure surfaced to callers. The category is a
// stable machine-readable tag; the message is a short human-readable
// description with no internal detail.
type Error struct {
	Category string
	Message  string
}

func (e *Error) Error() string {
	return e.Category + ": " + e.Message
}

var (
	// ErrNoIdentity means the caller has no resolved visitor identity.
	ErrNoIdentity = &Error{Category: "no_identity", Message: "no visitor identity resolved"}

	// ErrRepositoryUnavailable means a listing, fetch or upload against the
	// asset repository failed at the transport or service level.
	ErrRepositoryUnavailable = &Error{Category: "repository_unavailable", Message: "asset repository unavailable"}

	// ErrEmptyInput means an ingest request carried no file content.
	ErrEmptyInput = &Error{Category: "empty_input", Message: "no file content supplied"}

	// ErrEmptyFilename means an ingest request carried no original file name.
	ErrEmptyFilename = &Error{Category: "empty_filename", Message: "no file name supplied"}

	// ErrUnsupportedMedia means an ingest payload is not a recognized raster
	// image format.
	ErrUnsupportedMedia = &Error{Category: "unsupported_media", Message: "payload is not a supported image format"}

	// ErrNotFound means the requested asset is excluded for this visitor or
	// does not exist in the repository.
	ErrNotFound = &Error{Category: "not_found", Message: "asset not available"}
)
