package parsers

import "fmt"

// UnsupportedFormatError is returned by Registry.Resolve when no parser
// is registered for a file extension. Fatal for the single file, never
// for a batch.
type UnsupportedFormatError struct {
	Extension string
	Supported []string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("no parser registered for extension %q (supported: %v)", e.Extension, e.Supported)
}

// MalformedInputError reports a structurally invalid container or JSON
// document, or a missing required field. Fatal for the file (or archive
// entry) it describes, non-fatal for sibling entries and for the batch.
type MalformedInputError struct {
	Path   string
	Reason string
	Err    error
}

func (e *MalformedInputError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed input %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed input %s: %s", e.Path, e.Reason)
}

func (e *MalformedInputError) Unwrap() error {
	return e.Err
}
