package upload

// FileFormatError reports an upload whose bytes could not be read at all
// (corrupt workbook, malformed CSV, unknown extension). The whole request is
// rejected before any record is examined.
type FileFormatError struct {
	Reason string
}

func (e *FileFormatError) Error() string {
	return "invalid upload file: " + e.Reason
}
