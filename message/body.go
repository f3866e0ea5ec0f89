package message

// BodyKind identifies which variant of the closed request-body sum type a
// Body value carries.
type BodyKind int

const (
	// BodyNone indicates no body is attached to the request.
	BodyNone BodyKind = iota
	// BodyBytes carries an opaque byte slice.
	BodyBytes
	// BodyText carries a string.
	BodyText
	// BodyFileSegment carries a byte range within a file on disk.
	BodyFileSegment
)

// Body is the closed sum type over the request body variants spec.md §4.B
// enumerates: bytes, text, and file-segment.
type Body struct {
	Kind        BodyKind
	ContentType string

	// Valid when Kind == BodyBytes.
	Data []byte

	// Valid when Kind == BodyText.
	Text string

	// Valid when Kind == BodyFileSegment. Length <= 0 means "read to EOF".
	FilePath string
	Offset   int64
	Length   int64
}

// BytesBody wraps data as a raw-bytes body.
func BytesBody(data []byte, contentType string) *Body {
	return &Body{Kind: BodyBytes, Data: data, ContentType: contentType}
}

// TextBody wraps text as a text body. An empty string yields a nil Body,
// since spec.md §4.B requires an empty text body to be suppressed rather
// than transmitted.
func TextBody(text, contentType string) *Body {
	if text == "" {
		return nil
	}
	return &Body{Kind: BodyText, Text: text, ContentType: contentType}
}

// FileSegmentBody wraps the byte range [offset, offset+length) of the file at
// path as the request body. length <= 0 reads from offset to EOF.
func FileSegmentBody(path string, offset, length int64, contentType string) *Body {
	return &Body{Kind: BodyFileSegment, FilePath: path, Offset: offset, Length: length, ContentType: contentType}
}

// FileSegmentSpec is the argument value a caller passes to a BODY-bound
// parameter to request a file-backed body (spec.md §4.D step 6). The request
// builder recognizes this type and produces a FileSegmentBody from it.
type FileSegmentSpec struct {
	Path   string
	Offset int64
	Length int64
}

