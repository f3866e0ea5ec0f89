package message

import (
	"bytes"
	"io"
	"os"
	"strings"
)

// Request is a materialized HTTP request produced by the request builder: a
// verb, an absolute URL, a header map, an optional body, and a
// caller-diagnostic label (the descriptor's fully-qualified method name).
type Request struct {
	// ID is a per-request diagnostic identifier, stamped by request.Build for
	// transport-level correlation.
	ID string

	Verb    string
	URL     string
	Headers *Headers
	Body    *Body

	// Label is the fully-qualified method name this request was built for.
	Label string
}

// NewRequest returns a Request with an initialized, empty header map.
func NewRequest(verb, url, label string) *Request {
	return &Request{
		Verb:    verb,
		URL:     url,
		Headers: NewHeaders(),
		Label:   label,
	}
}

// Open returns a reader over the request body suitable for transmission. For
// BodyFileSegment it opens the file, seeks to Offset, and limits the read to
// Length bytes (or to EOF when Length <= 0). For BodyBytes and BodyText it
// wraps the in-memory content; BodyNone yields http.NoBody-equivalent nil.
func (r *Request) Open() (io.ReadCloser, error) {
	if r.Body == nil {
		return nil, nil
	}

	switch r.Body.Kind {
	case BodyBytes:
		return io.NopCloser(bytes.NewReader(r.Body.Data)), nil
	case BodyText:
		return io.NopCloser(strings.NewReader(r.Body.Text)), nil
	case BodyFileSegment:
		f, err := os.Open(r.Body.FilePath)
		if err != nil {
			return nil, err
		}
		if _, err := f.Seek(r.Body.Offset, io.SeekStart); err != nil {
			f.Close()
			return nil, err
		}
		if r.Body.Length <= 0 {
			return f, nil
		}
		return &limitedReadCloser{r: io.LimitReader(f, r.Body.Length), c: f}, nil
	default:
		return nil, nil
	}
}

type limitedReadCloser struct {
	r io.Reader
	c io.Closer
}

func (l *limitedReadCloser) Read(p []byte) (int, error) { return l.r.Read(p) }
func (l *limitedReadCloser) Close() error               { return l.c.Close() }
