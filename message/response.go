package message

import (
	"bytes"
	"io"
	"sync"
)

// Response is the result of a completed policy-pipeline send: a status code,
// a header map, and a deferred body accessor. The underlying stream is
// consumed exactly once, memoized by a sync.Once-backed buffer; the four
// projections (Bytes, Text, Stream, Chunks) all derive from it, so each is
// idempotent regardless of call order.
type Response struct {
	Status  uint16
	Headers *Headers

	once   sync.Once
	source io.ReadCloser
	buf    []byte
	bufErr error
}

// NewResponse wraps a status, header map, and body stream. source may be nil
// for a bodiless response.
func NewResponse(status uint16, headers *Headers, source io.ReadCloser) *Response {
	return &Response{Status: status, Headers: headers, source: source}
}

func (r *Response) load() ([]byte, error) {
	r.once.Do(func() {
		if r.source == nil {
			return
		}
		defer r.source.Close()
		r.buf, r.bufErr = io.ReadAll(r.source)
	})
	return r.buf, r.bufErr
}

// Bytes returns the fully-read response body.
func (r *Response) Bytes() ([]byte, error) {
	return r.load()
}

// Text decodes the response body as a string.
func (r *Response) Text() (string, error) {
	b, err := r.load()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Stream returns a fresh reader over the memoized body buffer.
func (r *Response) Stream() (io.ReadCloser, error) {
	b, err := r.load()
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

// Chunks returns the body as a lazy sequence of byte chunks. Since this
// implementation's transports are non-streaming, the buffer is re-emitted as
// a single chunk, per spec.md's "Deferred bodies" design note.
func (r *Response) Chunks() (<-chan []byte, error) {
	b, err := r.load()
	if err != nil {
		return nil, err
	}
	ch := make(chan []byte, 1)
	if len(b) > 0 {
		ch <- b
	}
	close(ch)
	return ch, nil
}
