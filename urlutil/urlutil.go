// Package urlutil assembles absolute request URLs from a scheme, a host (which
// may itself carry unresolved template tokens at call time), a literal path,
// and an ordered sequence of query parameters.
package urlutil

import "strings"

// Builder accumulates the pieces of an absolute URL in the order a request
// builder discovers them: scheme and host first, then path, then query
// parameters appended one at a time in descriptor order.
type Builder struct {
	scheme string
	host   string
	path   string
	query  []queryPair
}

type queryPair struct {
	name  string
	value string
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// WithScheme sets the URL scheme (e.g. "https").
func (b *Builder) WithScheme(scheme string) *Builder {
	b.scheme = scheme
	return b
}

// WithHost sets the URL host, including port if present. The host is taken
// verbatim; any templating has already been resolved by the caller.
func (b *Builder) WithHost(host string) *Builder {
	b.host = host
	return b
}

// WithPath sets the URL path. Path placeholders must already have been
// substituted by the caller.
func (b *Builder) WithPath(path string) *Builder {
	b.path = path
	return b
}

// AddQueryParam appends a query parameter. If encoded is false, value is
// percent-encoded per RFC 3986 query rules; if true, value is inserted
// verbatim. A nil-equivalent empty name is never valid, but an empty value is
// appended as-is ("name=").
func (b *Builder) AddQueryParam(name, value string, encoded bool) *Builder {
	if !encoded {
		value = EscapeQueryComponent(value)
	}
	b.query = append(b.query, queryPair{name: name, value: value})
	return b
}

// URL renders the accumulated pieces into an absolute URL string.
func (b *Builder) URL() string {
	var sb strings.Builder

	if b.scheme != "" {
		sb.WriteString(b.scheme)
		sb.WriteString("://")
	}
	sb.WriteString(b.host)

	if b.path != "" && !strings.HasPrefix(b.path, "/") {
		sb.WriteByte('/')
	}
	sb.WriteString(b.path)

	for i, pair := range b.query {
		if i == 0 {
			sb.WriteByte('?')
		} else {
			sb.WriteByte('&')
		}
		sb.WriteString(pair.name)
		sb.WriteByte('=')
		sb.WriteString(pair.value)
	}

	return sb.String()
}

// isUnreserved reports whether c is an RFC 3986 unreserved character
// (ALPHA / DIGIT / "-" / "." / "_" / "~"), the only characters that may be
// left unescaped by EscapeQueryComponent.
func isUnreserved(c byte) bool {
	switch {
	case 'A' <= c && c <= 'Z', 'a' <= c && c <= 'z', '0' <= c && c <= '9':
		return true
	case c == '-' || c == '.' || c == '_' || c == '~':
		return true
	}
	return false
}

// EscapeQueryComponent percent-encodes s per RFC 3986's reserved-character
// rules for the query component. Unlike net/url.QueryEscape, a space is
// encoded as "%20" rather than "+", and every byte outside the unreserved set
// is escaped, including sub-delimiters such as "&" and "=" that would
// otherwise be misinterpreted as query structure.
func EscapeQueryComponent(s string) string {
	var needsEscape bool
	for i := 0; i < len(s); i++ {
		if !isUnreserved(s[i]) {
			needsEscape = true
			break
		}
	}
	if !needsEscape {
		return s
	}

	const hextable = "0123456789ABCDEF"
	var sb strings.Builder
	sb.Grow(len(s) * 3)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			sb.WriteByte(c)
			continue
		}
		sb.WriteByte('%')
		sb.WriteByte(hextable[c>>4])
		sb.WriteByte(hextable[c&0x0f])
	}
	return sb.String()
}

// EscapePathSegment percent-encodes s for use as a single path segment, per
// the same RFC 3986 reserved-character rules used for query components. This
// is what path placeholder substitution (§4.D step 1) uses for non-pre-encoded
// PATH bindings.
func EscapePathSegment(s string) string {
	return EscapeQueryComponent(s)
}
