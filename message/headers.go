// Package message defines the header/body value model shared by requests and
// responses flowing through the policy pipeline: a case-insensitive,
// multi-valued header map and a closed set of request body variants.
package message

import (
	"net/http"
	"sort"
	"strings"
)

// Headers is a case-insensitive, multi-valued header map. Set replaces any
// existing values for a name; Get returns the comma-joined form (testable
// property 3). Values returns the raw, unjoined slice, which callers such as
// policy/cookiejar need in order to parse headers like Set-Cookie where
// RFC 7230 forbids comma folding.
//
// A Headers value is owned by a single request or response and is never
// shared across calls, so it requires no internal locking.
type Headers struct {
	values map[string][]string
}

// NewHeaders returns an empty header map.
func NewHeaders() *Headers {
	return &Headers{values: make(map[string][]string)}
}

// Set replaces all values for name with a single value.
func (h *Headers) Set(name, value string) {
	h.values[http.CanonicalHeaderKey(name)] = []string{value}
}

// Add appends value to any existing values for name.
func (h *Headers) Add(name, value string) {
	key := http.CanonicalHeaderKey(name)
	h.values[key] = append(h.values[key], value)
}

// Del removes all values for name.
func (h *Headers) Del(name string) {
	delete(h.values, http.CanonicalHeaderKey(name))
}

// Get returns the values for name joined with "," (no space). It returns ""
// if the header is absent, which is indistinguishable from a header whose
// sole value is the empty string.
func (h *Headers) Get(name string) string {
	vs := h.values[http.CanonicalHeaderKey(name)]
	if len(vs) == 0 {
		return ""
	}
	return strings.Join(vs, ",")
}

// Values returns the raw, unjoined values for name.
func (h *Headers) Values(name string) []string {
	return h.values[http.CanonicalHeaderKey(name)]
}

// Has reports whether name has at least one value.
func (h *Headers) Has(name string) bool {
	return len(h.values[http.CanonicalHeaderKey(name)]) > 0
}

// Names returns the canonicalized header names present, sorted for
// deterministic iteration.
func (h *Headers) Names() []string {
	names := make([]string, 0, len(h.values))
	for k := range h.values {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Map collapses the header set into a map of comma-joined values, used when
// re-serializing raw headers for typed-headers deserialization (§3 Envelope).
func (h *Headers) Map() map[string]string {
	m := make(map[string]string, len(h.values))
	for _, name := range h.Names() {
		m[name] = h.Get(name)
	}
	return m
}

// Clone returns an independent copy of h.
func (h *Headers) Clone() *Headers {
	clone := NewHeaders()
	for k, vs := range h.values {
		cp := make([]string, len(vs))
		copy(cp, vs)
		clone.values[k] = cp
	}
	return clone
}
