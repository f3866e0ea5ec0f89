// Package descriptor parses a service interface's method-level annotations
// into an immutable, cached plan (spec.md §4.C): verb, URL template,
// parameter bindings, expected statuses, declared error shape, and return
// shape. A Descriptor is built once per method and never mutated afterward.
package descriptor

import (
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

var placeholderPattern = regexp.MustCompile(`\{([^{}]+)\}`)

// defaultExpectedStatuses is the set used when no EXPECTED-RESPONSES
// annotation is declared.
var defaultExpectedStatuses = []int{200, 201, 202, 204}

// Descriptor is the immutable, cached plan for a single interface method.
type Descriptor struct {
	// Name is the fully-qualified method name, used only for diagnostics.
	Name string

	Verb         string
	Scheme       string
	HostTemplate string
	PathTemplate string

	Bindings []ParamBinding

	// ExpectedStatuses is sorted and non-empty.
	ExpectedStatuses []int

	Error  ErrorDescriptor
	Return ReturnShape
}

// Builder incrementally assembles a Descriptor, collecting the supplied
// annotations in declaration order before a single Build() validation pass.
type Builder struct {
	d             Descriptor
	bodySchemas   []*Type
	expectedGiven bool
}

// NewBuilder starts a descriptor build for the given fully-qualified method
// name.
func NewBuilder(name string) *Builder {
	return &Builder{d: Descriptor{Name: name}}
}

// Verb sets the HTTP verb (upper-cased).
func (b *Builder) Verb(verb string) *Builder {
	b.d.Verb = strings.ToUpper(verb)
	return b
}

// Scheme sets the URL scheme.
func (b *Builder) Scheme(scheme string) *Builder {
	b.d.Scheme = scheme
	return b
}

// Host sets the host template, which may itself contain {name} placeholders
// resolved by HOST-SUBSTITUTION bindings.
func (b *Builder) Host(template string) *Builder {
	b.d.HostTemplate = template
	return b
}

// Path sets the path template, whose {name} placeholders are resolved by
// PATH bindings.
func (b *Builder) Path(template string) *Builder {
	b.d.PathTemplate = template
	return b
}

// PathParam declares a PATH-PARAM binding.
func (b *Builder) PathParam(name string, paramIndex int, encoded bool) *Builder {
	b.d.Bindings = append(b.d.Bindings, ParamBinding{Kind: PathBinding, Name: name, ParamIndex: paramIndex, Encoded: encoded})
	return b
}

// QueryParam declares a QUERY-PARAM binding.
func (b *Builder) QueryParam(name string, paramIndex int, encoded bool) *Builder {
	b.d.Bindings = append(b.d.Bindings, ParamBinding{Kind: QueryBinding, Name: name, ParamIndex: paramIndex, Encoded: encoded})
	return b
}

// HeaderParam declares a HEADER-PARAM binding.
func (b *Builder) HeaderParam(name string, paramIndex int) *Builder {
	b.d.Bindings = append(b.d.Bindings, ParamBinding{Kind: HeaderBinding, Name: name, ParamIndex: paramIndex})
	return b
}

// HeaderLiteral declares a HEADER-LITERAL binding with a constant value.
func (b *Builder) HeaderLiteral(name, value string) *Builder {
	b.d.Bindings = append(b.d.Bindings, ParamBinding{Kind: HeaderLiteralBinding, Name: name, ParamIndex: -1, LiteralValue: value})
	return b
}

// Body declares the BODY binding, with an optional declared content-type
// ("" if none).
func (b *Builder) Body(paramIndex int, contentType string) *Builder {
	b.d.Bindings = append(b.d.Bindings, ParamBinding{Kind: BodyBinding, ParamIndex: paramIndex, ContentType: contentType})
	return b
}

// HostSubstitution declares a HOST-SUBSTITUTION binding for a templated host
// token.
func (b *Builder) HostSubstitution(name string, paramIndex int, encoded bool) *Builder {
	b.d.Bindings = append(b.d.Bindings, ParamBinding{Kind: HostBinding, Name: name, ParamIndex: paramIndex, Encoded: encoded})
	return b
}

// ExpectedStatuses declares the EXPECTED-RESPONSES annotation. If never
// called, Build applies the default {200, 201, 202, 204}.
func (b *Builder) ExpectedStatuses(codes ...int) *Builder {
	b.d.ExpectedStatuses = append([]int(nil), codes...)
	b.expectedGiven = true
	return b
}

// Errors declares the UNEXPECTED-RESPONSE-EXCEPTION annotation: an error-kind
// domain label and its associated body schema entity type. Passing a
// non-nil bodySchema whose GoType is a struct registers it for the
// build-time struct-tag sanity check.
func (b *Builder) Errors(kind string, bodySchema *Type) *Builder {
	b.d.Error = ErrorDescriptor{Kind: kind, BodySchema: bodySchema}
	if bodySchema != nil {
		b.bodySchemas = append(b.bodySchemas, bodySchema)
	}
	return b
}

// Returns declares the method's return shape. Result (if any) is also
// registered for the struct-tag sanity check when it resolves to a struct
// GoType, and an EnvelopeEntity's headers/body slots are registered too.
func (b *Builder) Returns(shape ReturnShape) *Builder {
	b.d.Return = shape
	if shape.Result != nil {
		b.bodySchemas = append(b.bodySchemas, collectSchemas(shape.Result)...)
	}
	return b
}

func collectSchemas(t *Type) []*Type {
	if t == nil {
		return nil
	}
	var out []*Type
	switch t.Kind {
	case EnvelopeEntity:
		out = append(out, collectSchemas(t.Headers)...)
		out = append(out, collectSchemas(t.Body)...)
	case ListEntity, MapEntity:
		out = append(out, collectSchemas(t.Elem)...)
	case OpaqueEntity:
		out = append(out, t)
	}
	return out
}

// Build validates the accumulated annotations and returns the frozen
// Descriptor, or a *MalformedInterfaceError / *UnsupportedReturnTypeError on
// failure.
func (b *Builder) Build() (*Descriptor, error) {
	if !b.expectedGiven || len(b.d.ExpectedStatuses) == 0 {
		b.d.ExpectedStatuses = append([]int(nil), defaultExpectedStatuses...)
	}
	sort.Ints(b.d.ExpectedStatuses)

	if err := b.validatePathPlaceholders(); err != nil {
		return nil, err
	}
	if err := b.validateSingleBody(); err != nil {
		return nil, err
	}
	if err := b.validateReturnShape(); err != nil {
		return nil, err
	}
	if err := b.validateSchemas(); err != nil {
		return nil, err
	}

	d := b.d
	d.Bindings = append([]ParamBinding(nil), b.d.Bindings...)
	return &d, nil
}

func (b *Builder) validatePathPlaceholders() error {
	bound := make(map[string]bool)
	for _, p := range b.d.Bindings {
		if p.Kind == PathBinding {
			bound[p.Name] = true
		}
	}
	for _, m := range placeholderPattern.FindAllStringSubmatch(b.d.PathTemplate, -1) {
		name := m[1]
		if !bound[name] {
			return &MalformedInterfaceError{
				Method: b.d.Name,
				Reason: fmt.Sprintf("unresolved path placeholder {%s}", name),
			}
		}
	}
	return nil
}

func (b *Builder) validateSingleBody() error {
	count := 0
	for _, p := range b.d.Bindings {
		if p.Kind == BodyBinding {
			count++
		}
	}
	if count > 1 {
		return &MalformedInterfaceError{Method: b.d.Name, Reason: "duplicate BODY binding"}
	}
	return nil
}

func (b *Builder) validateReturnShape() error {
	if containsObservable(b.d.Return.Result) {
		return &UnsupportedReturnTypeError{
			Method: b.d.Name,
			Reason: "lazy observable sequence of non-byte elements is not supported",
		}
	}
	switch b.d.Return.Kind {
	case ReturnVoid, ReturnSync, ReturnFuture, ReturnCompletionOnly:
	default:
		return &UnsupportedReturnTypeError{Method: b.d.Name, Reason: "unrecognized return shape"}
	}
	return nil
}

func containsObservable(t *Type) bool {
	if t == nil {
		return false
	}
	if t.Kind == ObservableEntity {
		return true
	}
	return containsObservable(t.Elem) || containsObservable(t.Headers) || containsObservable(t.Body)
}

// validateSchemas runs a parse-time struct-tag sanity check against a zero
// value of every declared struct schema (error body, response body,
// envelope headers/body). Field-required violations on the zero value are
// expected and ignored; only malformed tag declarations (which
// go-playground/validator reports as a non-ValidationErrors error) fail the
// build, since spec.md requires descriptors to be validated once, not
// per-request.
func (b *Builder) validateSchemas() error {
	for _, schema := range b.bodySchemas {
		if schema == nil || schema.GoType == nil {
			continue
		}
		if schema.GoType.Kind() != reflect.Struct {
			continue
		}
		if err := validateSchemaTags(schema.GoType); err != nil {
			return &MalformedInterfaceError{
				Method: b.d.Name,
				Reason: fmt.Sprintf("invalid schema tags: %v", err),
			}
		}
	}
	return nil
}

// validateSchemaTags runs validate.Struct against a zero value of goType,
// recovering from the panic the validator raises on an unregistered tag
// name so a malformed schema annotation surfaces as a build error rather
// than crashing the caller.
func validateSchemaTags(goType reflect.Type) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()

	zero := reflect.New(goType).Interface()
	if verr := validate.Struct(zero); verr != nil {
		if _, isValidationErr := verr.(validator.ValidationErrors); isValidationErr {
			return nil
		}
		// Types the validator does not walk (e.g. time.Time) carry no tags.
		if _, isInvalid := verr.(*validator.InvalidValidationError); isInvalid {
			return nil
		}
		return verr
	}
	return nil
}

// Cache is a sync.Map-backed, read-mostly registry mapping an opaque Key
// (typically a generated binding's method token) to its built Descriptor.
// Concurrent first-lookup builds are tolerated; the last Store wins.
type Cache struct {
	m sync.Map
}

// Key identifies a cached descriptor.
type Key string

// Get returns the cached descriptor for key, if any.
func (c *Cache) Get(key Key) (*Descriptor, bool) {
	v, ok := c.m.Load(key)
	if !ok {
		return nil, false
	}
	return v.(*Descriptor), true
}

// GetOrBuild returns the cached descriptor for key, building and storing it
// via build if absent. Concurrent calls may both invoke build; the map
// retains whichever Store lands last, as allowed by spec.md §5.
func (c *Cache) GetOrBuild(key Key, build func() (*Descriptor, error)) (*Descriptor, error) {
	if d, ok := c.Get(key); ok {
		return d, nil
	}
	d, err := build()
	if err != nil {
		return nil, err
	}
	c.m.Store(key, d)
	return d, nil
}
