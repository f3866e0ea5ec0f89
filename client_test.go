package restengine

import (
	"context"
	"errors"
	"io/ioutil"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/nategraf/restengine/descriptor"
	"github.com/nategraf/restengine/message"
	"github.com/nategraf/restengine/transport"
)

type item struct {
	Name string `json:"name"`
}

type fakeTransport struct {
	status  uint16
	headers *message.Headers
	body    string
	err     error
}

func (f *fakeTransport) Capabilities() transport.Capabilities {
	return transport.Capabilities{}
}

func (f *fakeTransport) SendRequestAsync(ctx context.Context, req *message.Request) (*message.Response, error) {
	if f.err != nil {
		return nil, f.err
	}
	headers := f.headers
	if headers == nil {
		headers = message.NewHeaders()
	}
	return message.NewResponse(f.status, headers, ioutil.NopCloser(strings.NewReader(f.body))), nil
}

func itemsGetDescriptor(t *testing.T) *descriptor.Descriptor {
	t.Helper()
	d, err := descriptor.NewBuilder("Items.Get").
		Verb("GET").
		Scheme("https").
		Host("example.com").
		Path("/items/{id}").
		PathParam("id", 0, false).
		Returns(descriptor.ReturnShape{Kind: descriptor.ReturnSync, Result: descriptor.OpaqueType(reflect.TypeOf(item{}))}).
		Build()
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestInvokeDecodesTypedResult(t *testing.T) {
	tr := &fakeTransport{status: 200, body: `{"name":"widget"}`}
	c, err := New(WithTransport(tr), WithPolicies())
	if err != nil {
		t.Fatal(err)
	}

	d := itemsGetDescriptor(t)
	got, err := Invoke[item](context.Background(), c, d, []interface{}{"abc"})
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "widget" {
		t.Fatalf("expected Name %q, got %q", "widget", got.Name)
	}
}

func TestInvokeUnexpectedStatus(t *testing.T) {
	tr := &fakeTransport{status: 404, body: ""}
	c, err := New(WithTransport(tr), WithPolicies())
	if err != nil {
		t.Fatal(err)
	}

	d := itemsGetDescriptor(t)
	_, err = Invoke[item](context.Background(), c, d, []interface{}{"abc"})
	if err == nil {
		t.Fatal("expected an error")
	}
	var restErr *Error
	if !errors.As(err, &restErr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if restErr.Kind != KindUnexpectedStatus {
		t.Fatalf("expected KindUnexpectedStatus, got %v", restErr.Kind)
	}
}

func TestInvokeTransportIO(t *testing.T) {
	tr := &fakeTransport{err: &transport.IOError{Message: "boom", Cause: errors.New("boom")}}
	c, err := New(WithTransport(tr), WithPolicies())
	if err != nil {
		t.Fatal(err)
	}

	d := itemsGetDescriptor(t)
	_, err = Invoke[item](context.Background(), c, d, []interface{}{"abc"})
	var restErr *Error
	if !errors.As(err, &restErr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if restErr.Kind != KindTransportIO {
		t.Fatalf("expected KindTransportIO, got %v", restErr.Kind)
	}
}

func TestInvokeCancelled(t *testing.T) {
	tr := &fakeTransport{err: context.Canceled}
	c, err := New(WithTransport(tr), WithPolicies())
	if err != nil {
		t.Fatal(err)
	}

	d := itemsGetDescriptor(t)
	_, err = Invoke[item](context.Background(), c, d, []interface{}{"abc"})
	var restErr *Error
	if !errors.As(err, &restErr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if restErr.Kind != KindCancelled {
		t.Fatalf("expected KindCancelled, got %v", restErr.Kind)
	}
}

func TestInvokeAsyncYieldsResult(t *testing.T) {
	tr := &fakeTransport{status: 200, body: `{"name":"widget"}`}
	c, err := New(WithTransport(tr), WithPolicies())
	if err != nil {
		t.Fatal(err)
	}

	d := itemsGetDescriptor(t)
	future := InvokeAsync[item](context.Background(), c, d, []interface{}{"abc"})

	got, err := future.Await(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "widget" {
		t.Fatalf("expected Name %q, got %q", "widget", got.Name)
	}
}

func TestInvokeAsyncCancel(t *testing.T) {
	blockCh := make(chan struct{})
	tr := &blockingTransport{block: blockCh}
	c, err := New(WithTransport(tr), WithPolicies())
	if err != nil {
		t.Fatal(err)
	}

	d := itemsGetDescriptor(t)
	future := InvokeAsync[item](context.Background(), c, d, []interface{}{"abc"})
	future.Cancel()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_, err = future.Await(ctx)
	if err == nil {
		t.Fatal("expected an error after cancellation")
	}
	close(blockCh)
}

type blockingTransport struct {
	block chan struct{}
}

func (b *blockingTransport) Capabilities() transport.Capabilities { return transport.Capabilities{} }

func (b *blockingTransport) SendRequestAsync(ctx context.Context, req *message.Request) (*message.Response, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-b.block:
		return nil, errors.New("unblocked")
	}
}

func TestInvokeVoidDiscardsResult(t *testing.T) {
	tr := &fakeTransport{status: 204}
	c, err := New(WithTransport(tr), WithPolicies())
	if err != nil {
		t.Fatal(err)
	}

	d, err := descriptor.NewBuilder("Items.Delete").
		Verb("DELETE").
		Scheme("https").
		Host("example.com").
		Path("/items/{id}").
		PathParam("id", 0, false).
		Returns(descriptor.ReturnShape{Kind: descriptor.ReturnVoid, Result: descriptor.VoidType()}).
		Build()
	if err != nil {
		t.Fatal(err)
	}

	if err := InvokeVoid(context.Background(), c, d, []interface{}{"abc"}); err != nil {
		t.Fatal(err)
	}
}

func TestInvokeCompletionDiscardsBody(t *testing.T) {
	tr := &fakeTransport{status: 200, body: `{"name":"widget"}`}
	c, err := New(WithTransport(tr), WithPolicies())
	if err != nil {
		t.Fatal(err)
	}

	d := itemsGetDescriptor(t)
	future := InvokeCompletion(context.Background(), c, d, []interface{}{"abc"})
	if _, err := future.Await(context.Background()); err != nil {
		t.Fatal(err)
	}
}

func TestResolveCachesDescriptor(t *testing.T) {
	c, err := New()
	if err != nil {
		t.Fatal(err)
	}

	calls := 0
	build := func() (*descriptor.Descriptor, error) {
		calls++
		return descriptor.NewBuilder("Items.Get").Verb("GET").Scheme("https").Host("example.com").Path("/items").Build()
	}

	if _, err := c.Resolve("Items.Get", build); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Resolve("Items.Get", build); err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Fatalf("expected build invoked once, got %d", calls)
	}
}

func TestResolveMalformedInterface(t *testing.T) {
	c, err := New()
	if err != nil {
		t.Fatal(err)
	}

	build := func() (*descriptor.Descriptor, error) {
		return descriptor.NewBuilder("Items.Get").
			Verb("GET").Scheme("https").Host("example.com").
			Path("/items/{id}"). // unresolved placeholder, no PathParam binding
			Build()
	}

	_, err = c.Resolve("Items.Get", build)
	if err == nil {
		t.Fatal("expected an error")
	}
	var restErr *Error
	if !errors.As(err, &restErr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if restErr.Kind != KindMalformedInterface {
		t.Fatalf("expected KindMalformedInterface, got %v", restErr.Kind)
	}
}
