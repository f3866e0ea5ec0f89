package request

import (
	"testing"

	"github.com/nategraf/restengine/descriptor"
	"github.com/nategraf/restengine/encoding"
	jsoncodec "github.com/nategraf/restengine/encoding/json"
)

func newCodecs() *encoding.Registry {
	return encoding.NewRegistry().Register(encoding.JSON, jsoncodec.Codec())
}

func TestBuildPathEscaping(t *testing.T) {
	// Scenario S1: PATH-PARAM id="a/b" not pre-encoded emits /items/a%2Fb.
	d, err := descriptor.NewBuilder("Items.Get").
		Verb("GET").
		Scheme("https").
		Host("example.com").
		Path("/items/{id}").
		PathParam("id", 0, false).
		Build()
	if err != nil {
		t.Fatal(err)
	}

	req, err := Build(d, []interface{}{"a/b"}, newCodecs())
	if err != nil {
		t.Fatal(err)
	}

	expURL := "https://example.com/items/a%2Fb"
	if req.URL != expURL {
		t.Fatalf("expected URL %q; got %q", expURL, req.URL)
	}
}

func TestBuildQueryNullOmitted(t *testing.T) {
	d, err := descriptor.NewBuilder("Items.List").
		Verb("GET").
		Scheme("https").
		Host("example.com").
		Path("/items").
		QueryParam("filter", 0, false).
		Build()
	if err != nil {
		t.Fatal(err)
	}

	req, err := Build(d, []interface{}{nil}, newCodecs())
	if err != nil {
		t.Fatal(err)
	}

	expURL := "https://example.com/items"
	if req.URL != expURL {
		t.Fatalf("expected null query param to be omitted; got %q", req.URL)
	}
}

func TestBuildHeaderOrderingOverwrites(t *testing.T) {
	d, err := descriptor.NewBuilder("Items.Get").
		Verb("GET").
		Scheme("https").
		Host("example.com").
		Path("/items").
		HeaderLiteral("X-Custom", "first").
		HeaderParam("X-Custom", 0).
		Build()
	if err != nil {
		t.Fatal(err)
	}

	req, err := Build(d, []interface{}{"second"}, newCodecs())
	if err != nil {
		t.Fatal(err)
	}

	if got := req.Headers.Get("X-Custom"); got != "second" {
		t.Fatalf("expected later binding to overwrite; got %q", got)
	}
}

func TestBuildBytesBodyOctetStream(t *testing.T) {
	// Scenario S3: POST /upload, bytes body, no content-type annotation
	// -> application/octet-stream, body unchanged.
	d, err := descriptor.NewBuilder("Items.Upload").
		Verb("POST").
		Scheme("https").
		Host("example.com").
		Path("/upload").
		Body(0, "").
		Build()
	if err != nil {
		t.Fatal(err)
	}

	payload := []byte{0x01, 0x02, 0x03}
	req, err := Build(d, []interface{}{payload}, newCodecs())
	if err != nil {
		t.Fatal(err)
	}

	if req.Headers.Get("Content-Type") != "application/octet-stream" {
		t.Fatalf("expected application/octet-stream; got %q", req.Headers.Get("Content-Type"))
	}
	if req.Body == nil || string(req.Body.Data) != string(payload) {
		t.Fatalf("expected body bytes unchanged; got %+v", req.Body)
	}
}

func TestBuildEmptyStringBodySuppressed(t *testing.T) {
	d, err := descriptor.NewBuilder("Items.Create").
		Verb("POST").
		Scheme("https").
		Host("example.com").
		Path("/items").
		Body(0, "text/plain").
		Build()
	if err != nil {
		t.Fatal(err)
	}

	req, err := Build(d, []interface{}{""}, newCodecs())
	if err != nil {
		t.Fatal(err)
	}
	if req.Body != nil {
		t.Fatalf("expected empty string body to be suppressed; got %+v", req.Body)
	}
}

func TestBuildObjectBodyJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	d, err := descriptor.NewBuilder("Items.Create").
		Verb("POST").
		Scheme("https").
		Host("example.com").
		Path("/items").
		Body(0, "").
		Build()
	if err != nil {
		t.Fatal(err)
	}

	req, err := Build(d, []interface{}{payload{Name: "n"}}, newCodecs())
	if err != nil {
		t.Fatal(err)
	}

	if req.Headers.Get("Content-Type") != "application/json" {
		t.Fatalf("expected application/json; got %q", req.Headers.Get("Content-Type"))
	}
	expBody := `{"name":"n"}`
	if string(req.Body.Data) != expBody {
		t.Fatalf("expected body %q; got %q", expBody, req.Body.Data)
	}
}
