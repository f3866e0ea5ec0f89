package policy

import (
	"context"
	"testing"

	"github.com/nategraf/restengine/message"
)

// TestPipelineOrder asserts testable property 8: for a pipeline
// [A, B, C, transport], A observes the request before B, B before C, C
// before transport; responses flow in reverse.
func TestPipelineOrder(t *testing.T) {
	var seen []string

	record := func(name string) Factory {
		return func(next Policy) Policy {
			return Func(func(ctx context.Context, req *message.Request) (*message.Response, error) {
				seen = append(seen, "req:"+name)
				res, err := next.Send(ctx, req)
				seen = append(seen, "res:"+name)
				return res, err
			})
		}
	}

	terminal := Func(func(ctx context.Context, req *message.Request) (*message.Response, error) {
		seen = append(seen, "req:transport")
		return message.NewResponse(200, message.NewHeaders(), nil), nil
	})

	pipeline := Build(terminal, record("A"), record("B"), record("C"))

	req := message.NewRequest("GET", "https://example.com", "Test.Call")
	if _, err := pipeline.Send(context.Background(), req); err != nil {
		t.Fatal(err)
	}

	want := []string{
		"req:A", "req:B", "req:C", "req:transport",
		"res:C", "res:B", "res:A",
	}
	if len(seen) != len(want) {
		t.Fatalf("expected %v, got %v", want, seen)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, seen)
		}
	}
}

func TestBuildNoFactories(t *testing.T) {
	terminal := Func(func(ctx context.Context, req *message.Request) (*message.Response, error) {
		return message.NewResponse(204, message.NewHeaders(), nil), nil
	})

	pipeline := Build(terminal)
	res, err := pipeline.Send(context.Background(), message.NewRequest("GET", "https://example.com", "Test.Call"))
	if err != nil {
		t.Fatal(err)
	}
	if res.Status != 204 {
		t.Fatalf("expected status 204, got %d", res.Status)
	}
}
