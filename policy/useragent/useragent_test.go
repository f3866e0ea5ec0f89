package useragent

import (
	"context"
	"testing"

	"github.com/nategraf/restengine/message"
	"github.com/nategraf/restengine/policy"
)

func TestFactorySetsHeader(t *testing.T) {
	var observed string
	terminal := policy.Func(func(ctx context.Context, req *message.Request) (*message.Response, error) {
		observed = req.Headers.Get("User-Agent")
		return message.NewResponse(200, message.NewHeaders(), nil), nil
	})

	p := Factory("restengine/1.0")(terminal)
	req := message.NewRequest("GET", "https://example.com", "Test.Call")
	if _, err := p.Send(context.Background(), req); err != nil {
		t.Fatal(err)
	}
	if observed != "restengine/1.0" {
		t.Fatalf("expected restengine/1.0, got %q", observed)
	}
}

func TestFactoryDoesNotOverwrite(t *testing.T) {
	var observed string
	terminal := policy.Func(func(ctx context.Context, req *message.Request) (*message.Response, error) {
		observed = req.Headers.Get("User-Agent")
		return message.NewResponse(200, message.NewHeaders(), nil), nil
	})

	p := Factory("restengine/1.0")(terminal)
	req := message.NewRequest("GET", "https://example.com", "Test.Call")
	req.Headers.Set("User-Agent", "custom/2.0")
	if _, err := p.Send(context.Background(), req); err != nil {
		t.Fatal(err)
	}
	if observed != "custom/2.0" {
		t.Fatalf("expected custom/2.0 preserved, got %q", observed)
	}
}
