package restengine

import (
	"context"
	"fmt"

	"github.com/nategraf/restengine/descriptor"
)

// Invoke implements the SYNC<T> return shape of spec.md §4.G step 5: it
// drives the request/pipeline/response cycle to completion and returns the
// decoded result, blocking the caller at this single well-defined suspension
// point.
func Invoke[T any](ctx context.Context, c *Client, d *descriptor.Descriptor, args []interface{}, extraAllowed ...int) (T, error) {
	var zero T

	raw, err := c.call(ctx, d, args, extraAllowed...)
	if err != nil {
		return zero, err
	}
	if raw == nil {
		return zero, nil
	}

	v, ok := raw.(T)
	if !ok {
		return zero, &Error{
			Kind:   KindUnsupportedReturnType,
			Method: d.Name,
			Cause:  fmt.Errorf("decoded result type %T does not match requested type %T", raw, zero),
		}
	}
	return v, nil
}

// InvokeAsync implements the FUTURE<T> return shape: the call runs on its
// own goroutine and the returned Future yields the typed result once it
// completes, without blocking the caller.
func InvokeAsync[T any](ctx context.Context, c *Client, d *descriptor.Descriptor, args []interface{}, extraAllowed ...int) *Future[T] {
	return newFuture(ctx, func(ctx context.Context) (T, error) {
		return Invoke[T](ctx, c, d, args, extraAllowed...)
	})
}

// InvokeVoid implements the VOID return shape: it blocks until the response
// is fully consumed and discards the result.
func InvokeVoid(ctx context.Context, c *Client, d *descriptor.Descriptor, args []interface{}) error {
	_, err := c.call(ctx, d, args)
	return err
}

// InvokeCompletion implements the COMPLETION-ONLY return shape: the returned
// Future completes once the response has been fully consumed, discarding its
// body.
func InvokeCompletion(ctx context.Context, c *Client, d *descriptor.Descriptor, args []interface{}) *Future[struct{}] {
	return newFuture(ctx, func(ctx context.Context) (struct{}, error) {
		_, err := c.call(ctx, d, args)
		return struct{}{}, err
	})
}
