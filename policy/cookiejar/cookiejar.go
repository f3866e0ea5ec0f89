// Package cookiejar provides the pipeline policy that reads Set-Cookie from
// responses and writes Cookie on subsequent requests using an injected
// http.CookieJar (spec.md §4.E), against the external collaborator contract
// spec.md §6 describes.
package cookiejar

import (
	"context"
	"net/http"
	"net/url"

	"github.com/nategraf/restengine/message"
	"github.com/nategraf/restengine/policy"
)

// Factory returns a policy.Factory that applies jar's cookies to every
// outgoing request and stores any Set-Cookie values from the response back
// into jar.
func Factory(jar http.CookieJar) policy.Factory {
	return func(next policy.Policy) policy.Policy {
		return policy.Func(func(ctx context.Context, req *message.Request) (*message.Response, error) {
			u, err := url.Parse(req.URL)
			if err != nil {
				return nil, err
			}

			for _, cookie := range jar.Cookies(u) {
				req.Headers.Add("Cookie", cookie.String())
			}

			res, err := next.Send(ctx, req)
			if err != nil {
				return res, err
			}

			// Set-Cookie may appear multiple times; comma-joining it (as
			// Headers.Get does) would corrupt the Expires attribute, so
			// this reads the raw, unjoined values instead.
			if raw := res.Headers.Values("Set-Cookie"); len(raw) > 0 {
				cookies := parseSetCookies(raw)
				if len(cookies) > 0 {
					jar.SetCookies(u, cookies)
				}
			}

			return res, nil
		})
	}
}

func parseSetCookies(raw []string) []*http.Cookie {
	header := make(http.Header, 1)
	header["Set-Cookie"] = raw
	resp := http.Response{Header: header}
	return resp.Cookies()
}
