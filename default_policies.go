package restengine

import (
	"net/http/cookiejar"

	"github.com/nategraf/restengine/policy"
	"github.com/nategraf/restengine/policy/credentials"
	policycookiejar "github.com/nategraf/restengine/policy/cookiejar"
	"github.com/nategraf/restengine/policy/retry"
	"github.com/nategraf/restengine/policy/useragent"
)

// DefaultUserAgent is stamped on every request by DefaultPolicies unless the
// caller overrides it with its own useragent.Factory.
const DefaultUserAgent = "restengine/1.0"

// DefaultPolicies returns the mandatory pipeline in spec.md §4.E's order —
// user-agent, retry, cookie jar — with an optional credentials policy
// appended when provider is non-nil, grounded on
// RestProxy.createDefaultPipeline/createDefaultPipeline(credentials). The
// cookie jar defaults to an in-memory net/http/cookiejar.Jar (the Go
// equivalent of java.net.CookieManager's default in-memory store).
//
// A nil provider omits the credentials policy entirely, matching
// createDefaultPipeline()'s null-credentials-policy branch.
func DefaultPolicies(provider credentials.Provider) ([]policy.Factory, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	factories := []policy.Factory{
		useragent.Factory(DefaultUserAgent),
		retry.Factory(&retry.StaticConfig{}),
		policycookiejar.Factory(jar),
	}
	if provider != nil {
		factories = append(factories, credentials.Factory(provider))
	}
	return factories, nil
}
