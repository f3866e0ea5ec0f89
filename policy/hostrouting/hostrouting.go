// Package hostrouting provides a pipeline policy that overrides a built
// request's host by sampling the random number generator and consulting a
// routing table that assigns a weight to each candidate host, adapted from
// client/middleware/weightedrouting/weighted_routing.go. The teacher's
// version field becomes a HOST-SUBSTITUTION candidate host name here, and the
// override is applied to the already-substituted request.URL rather than to
// an RPC message's receiver-version field.
//
// The policy obtains its configuration from the global configuration store
// and is meant to be used alongside a dynamic configuration provider.
//
// Potential use-cases include blue-green deployments
// (https://martinfowler.com/bliki/BlueGreenDeployment.html) and canary
// releases (https://martinfowler.com/bliki/CanaryRelease.html), where a new
// host is rolled out and a small fraction of traffic is routed to it so it
// can be tested.
package hostrouting

import (
	"context"
	"math/rand"
	"net/url"
	"runtime"
	"strconv"
	"sync"

	"github.com/nategraf/restengine/config"
	"github.com/nategraf/restengine/config/flag"
	"github.com/nategraf/restengine/message"
	"github.com/nategraf/restengine/policy"
)

// Hooked for tests.
var (
	setFinalizer = runtime.SetFinalizer
	randFloat32  = rand.Float32
	cfgStore     = &config.Store
)

// Factory generates a hostrouting policy.Factory for serviceName. Each
// pipeline built from it gets its own router instance, which obtains its
// weight configuration by monitoring keys under the namespace
// "host_router/$serviceName". Each key under this namespace names a
// candidate host and its value is the weight assigned to it (0 to 1.0
// range); weights across a namespace should sum to 1.0.
//
// For example, to route 30% of traffic for service "foo" to "canary.example.com"
// and 70% to "stable.example.com":
//  - host_router/foo/canary.example.com -> "0.3"
//  - host_router/foo/stable.example.com -> "0.7"
func Factory(serviceName string) policy.Factory {
	return func(next policy.Policy) policy.Policy {
		wr := newRouter(serviceName)
		return policy.Func(func(ctx context.Context, req *message.Request) (*message.Response, error) {
			wr.route(req)
			return next.Send(ctx, req)
		})
	}
}

// candidate combines a candidate host and its selection weight.
type candidate struct {
	host   string
	weight float32
}

// router selects the host for outgoing requests by consulting a set of
// weights obtained via a dynamic configuration flag.
type router struct {
	mutex      sync.RWMutex
	candidates []candidate

	weightCfg *flag.Map
	doneChan  chan struct{}
}

// newRouter creates a router instance that fetches its weights from
// "host_router/$serviceName/".
func newRouter(serviceName string) *router {
	wr := &router{
		weightCfg: flag.NewMap(cfgStore, "host_router/"+serviceName),
		doneChan:  make(chan struct{}),
	}

	wr.updateCandidates()
	wr.spawnChangeMonitor()
	setFinalizer(wr, func(wr *router) { close(wr.doneChan) })

	return wr
}

// spawnChangeMonitor starts a worker that listens for configuration weight
// changes and updates the routing table.
func (wr *router) spawnChangeMonitor() {
	go func() {
		for {
			select {
			case <-wr.doneChan:
				wr.weightCfg.CancelDynamicUpdates()
				return
			case <-wr.weightCfg.ChangeChan():
				wr.updateCandidates()
			}
		}
	}()
}

// updateCandidates fetches the latest routing weights and rebuilds the
// candidate table.
func (wr *router) updateCandidates() {
	wr.mutex.Lock()
	cfg := wr.weightCfg.Get()

	candidates := make([]candidate, 0, len(cfg))
	for host, weightStr := range cfg {
		weight, err := strconv.ParseFloat(weightStr, 32)
		if err != nil {
			continue
		}
		candidates = append(candidates, candidate{host, float32(weight)})
	}

	wr.candidates = candidates
	wr.mutex.Unlock()
}

// route samples the routing table and, on a match, overwrites req's host
// component in place, leaving scheme, path, and query untouched.
func (wr *router) route(req *message.Request) {
	prob := randFloat32()

	wr.mutex.RLock()
	defer wr.mutex.RUnlock()

	var probIntegral float32
	for _, c := range wr.candidates {
		probIntegral += c.weight

		if prob < probIntegral {
			req.URL = rewriteHost(req.URL, c.host)
			return
		}
	}
}

// rewriteHost replaces rawURL's host component with host, returning rawURL
// unchanged if it cannot be parsed.
func rewriteHost(rawURL, host string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	u.Host = host
	return u.String()
}
