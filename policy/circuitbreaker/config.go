package circuitbreaker

import (
	"strings"
	"time"

	"github.com/nategraf/restengine/config"
	"github.com/nategraf/restengine/config/flag"
	"github.com/nategraf/restengine/config/store"
	"github.com/nategraf/restengine/transport"
)

// DefaultTripThreshold is used when a config's trip-threshold flag carries no
// value.
const DefaultTripThreshold uint32 = 5

// DefaultResetThreshold is used when a config's reset-threshold flag carries
// no value.
const DefaultResetThreshold uint32 = 1

// DefaultCoolOffPeriod is the time the breaker stays in the Closed (tripped)
// state before allowing a single Half-Open probe through.
var DefaultCoolOffPeriod = 1 * time.Second

// DefaultTripErrors lists the errors that count towards tripping the breaker
// when no config-supplied list is given.
var DefaultTripErrors = []error{transport.ErrServiceUnavailable}

// Config is implemented by objects that can be passed to Factory, ported from
// client/middleware/circuitbreaker/config.go.
//
// GetClosedError returns the error returned to callers while the breaker is
// tripped; nil selects the package default.
//
// GetTripErrors returns the set of errors that count towards tripping the
// breaker; nil selects DefaultTripErrors.
//
// GetTripThreshold returns the number of tracked errors that trips the
// breaker from Open to Closed.
//
// GetResetThreshold returns the number of consecutive Half-Open successes
// required to reset the breaker back to Open.
//
// GetCoolOffPeriod returns, in nanoseconds, how long the breaker stays
// Closed before probing again.
//
// GetStateChangeChan returns an optional channel notified (best-effort, never
// blocking) on every state transition.
type Config interface {
	GetClosedError() error
	GetTripErrors() []error
	GetTripThreshold() *flag.Uint32
	GetResetThreshold() *flag.Uint32
	GetCoolOffPeriod() *flag.Int64
	GetStateChangeChan() chan<- State
}

// StaticConfig defines a fixed circuit-breaker configuration.
type StaticConfig struct {
	ClosedError     error
	TripErrors      []error
	TripThreshold   uint32
	ResetThreshold  uint32
	CoolOffPeriod   time.Duration
	StateChangeChan chan<- State
}

// GetClosedError returns the configured closed-state error.
func (c *StaticConfig) GetClosedError() error { return c.ClosedError }

// GetTripErrors returns the configured trip error set.
func (c *StaticConfig) GetTripErrors() []error { return c.TripErrors }

// GetTripThreshold returns the configured trip threshold.
func (c *StaticConfig) GetTripThreshold() *flag.Uint32 {
	f := flag.NewUint32(nil, "")
	f.Set(c.TripThreshold)
	return f
}

// GetResetThreshold returns the configured reset threshold.
func (c *StaticConfig) GetResetThreshold() *flag.Uint32 {
	f := flag.NewUint32(nil, "")
	f.Set(c.ResetThreshold)
	return f
}

// GetCoolOffPeriod returns the configured cool-off period, in nanoseconds.
func (c *StaticConfig) GetCoolOffPeriod() *flag.Int64 {
	f := flag.NewInt64(nil, "")
	f.Set(c.CoolOffPeriod.Nanoseconds())
	return f
}

// GetStateChangeChan returns the configured state-change channel.
func (c *StaticConfig) GetStateChangeChan() chan<- State { return c.StateChangeChan }

// DynamicConfig defines a circuit-breaker configuration synced to a
// configuration store, watched at
// ConfigPath/{trip_threshold,reset_threshold,cool_off_period}.
type DynamicConfig struct {
	store           *store.Store
	ClosedError     error
	TripErrors      []error
	StateChangeChan chan<- State
	ConfigPath      string
}

// GetClosedError returns the configured closed-state error.
func (c *DynamicConfig) GetClosedError() error { return c.ClosedError }

// GetTripErrors returns the configured trip error set.
func (c *DynamicConfig) GetTripErrors() []error { return c.TripErrors }

// GetTripThreshold returns the dynamically configured trip threshold.
func (c *DynamicConfig) GetTripThreshold() *flag.Uint32 {
	return flag.NewUint32(c.getStore(), c.configPath("trip_threshold"))
}

// GetResetThreshold returns the dynamically configured reset threshold.
func (c *DynamicConfig) GetResetThreshold() *flag.Uint32 {
	return flag.NewUint32(c.getStore(), c.configPath("reset_threshold"))
}

// GetCoolOffPeriod returns the dynamically configured cool-off period, in
// nanoseconds.
func (c *DynamicConfig) GetCoolOffPeriod() *flag.Int64 {
	return flag.NewInt64(c.getStore(), c.configPath("cool_off_period"))
}

// GetStateChangeChan returns the configured state-change channel.
func (c *DynamicConfig) GetStateChangeChan() chan<- State { return c.StateChangeChan }

func (c *DynamicConfig) getStore() *store.Store {
	if c.store == nil {
		return &config.Store
	}
	return c.store
}

func (c *DynamicConfig) configPath(key string) string {
	return strings.TrimSuffix(c.ConfigPath, "/") + "/" + key
}
