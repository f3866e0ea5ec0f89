package retry

import (
	"strings"
	"time"

	"github.com/nategraf/restengine/config"
	"github.com/nategraf/restengine/config/flag"
	"github.com/nategraf/restengine/config/store"
)

var (
	// DefaultMaxAttempts is used when a config's max-attempts flag carries no
	// value.
	DefaultMaxAttempts uint32 = 3

	// DefaultBaseDelay is the first backoff wait, doubled on each subsequent
	// attempt before jitter is applied.
	DefaultBaseDelay = 100 * time.Millisecond

	// DefaultMaxDelay caps the exponential backoff growth.
	DefaultMaxDelay = 5 * time.Second

	// DefaultJitterFraction is the fraction of the computed delay randomized
	// away, in either direction.
	DefaultJitterFraction float32 = 0.2
)

// Config is implemented by objects that can be passed to Factory, mirroring
// the circuit-breaker middleware's Config contract.
//
// GetMaxAttempts returns the maximum number of send attempts (including the
// first).
//
// GetBaseDelay and GetMaxDelay return the backoff bounds in nanoseconds.
//
// GetJitterFraction returns the randomization fraction applied to each
// computed delay.
//
// GetDecider returns the collaborator consulted to decide whether a given
// attempt's outcome should be retried.
type Config interface {
	GetMaxAttempts() *flag.Uint32
	GetBaseDelay() *flag.Int64
	GetMaxDelay() *flag.Int64
	GetJitterFraction() *flag.Float32
	GetDecider() Decider
}

// StaticConfig defines a fixed retry configuration.
type StaticConfig struct {
	MaxAttempts    uint32
	BaseDelay      time.Duration
	MaxDelay       time.Duration
	JitterFraction float32
	Decider        Decider
}

// GetMaxAttempts returns the maximum number of send attempts.
func (c *StaticConfig) GetMaxAttempts() *flag.Uint32 {
	f := flag.NewUint32(nil, "")
	f.Set(c.MaxAttempts)
	return f
}

// GetBaseDelay returns the first backoff wait, in nanoseconds.
func (c *StaticConfig) GetBaseDelay() *flag.Int64 {
	f := flag.NewInt64(nil, "")
	f.Set(c.BaseDelay.Nanoseconds())
	return f
}

// GetMaxDelay returns the backoff cap, in nanoseconds.
func (c *StaticConfig) GetMaxDelay() *flag.Int64 {
	f := flag.NewInt64(nil, "")
	f.Set(c.MaxDelay.Nanoseconds())
	return f
}

// GetJitterFraction returns the randomization fraction.
func (c *StaticConfig) GetJitterFraction() *flag.Float32 {
	f := flag.NewFloat32(nil, "")
	f.Set(c.JitterFraction)
	return f
}

// GetDecider returns the configured retry decider.
func (c *StaticConfig) GetDecider() Decider {
	return c.Decider
}

// DynamicConfig defines a retry configuration synced to a configuration
// store, watched at ConfigPath/{max_attempts,base_delay,max_delay,jitter_fraction}.
type DynamicConfig struct {
	store      *store.Store
	Decider    Decider
	ConfigPath string
}

// GetMaxAttempts returns the maximum number of send attempts.
func (c *DynamicConfig) GetMaxAttempts() *flag.Uint32 {
	return flag.NewUint32(c.getStore(), c.configPath("max_attempts"))
}

// GetBaseDelay returns the first backoff wait, in nanoseconds.
func (c *DynamicConfig) GetBaseDelay() *flag.Int64 {
	return flag.NewInt64(c.getStore(), c.configPath("base_delay"))
}

// GetMaxDelay returns the backoff cap, in nanoseconds.
func (c *DynamicConfig) GetMaxDelay() *flag.Int64 {
	return flag.NewInt64(c.getStore(), c.configPath("max_delay"))
}

// GetJitterFraction returns the randomization fraction.
func (c *DynamicConfig) GetJitterFraction() *flag.Float32 {
	return flag.NewFloat32(c.getStore(), c.configPath("jitter_fraction"))
}

// GetDecider returns the configured retry decider.
func (c *DynamicConfig) GetDecider() Decider {
	return c.Decider
}

func (c *DynamicConfig) getStore() *store.Store {
	if c.store == nil {
		return &config.Store
	}
	return c.store
}

func (c *DynamicConfig) configPath(key string) string {
	return strings.TrimSuffix(c.ConfigPath, "/") + "/" + key
}
