package config

import (
	"github.com/nategraf/restengine/config/provider"
	"github.com/nategraf/restengine/config/store"
)

var (
	// Store is a global configuration store instance that is used to configure
	// the various restengine components (retry backoff, circuit breakers,
	// weighted host routing, transport options).
	Store store.Store
)

// SetDefaults updates the global store instance with the default values for a
// particular configuration path.
func SetDefaults(path string, cfg map[string]string) error {
	_, err := Store.SetKeys(0, path, cfg)
	return err
}

func init() {
	// Register built-in providers
	Store.RegisterValueProvider(provider.NewEnvVars())
}
