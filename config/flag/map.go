package flag

import "github.com/nategraf/restengine/config/store"

// Map provides a thread-safe flag wrapping a map[string]string value, used
// for configuration subtrees such as a weighted host-routing table where
// each key is a host candidate and each value is its selection weight.
type Map struct {
	flagImpl
}

// NewMap creates a map flag. If a non-empty config path is specified, the
// flag registers a watcher against st and automatically updates its value.
func NewMap(st *store.Store, cfgPath string) *Map {
	f := &Map{}
	f.init(st, f.mapCfgValue, cfgPath)
	return f
}

// Get returns the stored flag value, blocking until an initial value is set.
func (f *Map) Get() map[string]string {
	return f.get().(map[string]string)
}

// Set overwrites the stored flag value and triggers a change event.
func (f *Map) Set(val map[string]string) {
	f.set(val)
}

func (f *Map) mapCfgValue(cfg map[string]string) (interface{}, error) {
	return cfg, nil
}
