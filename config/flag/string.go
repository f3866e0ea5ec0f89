package flag

import "github.com/nategraf/restengine/config/store"

// String provides a thread-safe flag wrapping a string value. Its value can
// be dynamically updated via a watched configuration key or manually set
// using its Set method.
type String struct {
	flagImpl
}

// NewString creates a string flag. If a non-empty config path is specified,
// the flag registers a watcher against st and automatically updates its
// value.
func NewString(st *store.Store, cfgPath string) *String {
	f := &String{}
	f.init(st, f.mapCfgValue, cfgPath)
	return f
}

// Get returns the stored flag value, blocking until an initial value is set.
func (f *String) Get() string {
	return f.get().(string)
}

// Set overwrites the stored flag value and triggers a change event.
func (f *String) Set(val string) {
	f.set(val)
}

func (f *String) mapCfgValue(cfg map[string]string) (interface{}, error) {
	return firstMapElement(cfg), nil
}
