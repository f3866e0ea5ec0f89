package flag

import (
	"errors"
	"strings"

	"github.com/nategraf/restengine/config/store"
)

var errNotBoolean = errors.New("not a boolean value")

// Bool provides a thread-safe flag wrapping a boolean value. Its value can be
// dynamically updated via a watched configuration key or manually set using
// its Set method.
//
// When processing dynamic updates, Bool treats the values "true"
// (case-insensitive) and "1" as true and "false" (case-insensitive) and "0"
// as false.
type Bool struct {
	flagImpl
}

// NewBool creates a bool flag. If a non-empty config path is specified, the
// flag registers a watcher against st and automatically updates its value.
func NewBool(st *store.Store, cfgPath string) *Bool {
	f := &Bool{}
	f.init(st, f.mapCfgValue, cfgPath)
	return f
}

// Get returns the stored flag value, blocking until an initial value is set.
func (f *Bool) Get() bool {
	return f.get().(bool)
}

// Set overwrites the stored flag value and triggers a change event.
func (f *Bool) Set(val bool) {
	f.set(val)
}

func (f *Bool) mapCfgValue(cfg map[string]string) (interface{}, error) {
	switch strings.ToLower(firstMapElement(cfg)) {
	case "true", "1":
		return true, nil
	case "false", "0":
		return false, nil
	default:
		return nil, errNotBoolean
	}
}
