package flag

import (
	"strconv"

	"github.com/nategraf/restengine/config/store"
)

// Uint32 provides a thread-safe flag wrapping a uint32 value.
type Uint32 struct {
	flagImpl
}

// NewUint32 creates a uint32 flag. If a non-empty config path is specified,
// the flag registers a watcher against st and automatically updates its value.
func NewUint32(st *store.Store, cfgPath string) *Uint32 {
	f := &Uint32{}
	f.init(st, f.mapCfgValue, cfgPath)
	return f
}

// Get returns the stored flag value, blocking until an initial value is set.
func (f *Uint32) Get() uint32 {
	return f.get().(uint32)
}

// Set overwrites the stored flag value and triggers a change event.
func (f *Uint32) Set(val uint32) {
	f.set(val)
}

func (f *Uint32) mapCfgValue(cfg map[string]string) (interface{}, error) {
	v, err := strconv.ParseUint(firstMapElement(cfg), 10, 32)
	if err != nil {
		return nil, err
	}
	return uint32(v), nil
}

// Int32 provides a thread-safe flag wrapping an int32 value.
type Int32 struct {
	flagImpl
}

// NewInt32 creates an int32 flag. If a non-empty config path is specified,
// the flag registers a watcher against st and automatically updates its value.
func NewInt32(st *store.Store, cfgPath string) *Int32 {
	f := &Int32{}
	f.init(st, f.mapCfgValue, cfgPath)
	return f
}

// Get returns the stored flag value, blocking until an initial value is set.
func (f *Int32) Get() int32 {
	return f.get().(int32)
}

// Set overwrites the stored flag value and triggers a change event.
func (f *Int32) Set(val int32) {
	f.set(val)
}

func (f *Int32) mapCfgValue(cfg map[string]string) (interface{}, error) {
	v, err := strconv.ParseInt(firstMapElement(cfg), 10, 32)
	if err != nil {
		return nil, err
	}
	return int32(v), nil
}

// Int64 provides a thread-safe flag wrapping an int64 value.
type Int64 struct {
	flagImpl
}

// NewInt64 creates an int64 flag. If a non-empty config path is specified,
// the flag registers a watcher against st and automatically updates its value.
func NewInt64(st *store.Store, cfgPath string) *Int64 {
	f := &Int64{}
	f.init(st, f.mapCfgValue, cfgPath)
	return f
}

// Get returns the stored flag value, blocking until an initial value is set.
func (f *Int64) Get() int64 {
	return f.get().(int64)
}

// Set overwrites the stored flag value and triggers a change event.
func (f *Int64) Set(val int64) {
	f.set(val)
}

func (f *Int64) mapCfgValue(cfg map[string]string) (interface{}, error) {
	return strconv.ParseInt(firstMapElement(cfg), 10, 64)
}

// Uint64 provides a thread-safe flag wrapping a uint64 value.
type Uint64 struct {
	flagImpl
}

// NewUint64 creates a uint64 flag. If a non-empty config path is specified,
// the flag registers a watcher against st and automatically updates its value.
func NewUint64(st *store.Store, cfgPath string) *Uint64 {
	f := &Uint64{}
	f.init(st, f.mapCfgValue, cfgPath)
	return f
}

// Get returns the stored flag value, blocking until an initial value is set.
func (f *Uint64) Get() uint64 {
	return f.get().(uint64)
}

// Set overwrites the stored flag value and triggers a change event.
func (f *Uint64) Set(val uint64) {
	f.set(val)
}

func (f *Uint64) mapCfgValue(cfg map[string]string) (interface{}, error) {
	return strconv.ParseUint(firstMapElement(cfg), 10, 64)
}
