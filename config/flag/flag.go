// Package flag provides typed thread-safe flags that can be dynamically
// updated by the registered restengine config providers.
//
// Flags are the building block used by the policy package to expose tunable,
// hot-reloadable settings (retry backoff parameters, circuit-breaker
// thresholds, weighted host-routing tables, transport TLS options) without
// requiring callers to restart a client to pick up a configuration change.
package flag

import (
	"sync/atomic"

	"github.com/nategraf/restengine/config/store"
)

type cfgEventToValueMapper func(map[string]string) (interface{}, error)

// flagImpl implements the value storage, change notification and dynamic
// update plumbing shared by every typed flag in this package.
type flagImpl struct {
	// The wrapped value.
	val atomic.Value

	// Set to 1 once the initial value has been observed; guards hasValueChan
	// so it is only closed once.
	hasValue uint32

	// Closed once the flag receives its first value.
	hasValueChan chan struct{}

	// Receives a notification whenever the flag value changes.
	changedChan chan struct{}

	// Signals the watcher goroutine to shut down.
	doneChan chan struct{}

	// Maps a raw configuration snapshot into the flag's concrete type.
	valueMapper cfgEventToValueMapper
}

// init wires the flag to the given store at cfgPath. A nil store or an empty
// cfgPath disables dynamic updates; the flag must then be populated via Set.
func (f *flagImpl) init(st *store.Store, valueMapper cfgEventToValueMapper, cfgPath string) {
	f.valueMapper = valueMapper
	f.changedChan = make(chan struct{}, 1)
	f.hasValueChan = make(chan struct{})

	if st == nil || cfgPath == "" {
		return
	}

	f.doneChan = make(chan struct{})

	go func() {
		cfgChan, unsubFn := st.Watch(cfgPath)
		defer unsubFn()

		for {
			select {
			case cfg := <-cfgChan:
				val, err := f.valueMapper(cfg)
				if err != nil {
					continue
				}
				f.set(val)
			case <-f.doneChan:
				f.doneChan <- struct{}{}
				return
			}
		}
	}()
}

// get returns the stored value, blocking until an initial value has been set.
func (f *flagImpl) get() interface{} {
	<-f.hasValueChan
	return f.val.Load()
}

// set stores val and notifies any change listener.
func (f *flagImpl) set(val interface{}) {
	f.val.Store(val)

	if atomic.CompareAndSwapUint32(&f.hasValue, 0, 1) {
		close(f.hasValueChan)
	}

	select {
	case f.changedChan <- struct{}{}:
	default:
	}
}

// HasValue reports whether the flag has observed an initial value yet.
func (f *flagImpl) HasValue() bool {
	return atomic.LoadUint32(&f.hasValue) == 1
}

// ChangeChan returns a channel on which callers can listen for flag value
// change events.
func (f *flagImpl) ChangeChan() <-chan struct{} {
	return f.changedChan
}

// CancelDynamicUpdates disables dynamic updates from the configuration store.
func (f *flagImpl) CancelDynamicUpdates() {
	if f.doneChan == nil {
		return
	}

	f.doneChan <- struct{}{}
	<-f.doneChan
	close(f.doneChan)
	f.doneChan = nil
}

// firstMapElement returns an arbitrary element from m. It is only meaningful
// for single-key configuration snapshots (scalar flags watch a single leaf).
func firstMapElement(m map[string]string) string {
	for _, v := range m {
		return v
	}
	return ""
}
