// Package counter implements the counter-sink collaborator shared by readers: named
// monotonic counters supporting concurrent atomic increment without coordination.
package counter

import (
	"sync"
	"sync/atomic"
)

// A CounterSet is a collection of named monotonic counters. It is safe for concurrent use
// by multiple readers across work items; increments are atomic and never coordinated.
type CounterSet struct {
	lock     sync.RWMutex
	counters map[string]*int64
}

// CreateCounterSet instantiates a new, empty CounterSet
func CreateCounterSet() *CounterSet {
	return &CounterSet{
		counters: make(map[string]*int64),
	}
}

// Inc adds delta to the counter registered under name, creating it at zero if needed
func (cs *CounterSet) Inc(name string, delta int64) {
	cs.lock.RLock()
	c, ok := cs.counters[name]
	cs.lock.RUnlock()
	if !ok {
		cs.lock.Lock()
		c, ok = cs.counters[name]
		if !ok {
			c = new(int64)
			cs.counters[name] = c
		}
		cs.lock.Unlock()
	}
	atomic.AddInt64(c, delta)
}

// Value returns the current value of the counter registered under name, or zero if no such
// counter exists
func (cs *CounterSet) Value(name string) int64 {
	cs.lock.RLock()
	c, ok := cs.counters[name]
	cs.lock.RUnlock()
	if !ok {
		return 0
	}
	return atomic.LoadInt64(c)
}

// Values returns a snapshot of every counter in this CounterSet
func (cs *CounterSet) Values() map[string]int64 {
	cs.lock.RLock()
	defer cs.lock.RUnlock()
	snapshot := make(map[string]int64, len(cs.counters))
	for name, c := range cs.counters {
		snapshot[name] = atomic.LoadInt64(c)
	}
	return snapshot
}
