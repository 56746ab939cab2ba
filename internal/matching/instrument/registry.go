// Package instrument implements the dense instrument registry: the leaf
// component of the matching core. Each registered instrument is assigned a
// small, insertion-ordered integer id and owns exactly one order book,
// constructed by the caller when the instrument is added.
package instrument

import (
	"sync"

	"go.uber.org/zap"
)

// Info is the immutable record the registry stores for an instrument.
// Instruments are never destroyed once created.
type Info struct {
	ID     uint32
	Name   string
	Ticker string
}

// Registry maps dense instrument ids to Info records. It is safe for
// concurrent use; adding an instrument is rare relative to matching
// activity, so a single RWMutex guarding a slice is preferred over
// anything fancier.
type Registry struct {
	mu      sync.RWMutex
	entries []Info
	logger  *zap.Logger
}

// New creates an empty registry.
func New(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{logger: logger}
}

// Add assigns the next dense id (= current count) to a new instrument.
// Duplicate names/tickers are permitted; the id is authoritative. Add
// always succeeds.
func (r *Registry) Add(name, ticker string) uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := uint32(len(r.entries))
	r.entries = append(r.entries, Info{ID: id, Name: name, Ticker: ticker})

	r.logger.Info("instrument registered",
		zap.Uint32("instrument_id", id),
		zap.String("name", name),
		zap.String("ticker", ticker))

	return id
}

// Count returns the number of registered instruments.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Registered reports whether id names a registered instrument.
func (r *Registry) Registered(id uint32) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int(id) < len(r.entries)
}

// Lookup returns the Info for id, or false if id is out of range.
func (r *Registry) Lookup(id uint32) (Info, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if int(id) >= len(r.entries) {
		return Info{}, false
	}
	return r.entries[id], true
}

// Name returns the stored name for id.
func (r *Registry) Name(id uint32) (string, bool) {
	info, ok := r.Lookup(id)
	return info.Name, ok
}

// Ticker returns the stored ticker for id.
func (r *Registry) Ticker(id uint32) (string, bool) {
	info, ok := r.Lookup(id)
	return info.Ticker, ok
}
