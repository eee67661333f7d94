package model

import (
	"bytes"
	"sort"
)

// UTXOSet maps outpoints to the spendable outputs they represent. Every entry
// was produced by an accepted transaction and not yet consumed by one.
//
// A set is never shared mutably between concurrent validation attempts: each
// candidate path works against its own Clone, and only the commit path touches
// the authoritative set.
type UTXOSet struct {
	entries map[Outpoint]Output
}

// NewUTXOSet creates an empty set.
func NewUTXOSet() *UTXOSet {
	return &UTXOSet{entries: make(map[Outpoint]Output)}
}

// Add maps outpoint to output, overwriting any existing entry.
func (s *UTXOSet) Add(outpoint Outpoint, output Output) {
	s.entries[outpoint] = output
}

// Remove deletes the entry for outpoint. No-op if absent.
func (s *UTXOSet) Remove(outpoint Outpoint) {
	delete(s.entries, outpoint)
}

// Contains reports whether outpoint is spendable in this set.
func (s *UTXOSet) Contains(outpoint Outpoint) bool {
	_, ok := s.entries[outpoint]
	return ok
}

// Get returns the output for outpoint and whether it exists.
func (s *UTXOSet) Get(outpoint Outpoint) (Output, bool) {
	out, ok := s.entries[outpoint]
	return out, ok
}

// Len returns the number of spendable outputs.
func (s *UTXOSet) Len() int {
	return len(s.entries)
}

// Outpoints enumerates all spendable outpoints in a deterministic order
// (by transaction id, then output index).
func (s *UTXOSet) Outpoints() []Outpoint {
	outpoints := make([]Outpoint, 0, len(s.entries))
	for o := range s.entries {
		outpoints = append(outpoints, o)
	}
	sort.Slice(outpoints, func(i, j int) bool {
		if c := bytes.Compare(outpoints[i].TxID[:], outpoints[j].TxID[:]); c != 0 {
			return c < 0
		}
		return outpoints[i].Index < outpoints[j].Index
	})
	return outpoints
}

// Clone returns a deep copy, independent of subsequent mutations of the source.
func (s *UTXOSet) Clone() *UTXOSet {
	clone := &UTXOSet{entries: make(map[Outpoint]Output, len(s.entries))}
	for outpoint, output := range s.entries {
		clone.entries[outpoint] = output.Clone()
	}
	return clone
}
