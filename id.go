package fsmx

import (
	"math/rand/v2"
	"sync"
)

// StateID identifies a state within a machine. The zero value is the unset
// sentinel and never names a real state.
type StateID uint32

// EventID constrains alphabet symbol types to the integral types. The zero
// value of a symbol type means "no event" and never appears in an alphabet.
type EventID interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

var (
	idMu  sync.Mutex
	idRnd *rand.Rand // nil selects the process-wide source
)

// SetIDSource replaces the random source behind GenerateStateID. Passing nil
// restores the process-wide source. Installing a fixed-seed source makes
// generated ids reproducible in tests.
func SetIDSource(src rand.Source) {
	idMu.Lock()
	defer idMu.Unlock()

	if src == nil {
		idRnd = nil
		return
	}
	idRnd = rand.New(src)
}

func randUint64() uint64 {
	idMu.Lock()
	defer idMu.Unlock()

	if idRnd != nil {
		return idRnd.Uint64()
	}
	return rand.Uint64()
}

// GenerateStateID produces a random state id by sampling the random source
// one byte per id byte. Ids are non-sequential on purpose, so nothing can
// lean on accidental ordering. The unset sentinel is never returned.
func GenerateStateID() StateID {
	for {
		var id StateID
		for n := 0; n < 4; n++ {
			b := randUint64() & 0xFF
			id |= StateID(b) << (n * 8)
		}
		if id != 0 {
			return id
		}
	}
}

// sttKey packs a (state, event) pair into the transition table key: state id
// in the high half, event id in the low half.
func sttKey[E EventID](state StateID, event E) uint64 {
	return uint64(state)<<32 | uint64(event)&0xFFFFFFFF
}
