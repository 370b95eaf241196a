package randsrc

import (
	"math/rand/v2"
	"sync"
)

type globalSource struct{}

func (globalSource) Uint64() uint64 {
	return rand.Uint64()
}

func (globalSource) SourceIsConcurrent() {}

// ConcurrentSource ist eine rand.Source, die gleichzeitig aus mehreren Goroutinen genutzt werden darf.
type ConcurrentSource interface {
	rand.Source
	SourceIsConcurrent()
}

type lockedSource struct {
	mu  sync.Mutex
	src rand.Source
}

func (s *lockedSource) Uint64() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.src.Uint64()
}

func (s *lockedSource) SourceIsConcurrent() {}

// Concurrent schützt src mit einem Mutex, sofern src nicht bereits nebenläufig nutzbar ist.
func Concurrent(src rand.Source) ConcurrentSource {
	if cs, ok := src.(ConcurrentSource); ok {
		return cs
	}
	return &lockedSource{src: src}
}

// New liefert einen prozessweit teilbaren Zufallsgenerator. Ohne seed wird die
// Laufzeit-Quelle verwendet, mit seed eine deterministische PCG-Folge.
func New(seed uint64, seeded bool) *rand.Rand {
	if !seeded {
		return rand.New(globalSource{})
	}
	return rand.New(Concurrent(rand.NewPCG(seed, seed)))
}
