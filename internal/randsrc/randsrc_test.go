package randsrc

import (
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_MitSeedDeterministisch(t *testing.T) {
	a := New(99, true)
	b := New(99, true)
	for i := 0; i < 50; i++ {
		assert.Equal(t, a.Uint64(), b.Uint64())
	}
}

func TestConcurrent_UmhuelltNurEinmal(t *testing.T) {
	cs := Concurrent(rand.NewPCG(1, 2))
	assert.Same(t, cs, Concurrent(cs))
}

func TestConcurrent_ParallelerZugriff(t *testing.T) {
	rnd := New(5, true)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				_ = rnd.IntN(3)
			}
		}()
	}
	wg.Wait()
}
