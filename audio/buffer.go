package audio

import (
	"fmt"
	"sync"
)

// ring is a single-producer/single-consumer circular sample buffer: the
// core's step loop writes one float64 sample at a time, and a backend's
// device callback drains a batch.
//
// Grounded on lib/speakers/circular_buffer.go, kept nearly verbatim
// (sync.Cond-gated head/tail indices, one free slot kept open so full and
// empty are distinguishable), renamed out of the exported CircularBuffer
// name since nothing outside this package needs to hold one directly.
type ring struct {
	buffer []float64
	head   int
	tail   int
	size   int
	lock   sync.Mutex
	cond   *sync.Cond
}

func newRing(size int) *ring {
	if size < 2 {
		panic("audio: ring buffer size must be at least 2")
	}
	r := &ring{size: size, buffer: make([]float64, size)}
	r.cond = sync.NewCond(&r.lock)
	return r
}

func (r *ring) write(value float64) error {
	r.cond.L.Lock()
	defer r.cond.L.Unlock()
	if r.full() {
		return fmt.Errorf("audio: ring buffer is full")
	}
	r.buffer[r.head] = value
	r.head = r.next(r.head)
	r.cond.Signal()
	return nil
}

func (r *ring) readInto(dst []float32) int {
	r.cond.L.Lock()
	defer r.cond.L.Unlock()
	if len(dst) > r.availableLocked() {
		return 0
	}
	for i := range dst {
		dst[i] = float32(r.buffer[r.tail])
		r.tail = r.next(r.tail)
	}
	r.cond.Signal()
	return len(dst)
}

func (r *ring) readIntoStereo(dst [][2]float64) int {
	r.cond.L.Lock()
	defer r.cond.L.Unlock()
	if len(dst) > r.availableLocked() {
		return 0
	}
	for i := range dst {
		v := r.buffer[r.tail]
		dst[i][0], dst[i][1] = v, v
		r.tail = r.next(r.tail)
	}
	r.cond.Signal()
	return len(dst)
}

func (r *ring) read() (float64, error) {
	r.cond.L.Lock()
	defer r.cond.L.Unlock()
	if r.empty() {
		return 0, fmt.Errorf("audio: ring buffer is empty")
	}
	v := r.buffer[r.tail]
	r.tail = r.next(r.tail)
	return v, nil
}

func (r *ring) available() int {
	r.cond.L.Lock()
	defer r.cond.L.Unlock()
	return r.availableLocked()
}

func (r *ring) availableLocked() int {
	return ((r.head-r.tail)%r.size + r.size) % r.size
}

func (r *ring) empty() bool { return r.head == r.tail }
func (r *ring) full() bool  { return r.next(r.head) == r.tail }
func (r *ring) next(i int) int {
	if i+1 >= r.size {
		return 0
	}
	return i + 1
}
