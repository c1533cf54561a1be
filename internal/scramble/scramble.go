// Package scramble supplies scramble sequences for new solves and a
// background worker that keeps the next scramble ready while the current
// one is on screen.
package scramble

import (
	"math/rand"
	"sync"

	"cubetimer"
)

// Provider yields a scramble move sequence.
type Provider interface {
	Scramble() cubetimer.MoveSequence
}

// Random generates fixed-length random-move scrambles. Consecutive moves
// never share an outer block, and three consecutive moves never turn only
// two opposing faces.
type Random struct {
	length int
	rng    *rand.Rand
}

// NewRandom creates a random provider. length is the scramble length in
// moves; seed pins the sequence for tests (use a time-based seed in
// production).
func NewRandom(length int, seed int64) *Random {
	return &Random{length: length, rng: rand.New(rand.NewSource(seed))}
}

var scrambleFaces = []cubetimer.Face{
	cubetimer.FaceU, cubetimer.FaceD, cubetimer.FaceL,
	cubetimer.FaceR, cubetimer.FaceF, cubetimer.FaceB,
}

var scrambleTurns = []cubetimer.Turn{cubetimer.CW, cubetimer.CCW, cubetimer.Double}

// opposite pairs faces on the same axis.
var opposite = map[cubetimer.Face]cubetimer.Face{
	cubetimer.FaceU: cubetimer.FaceD, cubetimer.FaceD: cubetimer.FaceU,
	cubetimer.FaceL: cubetimer.FaceR, cubetimer.FaceR: cubetimer.FaceL,
	cubetimer.FaceF: cubetimer.FaceB, cubetimer.FaceB: cubetimer.FaceF,
}

// Scramble generates a new scramble sequence.
func (r *Random) Scramble() cubetimer.MoveSequence {
	seq := make(cubetimer.MoveSequence, 0, r.length)
	for len(seq) < r.length {
		face := scrambleFaces[r.rng.Intn(len(scrambleFaces))]
		if len(seq) >= 1 && seq[len(seq)-1].Face == face {
			continue
		}
		if len(seq) >= 2 && seq[len(seq)-1].Face == opposite[face] && seq[len(seq)-2].Face == face {
			continue
		}
		seq = append(seq, cubetimer.Move{
			Face: face,
			Turn: scrambleTurns[r.rng.Intn(len(scrambleTurns))],
		})
	}
	return seq
}

// Worker generates scrambles on a background goroutine. It owns no shared
// state except a single request slot guarded by a mutex and condition
// variable; the foreground polls Next for completed scrambles and must
// not be called from other goroutines.
type Worker struct {
	provider Provider

	mu        sync.Mutex
	cond      *sync.Cond
	requested bool
	closed    bool
	result    cubetimer.MoveSequence
	ready     bool
}

// NewWorker starts a scramble worker.
func NewWorker(provider Provider) *Worker {
	w := &Worker{provider: provider}
	w.cond = sync.NewCond(&w.mu)
	go w.run()
	return w
}

func (w *Worker) run() {
	for {
		w.mu.Lock()
		for !w.requested && !w.closed {
			w.cond.Wait()
		}
		if w.closed {
			w.mu.Unlock()
			return
		}
		w.requested = false
		w.mu.Unlock()

		seq := w.provider.Scramble()

		w.mu.Lock()
		w.result = seq
		w.ready = true
		w.mu.Unlock()
	}
}

// Request asks the worker for a new scramble. A request made while one is
// already pending collapses into it.
func (w *Worker) Request() {
	w.mu.Lock()
	w.requested = true
	w.ready = false
	w.mu.Unlock()
	w.cond.Signal()
}

// Next returns a completed scramble if one is ready. It never blocks.
func (w *Worker) Next() (cubetimer.MoveSequence, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.ready {
		return nil, false
	}
	w.ready = false
	return w.result, true
}

// Close stops the worker goroutine.
func (w *Worker) Close() {
	w.mu.Lock()
	w.closed = true
	w.mu.Unlock()
	w.cond.Signal()
}
