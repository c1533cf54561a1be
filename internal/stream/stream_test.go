package stream

import (
	"testing"

	"cubetimer"
)

func timed(m cubetimer.Move, ms uint32) cubetimer.TimedMove {
	return cubetimer.TimedMove{Move: m, Milliseconds: ms}
}

func TestPushDrainOrder(t *testing.T) {
	q := NewQueue(10)
	q.Push(timed(cubetimer.R, 100))
	q.Push(timed(cubetimer.U, 200))
	q.Push(timed(cubetimer.RPrime, 300))

	if q.Len() != 3 {
		t.Errorf("Len = %d, want 3", q.Len())
	}
	moves := q.Drain()
	if len(moves) != 3 {
		t.Fatalf("drained %d moves, want 3", len(moves))
	}
	if moves[0].Move != cubetimer.R || moves[1].Move != cubetimer.U || moves[2].Move != cubetimer.RPrime {
		t.Errorf("drain order wrong: %v", moves)
	}
	if q.Len() != 0 {
		t.Error("queue should be empty after drain")
	}
	if q.Drain() != nil {
		t.Error("draining an empty queue should return nil")
	}
}

func TestOverflowDropsOldest(t *testing.T) {
	q := NewQueue(2)
	q.Push(timed(cubetimer.R, 100))
	q.Push(timed(cubetimer.U, 200))
	q.Push(timed(cubetimer.F, 300))

	moves := q.Drain()
	if len(moves) != 2 {
		t.Fatalf("drained %d moves, want 2", len(moves))
	}
	if moves[0].Move != cubetimer.U || moves[1].Move != cubetimer.F {
		t.Errorf("oldest move should be dropped: %v", moves)
	}
	if q.Dropped() != 1 {
		t.Errorf("Dropped = %d, want 1", q.Dropped())
	}
}
