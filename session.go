package cubetimer

import "sort"

// Session is an ordered collection of solves of a single type. An empty
// session is never persisted.
type Session struct {
	ID     string
	Name   string
	Type   SolveType
	Update SyncRecord
	Solves []Solve

	// Dirty marks whether the persisted copy is stale.
	Dirty bool
}

// AvgOf computes the WCA trimmed-mean average of a time vector in
// milliseconds. DNF entries collate as the largest possible time. Fewer
// than three times, or a DNF surviving the trim, yields DNF. The mean is
// rounded to the nearest millisecond.
func AvgOf(times []int) int {
	sorted := make([]int, len(times))
	copy(sorted, times)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a == DNF {
			return false
		}
		if b == DNF {
			return true
		}
		return a < b
	})
	if len(sorted) <= 2 {
		return DNF
	}
	toRemove := (len(sorted) + 39) / 40
	sorted = sorted[toRemove : len(sorted)-toRemove]
	sum := 0
	for _, t := range sorted {
		if t == DNF {
			return DNF
		}
		sum += t
	}
	return int(float32(sum)/float32(len(sorted)) + 0.5)
}

// AvgOfLast computes the trimmed-mean average of the last count solves.
// With ignoreDNF set, DNF solves are dropped before averaging; otherwise
// they enter the vector as the DNF sentinel. Fewer than count solves
// yields DNF.
func (s *Session) AvgOfLast(count int, ignoreDNF bool) int {
	if count > len(s.Solves) {
		return DNF
	}
	start := len(s.Solves) - count
	times := make([]int, 0, count)
	for i := start; i < len(s.Solves); i++ {
		solve := &s.Solves[i]
		if !solve.OK {
			if !ignoreDNF {
				times = append(times, DNF)
			}
			continue
		}
		times = append(times, int(solve.Time))
	}
	return AvgOf(times)
}

// BestSolve returns the lowest time among successful solves and the solve
// that produced it, or (DNF, nil) when every solve is a DNF.
func (s *Session) BestSolve() (int, *Solve) {
	best := DNF
	var bestSolve *Solve
	for i := range s.Solves {
		solve := &s.Solves[i]
		if !solve.OK {
			continue
		}
		if best == DNF || int(solve.Time) < best {
			best = int(solve.Time)
			bestSolve = solve
		}
	}
	return best, bestSolve
}

// BestAvgOf slides a window of exactly count over the solves and returns
// the lowest non-DNF trimmed-mean average along with the window's starting
// index, or (DNF, -1) when no window produces an average.
func (s *Session) BestAvgOf(count int) (int, int) {
	if len(s.Solves) < count {
		return DNF, -1
	}
	best := DNF
	start := -1
	for i := 0; i <= len(s.Solves)-count; i++ {
		times := make([]int, 0, count)
		for j := 0; j < count; j++ {
			solve := &s.Solves[i+j]
			if solve.OK {
				times = append(times, int(solve.Time))
			} else {
				times = append(times, DNF)
			}
		}
		avg := AvgOf(times)
		if avg == DNF {
			continue
		}
		if best == DNF || avg < best {
			best = avg
			start = i
		}
	}
	return best, start
}

// SessionAvg is the trimmed-mean average over every successful solve in
// the session.
func (s *Session) SessionAvg() int {
	return s.AvgOfLast(len(s.Solves), true)
}
