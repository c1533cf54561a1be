package cubetimer

import "testing"

func okSolve(timeMs uint32) Solve {
	return Solve{OK: true, Time: timeMs}
}

func dnfSolve(timeMs uint32) Solve {
	return Solve{OK: false, Time: timeMs}
}

func TestAvgOfTooFewTimes(t *testing.T) {
	if got := AvgOf(nil); got != DNF {
		t.Errorf("AvgOf(nil) = %d, want DNF", got)
	}
	if got := AvgOf([]int{10000}); got != DNF {
		t.Errorf("AvgOf one time = %d, want DNF", got)
	}
	if got := AvgOf([]int{10000, 12000}); got != DNF {
		t.Errorf("AvgOf two times = %d, want DNF", got)
	}
}

func TestAvgOfThreeTrimsToMiddle(t *testing.T) {
	if got := AvgOf([]int{10000, 12000, 11000}); got != 11000 {
		t.Errorf("AvgOf = %d, want 11000", got)
	}
}

func TestAvgOfFive(t *testing.T) {
	if got := AvgOf([]int{5000, 1000, 3000, 2000, 4000}); got != 3000 {
		t.Errorf("AvgOf = %d, want 3000", got)
	}
}

func TestAvgOfRoundsToNearest(t *testing.T) {
	// Interior mean 11000/3 = 3666.67, rounds up.
	if got := AvgOf([]int{1000, 2000, 4000, 5000, 6000}); got != 3667 {
		t.Errorf("AvgOf = %d, want 3667", got)
	}
}

func TestAvgOfSingleDNFIsTrimmed(t *testing.T) {
	// One DNF collates last and falls inside the trimmed edge.
	if got := AvgOf([]int{1000, 2000, DNF, 4000, 5000}); got != 3667 {
		t.Errorf("AvgOf = %d, want 3667", got)
	}
}

func TestAvgOfInteriorDNFForcesDNF(t *testing.T) {
	// Two DNFs with a trim of one per side leave a DNF in the interior.
	if got := AvgOf([]int{1000, 2000, DNF, DNF, 5000}); got != DNF {
		t.Errorf("AvgOf = %d, want DNF", got)
	}
	if got := AvgOf([]int{10000, DNF, 11000}); got != DNF {
		t.Errorf("AvgOf of three with a DNF = %d, want DNF", got)
	}
}

func TestAvgOfLast(t *testing.T) {
	session := Session{Solves: []Solve{okSolve(10000), okSolve(12000), okSolve(11000)}}
	if got := session.AvgOfLast(3, false); got != 11000 {
		t.Errorf("AvgOfLast(3) = %d, want 11000", got)
	}
	if got := session.AvgOfLast(4, false); got != DNF {
		t.Errorf("AvgOfLast beyond session length = %d, want DNF", got)
	}
}

func TestAvgOfLastWindow(t *testing.T) {
	session := Session{Solves: []Solve{
		okSolve(60000), okSolve(10000), okSolve(12000), okSolve(11000),
	}}
	// Only the last three participate; the slow first solve is outside
	// the window.
	if got := session.AvgOfLast(3, false); got != 11000 {
		t.Errorf("AvgOfLast(3) = %d, want 11000", got)
	}
}

func TestAvgOfLastIgnoreDNFDropsEntries(t *testing.T) {
	session := Session{Solves: []Solve{
		okSolve(10000), dnfSolve(9000), okSolve(12000), okSolve(11000),
	}}
	// With DNFs dropped the vector shrinks to three entries.
	if got := session.AvgOfLast(4, true); got != 11000 {
		t.Errorf("AvgOfLast(4, true) = %d, want 11000", got)
	}
	// Without dropping, the DNF collates last and is trimmed along with
	// the fastest solve, leaving {11000, 12000}.
	if got := session.AvgOfLast(4, false); got != 11500 {
		t.Errorf("AvgOfLast(4, false) = %d, want 11500", got)
	}
}

func TestBestSolve(t *testing.T) {
	session := Session{Solves: []Solve{
		okSolve(12000), dnfSolve(5000), okSolve(10000), okSolve(11000),
	}}
	best, solve := session.BestSolve()
	if best != 10000 {
		t.Errorf("BestSolve = %d, want 10000", best)
	}
	if solve == nil || solve.Time != 10000 {
		t.Error("BestSolve should yield the winning solve")
	}
}

func TestBestSolveAllDNF(t *testing.T) {
	session := Session{Solves: []Solve{dnfSolve(5000), dnfSolve(6000)}}
	best, solve := session.BestSolve()
	if best != DNF || solve != nil {
		t.Errorf("BestSolve = %d, %v; want DNF, nil", best, solve)
	}
}

func TestBestAvgOf(t *testing.T) {
	session := Session{Solves: []Solve{
		okSolve(10000), okSolve(12000), okSolve(11000), okSolve(20000), okSolve(30000),
	}}
	best, start := session.BestAvgOf(3)
	if best != 11000 {
		t.Errorf("BestAvgOf = %d, want 11000", best)
	}
	if start != 0 {
		t.Errorf("BestAvgOf start = %d, want 0", start)
	}
}

func TestBestAvgOfSkipsDNFWindows(t *testing.T) {
	session := Session{Solves: []Solve{
		okSolve(10000), dnfSolve(0), dnfSolve(0), okSolve(20000), okSolve(21000), okSolve(22000),
	}}
	best, start := session.BestAvgOf(3)
	// Windows with two DNFs cannot average; the first window where the
	// single DNF trims away wins.
	if best != 21000 || start != 2 {
		t.Errorf("BestAvgOf = %d at %d, want 21000 at 2", best, start)
	}
}

func TestBestAvgOfTooFewSolves(t *testing.T) {
	session := Session{Solves: []Solve{okSolve(10000)}}
	best, start := session.BestAvgOf(5)
	if best != DNF || start != -1 {
		t.Errorf("BestAvgOf = %d at %d, want DNF at -1", best, start)
	}
}

func TestSessionAvg(t *testing.T) {
	session := Session{Solves: []Solve{okSolve(10000), okSolve(12000), okSolve(11000)}}
	if got := session.SessionAvg(); got != 11000 {
		t.Errorf("SessionAvg = %d, want 11000", got)
	}
}

func TestSolveTypeNames(t *testing.T) {
	if Solve3x3x3.String() != "3x3x3" {
		t.Errorf("Solve3x3x3 name = %q", Solve3x3x3.String())
	}
	typ, ok := SolveTypeByName("3x3x3 One Handed")
	if !ok || typ != Solve3x3x3OneHanded {
		t.Errorf("SolveTypeByName = %v, %v", typ, ok)
	}
	if _, ok := SolveTypeByName("7x7x7"); ok {
		t.Error("Unknown type name should not resolve")
	}
}
