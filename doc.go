// Package cubetimer implements the core of a Rubik's cube speedsolving
// timer: cube state tracking, CFOP phase inference, solve history with
// session statistics, and durable storage in an embedded key-value store.
//
// # Cube Simulation
//
// The Cube3x3 type tracks an exact cube state as corner and edge
// permutations with orientations:
//
//	cube := cubetimer.NewCube()
//	cube.Apply(cubetimer.MoveSequence{cubetimer.R, cubetimer.U, cubetimer.RPrime, cubetimer.UPrime})
//	fmt.Println("Solved:", cube.IsSolved())
//
// The Faces projection exposes sticker colors for rendering and for the
// solving phase predicates:
//
//	faces := cube.Faces()
//	fmt.Println(faces.Color(cubetimer.CubeFaceU, 0, 1))
//
// # Phase Inference
//
// TransitionSolveState advances a monotone state machine through the CFOP
// phases (Cross, F2L pairs, OLL, PLL) as moves are replayed. A recorded
// Solve can regenerate its per-phase split times and efficiency metrics
// from its timed move stream:
//
//	solve.GenerateSplitTimes()
//	detail := solve.GenerateDetailedSplitTimes()
//	fmt.Printf("eTPS: %.2f\n", detail.ETPS)
//
// # History
//
// History owns the session list and the database handle. Solves recorded
// through it are appended to the active session and committed as a single
// atomic batch:
//
//	history := cubetimer.NewHistory(cubetimer.NewUUIDGenerator())
//	if err := history.OpenDatabase(path, nil); err != nil {
//	    log.Fatal(err)
//	}
//	defer history.CloseDatabase()
//	history.RecordSolve(cubetimer.Solve3x3x3, solve)
//
// Statistics follow the WCA trimmed-mean rules; DNF solves participate as
// the DNF sentinel rather than as errors.
package cubetimer
