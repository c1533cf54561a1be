package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"cubetimer"
)

var analyzeSessionID string

var analyzeCmd = &cobra.Command{
	Use:   "analyze [solve-index]",
	Short: "Break a recorded solve down by solving phase",
	Long: `Replay a solve's recorded move stream and show per-phase timing:
when each CFOP phase started and finished, moves per phase, idle time
between phases, and overall TPS and effective TPS.

Defaults to the last solve of the active session. Solves recorded without
a move stream (manual timer solves) cannot be analyzed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVar(&analyzeSessionID, "session", "", "Session ID (default: active session)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	history, err := openHistory()
	if err != nil {
		return err
	}
	defer history.CloseDatabase()

	statsSessionID = analyzeSessionID
	session, err := statsSession(history)
	if err != nil {
		return err
	}
	if len(session.Solves) == 0 {
		return fmt.Errorf("session has no solves")
	}

	index := len(session.Solves) - 1
	if len(args) == 1 {
		index, err = strconv.Atoi(args[0])
		if err != nil || index < 0 || index >= len(session.Solves) {
			return fmt.Errorf("solve index must be between 0 and %d", len(session.Solves)-1)
		}
	}
	solve := &session.Solves[index]
	if len(solve.Moves) == 0 {
		return fmt.Errorf("solve %d has no recorded move stream", index)
	}

	detail := solve.GenerateDetailedSplitTimes()

	fmt.Println(headerStyle.Render(fmt.Sprintf("Solve %d  %s", index, solveResult(solve))))
	fmt.Println(dimStyle.Render("Scramble: " + solve.Scramble.String()))
	fmt.Println()
	fmt.Println(headerStyle.Render(fmt.Sprintf("%-14s %10s %10s %6s %8s",
		"Phase", "Start", "End", "Moves", "TPS")))

	phases := []struct {
		name  string
		split *cubetimer.DetailedSplit
	}{
		{"Cross", &detail.Cross},
		{"F2L Pair 1", &detail.F2LPair[0]},
		{"F2L Pair 2", &detail.F2LPair[1]},
		{"F2L Pair 3", &detail.F2LPair[2]},
		{"F2L Pair 4", &detail.F2LPair[3]},
		{"OLL Cross", &detail.OLLCross},
		{"OLL", &detail.OLLFinish},
		{"PLL Corners", &detail.PLLCorner},
		{"PLL", &detail.PLLFinish},
	}
	for _, phase := range phases {
		duration := int64(phase.split.FinishTime) - int64(phase.split.PhaseStartTime)
		tps := 0.0
		if duration > 0 {
			tps = float64(phase.split.MoveCount) / (float64(duration) / 1000.0)
		}
		fmt.Printf("%-14s %10s %10s %6d %8.2f\n",
			phase.name,
			formatTime(int(phase.split.PhaseStartTime)),
			formatTime(int(phase.split.FinishTime)),
			phase.split.MoveCount, tps)
	}

	fmt.Println()
	fmt.Printf("Moves (outer turns): %d\n", detail.MoveCount)
	fmt.Printf("Idle time:           %s\n", formatTime(int(detail.IdleTime)))
	fmt.Printf("TPS:                 %.2f\n", detail.TPS)
	fmt.Printf("Effective TPS:       %.2f\n", detail.ETPS)
	return nil
}
