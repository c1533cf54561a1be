package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"cubetimer"
)

var statsSessionID string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show session statistics",
	Long: `Show WCA-style statistics for a session: best solve, last and best
average of 5 and 12, and the session average.`,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().StringVar(&statsSessionID, "session", "", "Session ID (default: active session)")
}

func statsSession(history *cubetimer.History) (*cubetimer.Session, error) {
	if statsSessionID != "" {
		return findSession(history, statsSessionID)
	}
	if session := history.ActiveSession(); session != nil {
		return session, nil
	}
	return nil, fmt.Errorf("no active session; specify --session")
}

func runStats(cmd *cobra.Command, args []string) error {
	history, err := openHistory()
	if err != nil {
		return err
	}
	defer history.CloseDatabase()

	session, err := statsSession(history)
	if err != nil {
		return err
	}

	best, bestSolve := session.BestSolve()
	bestAo5, _ := session.BestAvgOf(5)
	bestAo12, _ := session.BestAvgOf(12)

	title := session.Type.String()
	if session.Name != "" {
		title = fmt.Sprintf("%s (%s)", session.Name, session.Type)
	}
	fmt.Println(headerStyle.Render(title))
	fmt.Printf("Solves:       %d\n", len(session.Solves))
	fmt.Printf("Best solve:   %s\n", formatTime(best))
	fmt.Printf("Last ao5:     %s\n", formatTime(session.AvgOfLast(5, false)))
	fmt.Printf("Last ao12:    %s\n", formatTime(session.AvgOfLast(12, false)))
	fmt.Printf("Best ao5:     %s\n", formatTime(bestAo5))
	fmt.Printf("Best ao12:    %s\n", formatTime(bestAo12))
	fmt.Printf("Session avg:  %s\n", formatTime(session.SessionAvg()))

	if bestSolve != nil && len(bestSolve.Scramble) > 0 {
		fmt.Println(dimStyle.Render("Best scramble: " + bestSolve.Scramble.String()))
	}
	return nil
}
