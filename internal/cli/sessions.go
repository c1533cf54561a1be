package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"cubetimer"
)

var mergeName string

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Manage solve sessions",
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all sessions",
	RunE:  runSessionsList,
}

var sessionsDeleteCmd = &cobra.Command{
	Use:   "delete <session-id>",
	Short: "Delete a session and its solves",
	Long: `Delete a session. Solve records still referenced by another session
are kept; only orphaned solves are removed from the database.`,
	Args: cobra.ExactArgs(1),
	RunE: runSessionsDelete,
}

var sessionsSplitCmd = &cobra.Command{
	Use:   "split <session-id> <index>",
	Short: "Split a session in two before the given solve index",
	Args:  cobra.ExactArgs(2),
	RunE:  runSessionsSplit,
}

var sessionsMergeCmd = &cobra.Command{
	Use:   "merge <first-id> <second-id>",
	Short: "Merge two sessions of the same type",
	Args:  cobra.ExactArgs(2),
	RunE:  runSessionsMerge,
}

var sessionsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear the active session so the next solve starts a new one",
	RunE:  runSessionsReset,
}

func init() {
	rootCmd.AddCommand(sessionsCmd)
	sessionsCmd.AddCommand(sessionsListCmd)
	sessionsCmd.AddCommand(sessionsDeleteCmd)
	sessionsCmd.AddCommand(sessionsSplitCmd)
	sessionsCmd.AddCommand(sessionsMergeCmd)
	sessionsCmd.AddCommand(sessionsResetCmd)

	sessionsMergeCmd.Flags().StringVar(&mergeName, "name", "", "Name for the merged session")
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func runSessionsList(cmd *cobra.Command, args []string) error {
	history, err := openHistory()
	if err != nil {
		return err
	}
	defer history.CloseDatabase()

	if len(history.Sessions) == 0 {
		fmt.Println(dimStyle.Render("No sessions recorded."))
		return nil
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("%-10s %-18s %-16s %6s %10s %10s",
		"ID", "Type", "Name", "Count", "Best", "Avg")))
	for _, session := range history.Sessions {
		best, _ := session.BestSolve()
		line := fmt.Sprintf("%-10s %-18s %-16s %6d %10s %10s",
			shortID(session.ID), session.Type, session.Name,
			len(session.Solves), formatTime(best), formatTime(session.SessionAvg()))
		if session == history.ActiveSession() {
			line = activeStyle.Render(line + "  (active)")
		}
		fmt.Println(line)
	}
	return nil
}

// findSession resolves a full or abbreviated session ID.
func findSession(history *cubetimer.History, id string) (*cubetimer.Session, error) {
	if s := history.SessionByID(id); s != nil {
		return s, nil
	}
	var match *cubetimer.Session
	for _, s := range history.Sessions {
		if len(id) >= 4 && len(s.ID) >= len(id) && s.ID[:len(id)] == id {
			if match != nil {
				return nil, fmt.Errorf("session id %q is ambiguous", id)
			}
			match = s
		}
	}
	if match == nil {
		return nil, fmt.Errorf("session %q not found", id)
	}
	return match, nil
}

func runSessionsDelete(cmd *cobra.Command, args []string) error {
	history, err := openHistory()
	if err != nil {
		return err
	}
	defer history.CloseDatabase()

	session, err := findSession(history, args[0])
	if err != nil {
		return err
	}
	if err := history.DeleteSession(session); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	fmt.Printf("Deleted session %s (%d solves)\n", shortID(session.ID), len(session.Solves))
	return nil
}

func runSessionsSplit(cmd *cobra.Command, args []string) error {
	history, err := openHistory()
	if err != nil {
		return err
	}
	defer history.CloseDatabase()

	session, err := findSession(history, args[0])
	if err != nil {
		return err
	}
	index, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid solve index %q", args[1])
	}
	if index <= 0 || index >= len(session.Solves) {
		return fmt.Errorf("split index must be between 1 and %d", len(session.Solves)-1)
	}
	if err := history.SplitSessionAtSolve(session, index); err != nil {
		return fmt.Errorf("failed to split session: %w", err)
	}
	fmt.Printf("Split session %s at solve %d\n", shortID(session.ID), index)
	return nil
}

func runSessionsMerge(cmd *cobra.Command, args []string) error {
	history, err := openHistory()
	if err != nil {
		return err
	}
	defer history.CloseDatabase()

	first, err := findSession(history, args[0])
	if err != nil {
		return err
	}
	second, err := findSession(history, args[1])
	if err != nil {
		return err
	}
	if first.Type != second.Type {
		return fmt.Errorf("cannot merge sessions of different types (%s, %s)", first.Type, second.Type)
	}
	if err := history.MergeSessions(first, second, mergeName); err != nil {
		return fmt.Errorf("failed to merge sessions: %w", err)
	}
	fmt.Printf("Merged %s into %s (%d solves)\n",
		shortID(first.ID), shortID(second.ID), len(second.Solves))
	return nil
}

func runSessionsReset(cmd *cobra.Command, args []string) error {
	history, err := openHistory()
	if err != nil {
		return err
	}
	defer history.CloseDatabase()

	if err := history.ResetSession(); err != nil {
		return fmt.Errorf("failed to reset session: %w", err)
	}
	fmt.Println("Active session cleared.")
	return nil
}
