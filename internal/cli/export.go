package cli

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"

	"cubetimer"
)

var exportCmd = &cobra.Command{
	Use:   "export <output.db>",
	Short: "Export the history to a sqlite database",
	Long: `Export all sessions and solves into a sqlite database for use with
external analysis tools. The output file is replaced if it exists.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

const exportSchema = `
CREATE TABLE IF NOT EXISTS sessions (
	session_id TEXT PRIMARY KEY,
	name TEXT,
	solve_type TEXT NOT NULL,
	position INTEGER NOT NULL,
	update_id TEXT,
	update_date INTEGER
);

CREATE TABLE IF NOT EXISTS solves (
	solve_id TEXT NOT NULL,
	session_id TEXT NOT NULL REFERENCES sessions(session_id),
	position INTEGER NOT NULL,
	scramble TEXT,
	created_at INTEGER,
	ok INTEGER NOT NULL,
	time_ms INTEGER NOT NULL,
	penalty_ms INTEGER NOT NULL,
	device TEXT,
	move_count INTEGER NOT NULL,
	cross_ms INTEGER,
	f2l_pair1_ms INTEGER,
	f2l_pair2_ms INTEGER,
	f2l_pair3_ms INTEGER,
	f2l_finish_ms INTEGER,
	oll_cross_ms INTEGER,
	oll_finish_ms INTEGER,
	pll_corner_ms INTEGER,
	PRIMARY KEY (solve_id, session_id)
);

CREATE INDEX IF NOT EXISTS idx_solves_session ON solves(session_id, position);
`

func runExport(cmd *cobra.Command, args []string) error {
	history, err := openHistory()
	if err != nil {
		return err
	}
	defer history.CloseDatabase()

	if err := os.Remove(args[0]); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to replace output database: %w", err)
	}

	db, err := sql.Open("sqlite", args[0])
	if err != nil {
		return fmt.Errorf("failed to open output database: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec(exportSchema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := exportHistory(tx, history); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit export: %w", err)
	}

	total := 0
	for _, session := range history.Sessions {
		total += len(session.Solves)
	}
	fmt.Printf("Exported %d sessions, %d solves to %s\n",
		len(history.Sessions), total, args[0])
	return nil
}

func exportHistory(tx *sql.Tx, history *cubetimer.History) error {
	for pos, session := range history.Sessions {
		_, err := tx.Exec(`
			INSERT INTO sessions (session_id, name, solve_type, position, update_id, update_date)
			VALUES (?, ?, ?, ?, ?, ?)
		`, session.ID, session.Name, session.Type.String(), pos,
			session.Update.ID, session.Update.Date)
		if err != nil {
			return fmt.Errorf("failed to export session %s: %w", session.ID, err)
		}

		for i := range session.Solves {
			solve := &session.Solves[i]
			moves := make(cubetimer.MoveSequence, 0, len(solve.Moves))
			for _, tm := range solve.Moves {
				moves = append(moves, tm.Move)
			}
			_, err := tx.Exec(`
				INSERT INTO solves (
					solve_id, session_id, position, scramble, created_at,
					ok, time_ms, penalty_ms, device, move_count,
					cross_ms, f2l_pair1_ms, f2l_pair2_ms, f2l_pair3_ms,
					f2l_finish_ms, oll_cross_ms, oll_finish_ms, pll_corner_ms
				) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			`, solve.ID, session.ID, i, solve.Scramble.String(), solve.Created,
				solve.OK, solve.Time, solve.Penalty, solve.Device, moves.OuterTurnCount(),
				solve.CrossTime, solve.F2LPairTimes[0], solve.F2LPairTimes[1],
				solve.F2LPairTimes[2], solve.F2LPairTimes[3], solve.OLLCrossTime,
				solve.OLLFinishTime, solve.PLLCornerTime)
			if err != nil {
				return fmt.Errorf("failed to export solve %s: %w", solve.ID, err)
			}
		}
	}
	return nil
}
