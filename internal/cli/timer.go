package cli

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"cubetimer"
	"cubetimer/internal/scramble"
)

var timerCmd = &cobra.Command{
	Use:   "timer",
	Short: "Interactive solve timer",
	Long: `Start an interactive timer for 3x3x3 solves.

Keyboard shortcuts:
  space   - Start / stop the timer
  n       - Skip to a new scramble
  d       - Toggle DNF on the last solve
  2       - Toggle a +2 penalty on the last solve
  q/Esc   - Quit`,
	RunE: runTimer,
}

func init() {
	rootCmd.AddCommand(timerCmd)
}

// Styles
var (
	timerTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	scrambleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	clockStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("82"))

	timerErrStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	timerHelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

type timerTickMsg time.Time

// timerModel drives the solve timer: idle showing the scramble, or
// solving with a running clock. Finishing a solve records it into the
// active 3x3x3 session.
type timerModel struct {
	history *cubetimer.History
	worker  *scramble.Worker

	solving   bool
	startTime time.Time
	elapsed   time.Duration

	currentScramble cubetimer.MoveSequence
	lastResult      string

	err      error
	quitting bool
}

func newTimerModel(history *cubetimer.History) timerModel {
	provider := scramble.NewRandom(25, time.Now().UnixNano())
	worker := scramble.NewWorker(provider)
	first := provider.Scramble()
	worker.Request()
	return timerModel{
		history:         history,
		worker:          worker,
		currentScramble: first,
	}
}

func timerTick() tea.Cmd {
	return tea.Tick(time.Second/20, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}

func (m timerModel) Init() tea.Cmd {
	return timerTick()
}

func (m timerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		if m.solving {
			m.elapsed = time.Since(m.startTime)
		}
		return m, timerTick()

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			m.worker.Close()
			return m, tea.Quit
		case " ", "space":
			if m.solving {
				return m.finishSolve(), nil
			}
			m.solving = true
			m.startTime = time.Now()
			m.elapsed = 0
			return m, nil
		case "n":
			if !m.solving {
				m.nextScramble()
			}
			return m, nil
		case "d":
			if !m.solving {
				m.togglePenalty(func(s *cubetimer.Solve) { s.OK = !s.OK })
			}
			return m, nil
		case "2":
			if !m.solving {
				m.togglePenalty(func(s *cubetimer.Solve) {
					if s.Penalty == 0 {
						s.Penalty = 2000
						s.Time += 2000
					} else {
						s.Time -= s.Penalty
						s.Penalty = 0
					}
				})
			}
			return m, nil
		}
	}
	return m, nil
}

// nextScramble swaps in the pre-generated scramble and requests another.
func (m *timerModel) nextScramble() {
	if seq, ok := m.worker.Next(); ok {
		m.currentScramble = seq
	}
	m.worker.Request()
}

func (m timerModel) finishSolve() timerModel {
	m.solving = false
	m.elapsed = time.Since(m.startTime)

	solve := m.history.NewSolve(m.currentScramble)
	solve.OK = true
	solve.Time = uint32(m.elapsed.Milliseconds())
	solve.Device = "manual-timer"
	if err := m.history.RecordSolve(cubetimer.Solve3x3x3, solve); err != nil {
		m.err = err
	} else {
		m.err = nil
	}
	m.lastResult = formatTime(int(solve.Time))
	m.nextScramble()
	return m
}

// togglePenalty mutates the last recorded solve and persists the change.
func (m *timerModel) togglePenalty(mutate func(*cubetimer.Solve)) {
	session := m.history.ActiveSession()
	if session == nil || len(session.Solves) == 0 {
		return
	}
	solve := &session.Solves[len(session.Solves)-1]
	mutate(solve)
	solve.Dirty = true
	session.Dirty = true
	if err := m.history.CommitSession(session); err != nil {
		m.err = err
	}
	m.lastResult = solveResult(solve)
}

func (m timerModel) View() string {
	if m.quitting {
		return ""
	}

	view := timerTitleStyle.Render("cubetimer") + "\n\n"
	view += scrambleStyle.Render(m.currentScramble.String()) + "\n\n"

	if m.solving {
		view += clockStyle.Render(formatTime(int(m.elapsed.Milliseconds()))) + "\n\n"
	} else {
		if m.lastResult != "" {
			view += clockStyle.Render(m.lastResult) + "\n\n"
		}
		view += m.sessionStats()
	}

	if m.err != nil {
		view += timerErrStyle.Render(fmt.Sprintf("error: %v", m.err)) + "\n"
	}
	view += timerHelpStyle.Render("space start/stop · n new scramble · d DNF · 2 +2 · q quit")
	return view
}

func (m timerModel) sessionStats() string {
	session := m.history.ActiveSession()
	if session == nil || len(session.Solves) == 0 {
		return timerHelpStyle.Render("No solves in this session\n\n")
	}
	best, _ := session.BestSolve()
	bestAo5, _ := session.BestAvgOf(5)
	stats := fmt.Sprintf("Solves: %d   Best: %s   ao5: %s   Best ao5: %s   Avg: %s\n\n",
		len(session.Solves),
		formatTime(best),
		formatTime(session.AvgOfLast(5, false)),
		formatTime(bestAo5),
		formatTime(session.SessionAvg()))
	return timerHelpStyle.Render(stats)
}

func runTimer(cmd *cobra.Command, args []string) error {
	history, err := openHistory()
	if err != nil {
		return err
	}
	defer history.CloseDatabase()

	program := tea.NewProgram(newTimerModel(history))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("timer failed: %w", err)
	}
	return nil
}
