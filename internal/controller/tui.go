package controller

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	m "torture.dev/pkg/torture/internal/model"
)

// TUI reports batch progress live using Bubble Tea: one row per suite with
// a spinner while its pipeline is in flight.
type TUI struct {
	output  io.Writer
	program *tea.Program
	done    chan struct{}
}

// NewTUI creates a new TUI writing to output.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output, done: make(chan struct{})}
}

// BatchStarting starts the Bubble Tea program displaying the suite rows.
func (t *TUI) BatchStarting(suites []m.Path) {
	t.program = tea.NewProgram(newBatchModel(suites), tea.WithOutput(t.output))

	go func() {
		defer close(t.done)

		if _, err := t.program.Run(); err != nil {
			fmt.Fprintf(t.output, "display error: %v\n", err)
		}
	}()
}

// SuiteStarted marks the suite's row as running.
func (t *TUI) SuiteStarted(suite m.Path) {
	t.program.Send(suiteStartedMsg{suite: suite})
}

// SuiteFinished marks the suite's row with its outcome.
func (t *TUI) SuiteFinished(entry m.BatchEntry) {
	t.program.Send(suiteFinishedMsg{entry: entry})
}

// BatchFinished shows the summary and waits for the program to quit.
func (t *TUI) BatchFinished(entries []m.BatchEntry) {
	t.program.Send(batchDoneMsg{entries: entries})
	<-t.done
}

type suiteStartedMsg struct {
	suite m.Path
}

type suiteFinishedMsg struct {
	entry m.BatchEntry
}

type batchDoneMsg struct {
	entries []m.BatchEntry
}

type rowState int

const (
	rowPending rowState = iota
	rowRunning
	rowDone
)

type suiteRow struct {
	suite   m.Path
	state   rowState
	outcome m.SuiteOutcome
}

type batchModel struct {
	spin    spinner.Model
	rows    []suiteRow
	index   map[m.Path]int
	done    bool
	entries []m.BatchEntry
}

func newBatchModel(suites []m.Path) batchModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = allowedStyle

	rows := make([]suiteRow, 0, len(suites))
	index := make(map[m.Path]int, len(suites))

	for i, suite := range suites {
		rows = append(rows, suiteRow{suite: suite, state: rowPending})
		index[suite] = i
	}

	return batchModel{spin: sp, rows: rows, index: index}
}

func (bm batchModel) Init() tea.Cmd {
	return bm.spin.Tick
}

func (bm batchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
			return bm, tea.Quit
		}

		return bm, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		bm.spin, cmd = bm.spin.Update(msg)

		return bm, cmd

	case suiteStartedMsg:
		if i, ok := bm.index[msg.suite]; ok {
			bm.rows[i].state = rowRunning
		}

		return bm, nil

	case suiteFinishedMsg:
		if i, ok := bm.index[msg.entry.Suite]; ok {
			bm.rows[i].state = rowDone
			bm.rows[i].outcome = msg.entry.Outcome
		}

		return bm, nil

	case batchDoneMsg:
		bm.done = true
		bm.entries = msg.entries

		return bm, tea.Quit
	}

	return bm, nil
}

func (bm batchModel) View() string {
	var view string

	for _, row := range bm.rows {
		switch row.state {
		case rowPending:
			view += fmt.Sprintf("  · %s\n", row.suite)
		case rowRunning:
			view += fmt.Sprintf("  %s %s\n", bm.spin.View(), row.suite)
		case rowDone:
			view += fmt.Sprintf("  %s %s\n", outcomeGlyph(row.outcome), row.suite)
		}
	}

	if bm.done {
		var passed, failed, other int

		for _, entry := range bm.entries {
			switch {
			case entry.Outcome.Kind == m.Passed:
				passed++
			case entry.Outcome.Failed():
				failed++
			default:
				other++
			}
		}

		view += fmt.Sprintf("\n%d passed, %d failed, %d allowed/anomalous\n", passed, failed, other)
	}

	return view
}

func outcomeGlyph(outcome m.SuiteOutcome) string {
	switch {
	case outcome.Kind == m.Passed:
		return passStyle.Render("✓")
	case outcome.Failed():
		return failStyle.Render("✗")
	default:
		return allowedStyle.Render("⚠")
	}
}
