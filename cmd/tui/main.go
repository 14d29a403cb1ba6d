// Command tui plays tic-tac-toe against the computer in the terminal.
package main

import (
	"ctchen222/Tic-Tac-Toe-Minimax/internal/game"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

func main() {
	first := flag.String("first", "player", "who opens each game: player, computer or random")
	delay := flag.Duration("delay", 500*time.Millisecond, "pause before the computer answers")
	flag.Parse()

	s := newSession(*first)
	if err := newBoardUI(s, *delay).run(); err != nil {
		slog.Error("terminal client failed", "error", err)
		os.Exit(1)
	}
}

type boardUI struct {
	app     *tview.Application
	table   *tview.Table
	status  *tview.TextView
	session *session
	delay   time.Duration
	busy    bool
}

func newBoardUI(s *session, delay time.Duration) *boardUI {
	ui := &boardUI{
		app:     tview.NewApplication(),
		table:   tview.NewTable(),
		status:  tview.NewTextView().SetTextAlign(tview.AlignCenter),
		session: s,
		delay:   delay,
	}

	ui.table.SetBorders(true).SetSelectable(true, true)
	ui.table.SetSelectedFunc(func(row, col int) {
		ui.onSelect(row*3 + col)
	})
	ui.table.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Rune() {
		case 'q':
			ui.app.Stop()
			return nil
		case 'r':
			if !ui.busy {
				ui.session.reset()
				ui.startTurn()
			}
			return nil
		}
		return event
	})

	help := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetText("arrows: move  enter: play  r: new game  q: quit")

	layout := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(ui.table, 7, 0, true).
		AddItem(ui.status, 1, 0, false).
		AddItem(help, 1, 0, false)
	layout.SetBorder(true).SetTitle(" Tic-Tac-Toe ")

	ui.app.SetRoot(layout, true).SetFocus(ui.table)
	return ui
}

func (ui *boardUI) run() error {
	ui.startTurn()
	return ui.app.Run()
}

// startTurn redraws the board and lets the computer open if it is its turn.
func (ui *boardUI) startTurn() {
	ui.draw()
	if ui.session.computerToMove() {
		ui.answer()
	}
}

func (ui *boardUI) onSelect(index int) {
	if ui.busy {
		return
	}
	answer, err := ui.session.play(index)
	if err != nil {
		ui.status.SetText(fmt.Sprintf("%s - %s", err, ui.session.status()))
		return
	}
	ui.draw()
	if answer {
		ui.answer()
	}
}

// answer plays the computer's move after the configured pause. Input is
// ignored until it lands.
func (ui *boardUI) answer() {
	ui.busy = true
	go func() {
		time.Sleep(ui.delay)
		ui.app.QueueUpdateDraw(func() {
			ui.busy = false
			if _, err := ui.session.reply(); err != nil {
				ui.status.SetText(err.Error())
				return
			}
			ui.draw()
		})
	}()
}

func (ui *boardUI) draw() {
	board := ui.session.game.Board
	for i, mark := range board {
		text, color := " ", tcell.ColorWhite
		switch mark {
		case game.Player:
			text, color = "X", tcell.ColorGreen
		case game.Computer:
			text, color = "O", tcell.ColorRed
		}
		cell := tview.NewTableCell(" " + text + " ").
			SetAlign(tview.AlignCenter).
			SetTextColor(color)
		if i == ui.session.game.LastMove {
			cell.SetAttributes(tcell.AttrBold)
		}
		ui.table.SetCell(i/3, i%3, cell)
	}
	ui.status.SetText(ui.session.status())
}
