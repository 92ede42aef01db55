// Package tui implements a terminal user interface front end with tcell.
// It draws the LCD and the CPU registers in boxes and forwards key
// presses to the machine.
package tui

import (
	"fmt"

	"github.com/gdamore/tcell"

	"github.com/OfficialPixelBrush/Pix80Emu/devices/lcd"
	"github.com/OfficialPixelBrush/Pix80Emu/devices/terminal"
	"github.com/OfficialPixelBrush/Pix80Emu/frontend"
	"github.com/OfficialPixelBrush/Pix80Emu/trace"
)

// Layout of the boxes on screen.
const (
	lcdX = 2
	lcdY = 1
	regX = 2
	regY = lcdY + lcd.Rows + 3
)

// StatusFunc yields the register state shown below the LCD.
type StatusFunc func() trace.Snapshot

// UI is a tcell based front end.
type UI struct {
	screen   tcell.Screen
	sink     frontend.Sink
	display  frontend.Screen
	status   StatusFunc // Optional.
	events   chan tcell.Event
	keyboard frontend.Keyboard
	title    string
}

// New creates a front end on s. The screen must not be initialized yet.
// status may be nil.
func New(s tcell.Screen, sink frontend.Sink, display frontend.Screen, status StatusFunc) *UI {
	return &UI{
		screen:  s,
		sink:    sink,
		display: display,
		status:  status,
		events:  make(chan tcell.Event, 64),
	}
}

// Start initializes the screen and begins collecting events.
func (u *UI) Start() error {
	if err := u.screen.Init(); err != nil {
		return err
	}

	u.screen.HideCursor()
	u.screen.Clear()

	go func() {
		for {
			ev := u.screen.PollEvent()
			if ev == nil {
				close(u.events)
				return
			}
			u.events <- ev
		}
	}()

	return nil
}

// Stop restores the terminal.
func (u *UI) Stop() {
	u.screen.Fini()
}

// SetTitle sets the text shown in the LCD box border.
func (u *UI) SetTitle(title string) {
	u.title = title
}

// Poll handles pending events. It returns false once the user asked to
// quit.
func (u *UI) Poll() bool {
	for {
		select {
		case ev, ok := <-u.events:
			if !ok {
				return false
			}
			if !u.handle(ev) {
				return false
			}
		default:
			return true
		}
	}
}

func (u *UI) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		u.screen.Sync()

	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyCtrlC:
			return false
		case tcell.KeyEscape:
			u.sink.Key(terminal.KeyEscape)
			return false
		case tcell.KeyEnter:
			u.sink.Key(terminal.KeyReturn)
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			u.sink.Key(terminal.KeyBackspace)
		case tcell.KeyRune:
			if v := u.keyboard.Char(ev.Rune()); v != 0 {
				u.sink.Key(v)
			}
		}
	}
	return true
}

// Refresh redraws the screen.
func (u *UI) Refresh() {
	u.drawLCD()

	if u.status != nil {
		u.drawRegisters(u.status())
	}

	u.screen.Show()
}

func (u *UI) drawLCD() {
	box(u.screen, lcdX, lcdY, lcd.Columns+1, lcd.Rows+1)

	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	if u.title != "" {
		drawString(u.screen, lcdX+2, lcdY, style, " "+u.title+" ")
	}

	style = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlue)
	for r, line := range u.display.Text() {
		drawString(u.screen, lcdX+1, lcdY+1+r, style, line)
	}

	row, col, visible := u.display.Cursor()
	if visible {
		u.screen.ShowCursor(lcdX+1+col, lcdY+1+row)
	} else {
		u.screen.HideCursor()
	}
}

func (u *UI) drawRegisters(s trace.Snapshot) {
	box(u.screen, regX, regY, 30, 6)

	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	drawString(u.screen, regX+2, regY, style, " Z80 ")

	style = tcell.StyleDefault.Foreground(tcell.ColorGray)
	col := regX + 2
	row := regY + 1
	drawString(u.screen, col, row, style, "AF:")
	drawString(u.screen, col, row+1, style, "BC:")
	drawString(u.screen, col, row+2, style, "DE:")
	drawString(u.screen, col, row+3, style, "HL:")
	drawString(u.screen, col+12, row, style, "PC:")
	drawString(u.screen, col+12, row+1, style, "SP:")
	drawString(u.screen, col+12, row+2, style, "BANK:")
	drawString(u.screen, col+12, row+3, style, "F:")

	style = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	drawString(u.screen, col+4, row, style, fmt.Sprintf("%04X", s.AF()))
	drawString(u.screen, col+4, row+1, style, fmt.Sprintf("%04X", s.BC()))
	drawString(u.screen, col+4, row+2, style, fmt.Sprintf("%04X", s.DE()))
	drawString(u.screen, col+4, row+3, style, fmt.Sprintf("%04X", s.HL()))
	drawString(u.screen, col+16, row, style, fmt.Sprintf("%04X", s.PC))
	drawString(u.screen, col+16, row+1, style, fmt.Sprintf("%04X", s.SP))
	drawString(u.screen, col+17, row+2, style, fmt.Sprintf("%-2d", s.Bank))
	drawString(u.screen, col+15, row+3, style, trace.Flags(s.F))

	state := "      "
	if s.Halted {
		state = "HALT  "
	}
	drawString(u.screen, col, row+4, style, state)
}

func drawString(s tcell.Screen, x, y int, style tcell.Style, str string) {
	for _, c := range str {
		s.SetContent(x, y, c, nil, style)
		x++
	}
}

// box draws a frame whose inner area starts at x+1, y+1.
func box(s tcell.Screen, x, y, w, h int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorGray)

	s.SetContent(x, y, tcell.RuneULCorner, nil, style)
	s.SetContent(x+w, y, tcell.RuneURCorner, nil, style)
	s.SetContent(x, y+h, tcell.RuneLLCorner, nil, style)
	s.SetContent(x+w, y+h, tcell.RuneLRCorner, nil, style)

	for col := x + 1; col < x+w; col++ {
		s.SetContent(col, y, tcell.RuneHLine, nil, style)
		s.SetContent(col, y+h, tcell.RuneHLine, nil, style)
	}

	for row := y + 1; row < y+h; row++ {
		s.SetContent(x, row, tcell.RuneVLine, nil, style)
		s.SetContent(x+w, row, tcell.RuneVLine, nil, style)
	}
}
