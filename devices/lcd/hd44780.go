package lcd

// Display geometry.
const (
	Columns = 20
	Rows    = 4
)

// Instruction codes. The highest set bit selects the instruction.
const (
	CmdClear        = 0x01
	CmdHome         = 0x02
	CmdEntryMode    = 0x04
	CmdDisplay      = 0x08
	CmdShift        = 0x10
	CmdFunction     = 0x20
	CmdSetCGRAMAddr = 0x40
	CmdSetDDRAMAddr = 0x80
)

// Instruction flags.
const (
	EntryIncrement = 0x02
	EntryShift     = 0x01

	DisplayOn = 0x04
	CursorOn  = 0x02
	BlinkOn   = 0x01

	ShiftDisplay = 0x08
	ShiftRight   = 0x04

	Function8Bit  = 0x10
	Function2Line = 0x08
	Function5x10  = 0x04
)

// lineLength is the number of DDRAM cells per line in two line mode.
const lineLength = 40

// rowAddr holds the DDRAM address of the first cell of each display row.
var rowAddr = [Rows]byte{0x00, 0x40, 0x14, 0x54}

// HD44780 models a 20x4 character display controller with the A00
// character set. It never reports busy.
type HD44780 struct {
	ddram     [0x80]byte
	cgram     [0x40]byte
	addr      byte // Address counter.
	cgMode    bool // Address counter points into CGRAM.
	increment bool
	shift     bool // Shift the display on data writes.
	displayOn bool
	cursorOn  bool
	blinkOn   bool
	twoLine   bool
	scroll    int // Display shift in cells, [0, lineLength).
}

var _ Controller = &HD44780{}

// NewHD44780 creates a controller in its power on state.
func NewHD44780() *HD44780 {
	var d HD44780
	d.Reset()
	return &d
}

// Reset puts the controller into its power on state.
func (d *HD44780) Reset() {
	*d = HD44780{}
	d.clear()
}

// Command executes the given instruction.
func (d *HD44780) Command(value byte) {
	switch {
	case value&CmdSetDDRAMAddr != 0:
		d.cgMode = false
		d.addr = value & 0x7f
	case value&CmdSetCGRAMAddr != 0:
		d.cgMode = true
		d.addr = value & 0x3f
	case value&CmdFunction != 0:
		d.twoLine = value&Function2Line != 0
	case value&CmdShift != 0:
		right := value&ShiftRight != 0
		if value&ShiftDisplay != 0 {
			d.scrollBy(right)
		} else {
			d.move(right)
		}
	case value&CmdDisplay != 0:
		d.displayOn = value&DisplayOn != 0
		d.cursorOn = value&CursorOn != 0
		d.blinkOn = value&BlinkOn != 0
	case value&CmdEntryMode != 0:
		d.increment = value&EntryIncrement != 0
		d.shift = value&EntryShift != 0
	case value&CmdHome != 0:
		d.cgMode = false
		d.addr = 0
		d.scroll = 0
	case value&CmdClear != 0:
		d.clear()
	}
}

// WriteData stores value at the address counter and advances it.
func (d *HD44780) WriteData(value byte) {
	if d.cgMode {
		d.cgram[d.addr&0x3f] = value
		d.move(d.increment)
		return
	}

	d.ddram[d.addr&0x7f] = value
	d.move(d.increment)

	if d.shift {
		d.scrollBy(!d.increment)
	}
}

// ReadData returns the byte at the address counter and advances it.
func (d *HD44780) ReadData() byte {
	var value byte
	if d.cgMode {
		value = d.cgram[d.addr&0x3f]
	} else {
		value = d.ddram[d.addr&0x7f]
	}

	d.move(d.increment)
	return value
}

// ReadStatus returns the address counter. The busy flag in bit 7 is
// always clear.
func (d *HD44780) ReadStatus() byte {
	return d.addr & 0x7f
}

// Text returns the characters currently visible on the display, one
// string per row. A display that is switched off shows blanks.
func (d *HD44780) Text() []string {
	rows := make([]string, Rows)
	line := make([]rune, Columns)

	for r := range rows {
		for c := range line {
			line[c] = ' '
			if d.displayOn {
				line[c] = charRune(d.ddram[d.cellAddr(r, c)])
			}
		}
		rows[r] = string(line)
	}

	return rows
}

// Cell returns the character code displayed at the given row and column.
func (d *HD44780) Cell(row, col int) byte {
	return d.ddram[d.cellAddr(row, col)]
}

// Cursor returns the display position of the address counter and whether
// the cursor is visible there.
func (d *HD44780) Cursor() (row, col int, visible bool) {
	for r := 0; r < Rows; r++ {
		for c := 0; c < Columns; c++ {
			if d.cellAddr(r, c) == d.addr {
				return r, c, d.displayOn && d.cursorOn && !d.cgMode
			}
		}
	}
	return 0, 0, false
}

// On returns true if the display is switched on.
func (d *HD44780) On() bool {
	return d.displayOn
}

// cellAddr returns the DDRAM address shown at the given position.
func (d *HD44780) cellAddr(row, col int) byte {
	base := rowAddr[row%Rows]
	line := base & 0x40
	offset := (int(base&0x3f) + col + d.scroll) % lineLength
	return line | byte(offset)
}

func (d *HD44780) clear() {
	for i := range d.ddram {
		d.ddram[i] = ' '
	}
	d.addr = 0
	d.cgMode = false
	d.increment = true
	d.scroll = 0
}

// move steps the address counter by one in the given direction.
func (d *HD44780) move(forward bool) {
	if d.cgMode {
		if forward {
			d.addr = (d.addr + 1) & 0x3f
		} else {
			d.addr = (d.addr - 1) & 0x3f
		}
		return
	}

	if !d.twoLine {
		if forward {
			d.addr = (d.addr + 1) % 0x50
		} else if d.addr == 0 {
			d.addr = 0x4f
		} else {
			d.addr--
		}
		return
	}

	if forward {
		switch d.addr {
		case 0x27:
			d.addr = 0x40
		case 0x67:
			d.addr = 0x00
		default:
			d.addr = (d.addr + 1) & 0x7f
		}
		return
	}

	switch d.addr {
	case 0x00:
		d.addr = 0x67
	case 0x40:
		d.addr = 0x27
	default:
		d.addr = (d.addr - 1) & 0x7f
	}
}

// scrollBy shifts the display by one cell. Shifting right moves the
// contents right, so the view origin moves left.
func (d *HD44780) scrollBy(right bool) {
	if right {
		d.scroll = (d.scroll + lineLength - 1) % lineLength
	} else {
		d.scroll = (d.scroll + 1) % lineLength
	}
}

// charRune maps an A00 character code to the closest unicode rune.
func charRune(c byte) rune {
	switch {
	case c < 0x10:
		return '█' // CGRAM characters.
	case c == 0x5c:
		return '¥'
	case c == 0x7e:
		return '→'
	case c == 0x7f:
		return '←'
	case c >= 0x20 && c < 0x7e:
		return rune(c)
	}
	return ' '
}
