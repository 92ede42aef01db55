package lcd

// ShowMessage turns the display on, clears it and writes text centered on
// the second row. Text longer than a row is cut off.
func ShowMessage(c Controller, text string) {
	if len(text) > Columns {
		text = text[:Columns]
	}

	c.Command(CmdDisplay | DisplayOn)
	c.Command(CmdFunction | Function2Line | Function8Bit)
	c.Command(CmdClear)
	c.Command(CmdSetDDRAMAddr | (rowAddr[1] + byte((Columns-len(text))/2)))

	for i := 0; i < len(text); i++ {
		c.WriteData(text[i])
	}
}
