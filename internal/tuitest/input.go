package tuitest

var (
	KeyEnter = []byte{'\r'}
	KeyCtrlC = []byte{3}
	KeyEsc   = []byte{27}
)

// Keys returns s as typed input.
func Keys(s string) []byte {
	return []byte(s)
}

// X10 mouse reports: ESC [ M followed by button, column and row, each offset
// by 32 and 1-based.
const (
	mouseLeft    = 0
	mouseRelease = 3
	mouseMotion  = 32
)

func mouseEvent(button byte, col, row int) []byte {
	return []byte{0x1b, '[', 'M', 32 + button, byte(33 + col), byte(33 + row)}
}

// Press reports a left button press at the zero-based cell.
func Press(col, row int) []byte {
	return mouseEvent(mouseLeft, col, row)
}

// Drag reports motion with the left button held.
func Drag(col, row int) []byte {
	return mouseEvent(mouseLeft+mouseMotion, col, row)
}

// Release reports a button release.
func Release(col, row int) []byte {
	return mouseEvent(mouseRelease, col, row)
}

// Stroke draws a polyline through cells: a press on the first, drags through
// the rest and a release on the last.
func Stroke(cells ...[2]int) []byte {
	if len(cells) == 0 {
		return nil
	}
	var out []byte
	out = append(out, Press(cells[0][0], cells[0][1])...)
	for _, c := range cells[1:] {
		out = append(out, Drag(c[0], c[1])...)
	}
	last := cells[len(cells)-1]
	return append(out, Release(last[0], last[1])...)
}
