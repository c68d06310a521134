// Package gesture turns per-frame hand landmarks into confirmed calculator
// commands: a geometric classifier, a temporal stabilization window, and a
// cooldown gate.
package gesture

import "fmt"

// Label is one recognizable gesture. None means "no recognized gesture
// this frame".
type Label int

const (
	None Label = iota
	Digit0
	Digit1
	Digit2
	Digit3
	Digit4
	Digit5
	Digit6
	Digit7
	Digit8
	Digit9
	Add
	Subtract
	Multiply
	Divide
	Equals
	Delete
	Clear
)

var labelNames = map[Label]string{
	None:     "none",
	Digit0:   "digit_0",
	Digit1:   "digit_1",
	Digit2:   "digit_2",
	Digit3:   "digit_3",
	Digit4:   "digit_4",
	Digit5:   "digit_5",
	Digit6:   "digit_6",
	Digit7:   "digit_7",
	Digit8:   "digit_8",
	Digit9:   "digit_9",
	Add:      "add",
	Subtract: "subtract",
	Multiply: "multiply",
	Divide:   "divide",
	Equals:   "equals",
	Delete:   "delete",
	Clear:    "clear",
}

// String returns a stable machine-readable name for the label.
func (l Label) String() string {
	if s, ok := labelNames[l]; ok {
		return s
	}
	return fmt.Sprintf("label(%d)", int(l))
}

// Digit returns the digit value of a digit label, and whether the label
// is a digit at all.
func (l Label) Digit() (int, bool) {
	if l >= Digit0 && l <= Digit9 {
		return int(l - Digit0), true
	}
	return 0, false
}

// DigitLabel returns the label for digit n (0-9).
func DigitLabel(n int) Label {
	if n < 0 || n > 9 {
		return None
	}
	return Digit0 + Label(n)
}

// Classification is the classifier's verdict for one frame: a label and a
// confidence in [0,1] describing how unambiguously the observed geometry
// matched the pattern.
type Classification struct {
	Label      Label
	Confidence float64
}
