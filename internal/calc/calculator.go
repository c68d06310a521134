// Package calc implements the calculator state machine driven by
// confirmed gesture events, and the expression evaluator behind it.
package calc

import (
	"errors"
	"fmt"
	"strings"
)

// MaxOperandDigits caps how many digits one operand may accumulate,
// keeping the display readable and the values exactly representable.
const MaxOperandDigits = 12

// ErrInvalidInput marks a recoverable rejected transition (operator with
// nothing to apply it to, equals on an empty expression, input while in
// the error state). State is unchanged; the presentation layer surfaces
// it as transient feedback.
var ErrInvalidInput = errors.New("invalid input")

// Mode is the calculator's coarse state.
type Mode int

const (
	ModeEmpty Mode = iota
	ModeEntering
	ModeExpectingOperand
	ModeResult
	ModeError
)

func (m Mode) String() string {
	switch m {
	case ModeEmpty:
		return "empty"
	case ModeEntering:
		return "entering"
	case ModeExpectingOperand:
		return "expecting_operand"
	case ModeResult:
		return "result"
	case ModeError:
		return "error"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// TokenKind distinguishes number tokens from operator tokens.
type TokenKind int

const (
	TokenNumber TokenKind = iota
	TokenOperator
)

// Token is one unit of the accumulated expression: a digit string or an
// operator.
type Token struct {
	Kind TokenKind
	Text string
}

// Calculator holds the accumulated expression, the operand being typed,
// and the last computed result. It lives for the process lifetime and is
// mutated only by the event methods below.
type Calculator struct {
	mode    Mode
	tokens  []Token
	current string
	result  string
	fault   error
}

// New creates an empty calculator.
func New() *Calculator {
	return &Calculator{mode: ModeEmpty}
}

// Mode returns the current state.
func (c *Calculator) Mode() Mode { return c.mode }

// PushDigit appends digit d (0-9) to the operand being entered. A digit
// after a computed result starts a fresh expression.
func (c *Calculator) PushDigit(d int) error {
	if d < 0 || d > 9 {
		return fmt.Errorf("digit out of range: %d: %w", d, ErrInvalidInput)
	}
	switch c.mode {
	case ModeError:
		return fmt.Errorf("calculator in error state: %w", ErrInvalidInput)
	case ModeResult:
		c.tokens = c.tokens[:0]
		c.result = ""
	}
	if len(c.current) >= MaxOperandDigits {
		return fmt.Errorf("operand limited to %d digits: %w", MaxOperandDigits, ErrInvalidInput)
	}
	c.current += string(rune('0' + d))
	c.mode = ModeEntering
	return nil
}

// PushOperator closes the current operand and appends the operator.
// Rejected when there is no operand to close. After a computed result the
// result becomes the first operand of the next expression.
func (c *Calculator) PushOperator(op Operator) error {
	if !op.valid() {
		return fmt.Errorf("unknown operator %q: %w", string(op), ErrInvalidInput)
	}
	switch c.mode {
	case ModeError:
		return fmt.Errorf("calculator in error state: %w", ErrInvalidInput)
	case ModeResult:
		c.tokens = append(c.tokens[:0], Token{Kind: TokenNumber, Text: c.result})
		c.result = ""
	case ModeEntering:
		c.tokens = append(c.tokens, Token{Kind: TokenNumber, Text: c.current})
		c.current = ""
	default:
		return fmt.Errorf("no operand before %q: %w", string(op), ErrInvalidInput)
	}
	c.tokens = append(c.tokens, Token{Kind: TokenOperator, Text: string(op)})
	c.mode = ModeExpectingOperand
	return nil
}

// Equals evaluates the accumulated expression. Operator precedence is
// standard: multiplication and division bind tighter than addition and
// subtraction, so chained entry 1 2 + 3 * 4 = yields 24.
//
// A malformed expression or a division by zero moves the calculator to
// the error state with the expression preserved for inspection; only
// Delete and Clear leave that state.
func (c *Calculator) Equals() error {
	switch c.mode {
	case ModeError:
		return fmt.Errorf("calculator in error state: %w", ErrInvalidInput)
	case ModeEmpty, ModeResult:
		return fmt.Errorf("nothing to evaluate: %w", ErrInvalidInput)
	case ModeEntering:
		c.tokens = append(c.tokens, Token{Kind: TokenNumber, Text: c.current})
		c.current = ""
	case ModeExpectingOperand:
		c.mode = ModeError
		c.fault = fmt.Errorf("expression ends with operator: %w", ErrMalformedExpression)
		return c.fault
	}

	value, err := Evaluate(c.tokens)
	if err != nil {
		c.mode = ModeError
		c.fault = err
		return err
	}

	c.result = FormatResult(value)
	c.mode = ModeResult
	return nil
}

// Delete removes the last character of the operand being entered, or the
// last token when no operand is open. From the error state it clears the
// fault and edits the preserved expression. Deleting from an empty
// calculator is a no-op.
func (c *Calculator) Delete() error {
	if c.mode == ModeError {
		c.fault = nil
	}
	if c.mode == ModeResult {
		// Discard the result and reopen the evaluated expression.
		c.result = ""
	}

	// Reopen a trailing number token so deletion peels it digit by digit
	// instead of discarding it whole.
	if c.current == "" && len(c.tokens) > 0 && c.tokens[len(c.tokens)-1].Kind == TokenNumber {
		c.current = c.tokens[len(c.tokens)-1].Text
		c.tokens = c.tokens[:len(c.tokens)-1]
	}

	if c.current != "" {
		c.current = c.current[:len(c.current)-1]
	} else if len(c.tokens) > 0 {
		c.tokens = c.tokens[:len(c.tokens)-1]
	}

	// Pull a trailing number token back into the editable operand so
	// further deletes peel it digit by digit.
	if c.current == "" && len(c.tokens) > 0 && c.tokens[len(c.tokens)-1].Kind == TokenNumber {
		c.current = c.tokens[len(c.tokens)-1].Text
		c.tokens = c.tokens[:len(c.tokens)-1]
	}

	switch {
	case c.current != "":
		c.mode = ModeEntering
	case len(c.tokens) > 0:
		c.mode = ModeExpectingOperand
	default:
		c.mode = ModeEmpty
	}
	return nil
}

// Clear resets the calculator to its initial state, from any state.
func (c *Calculator) Clear() {
	c.mode = ModeEmpty
	c.tokens = c.tokens[:0]
	c.current = ""
	c.result = ""
	c.fault = nil
}

// Snapshot is an immutable view of the calculator for the presentation
// layer.
type Snapshot struct {
	Mode       Mode
	Tokens     []Token
	Current    string
	Expression string
	Result     string
	Fault      string
	Display    string
}

// Snapshot captures the current state.
func (c *Calculator) Snapshot() Snapshot {
	s := Snapshot{
		Mode:       c.mode,
		Tokens:     append([]Token(nil), c.tokens...),
		Current:    c.current,
		Expression: c.Expression(),
		Result:     c.result,
	}
	if c.fault != nil {
		s.Fault = c.fault.Error()
	}
	s.Display = c.display()
	return s
}

// Expression renders the accumulated tokens plus the open operand.
func (c *Calculator) Expression() string {
	var b strings.Builder
	for i, t := range c.tokens {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(t.Text)
	}
	if c.current != "" {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(c.current)
	}
	return b.String()
}

func (c *Calculator) display() string {
	switch {
	case c.mode == ModeError:
		return "Error"
	case c.result != "":
		return c.result
	case c.current != "":
		return c.current
	default:
		return "0"
	}
}
