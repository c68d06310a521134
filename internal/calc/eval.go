package calc

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrDivisionByZero is returned by Evaluate when any division in the
// expression has a zero divisor.
var ErrDivisionByZero = errors.New("division by zero")

// ErrMalformedExpression is returned by Evaluate when the token stream is
// not an alternating number/operator sequence.
var ErrMalformedExpression = errors.New("malformed expression")

// Operator is an arithmetic operator in its display form.
type Operator string

const (
	OpAdd      Operator = "+"
	OpSubtract Operator = "-"
	OpMultiply Operator = "*"
	OpDivide   Operator = "/"
)

func (op Operator) valid() bool {
	switch op {
	case OpAdd, OpSubtract, OpMultiply, OpDivide:
		return true
	}
	return false
}

func precedence(op Operator) int {
	switch op {
	case OpMultiply, OpDivide:
		return 2
	case OpAdd, OpSubtract:
		return 1
	}
	return 0
}

// Evaluate computes the value of a flat number/operator token sequence
// with standard precedence, using a value stack and an operator stack.
// All arithmetic is float64.
func Evaluate(tokens []Token) (float64, error) {
	if len(tokens) == 0 {
		return 0, fmt.Errorf("empty expression: %w", ErrMalformedExpression)
	}

	var values []float64
	var ops []Operator

	apply := func() error {
		if len(values) < 2 || len(ops) == 0 {
			return ErrMalformedExpression
		}
		op := ops[len(ops)-1]
		ops = ops[:len(ops)-1]
		b := values[len(values)-1]
		a := values[len(values)-2]
		values = values[:len(values)-2]

		var v float64
		switch op {
		case OpAdd:
			v = a + b
		case OpSubtract:
			v = a - b
		case OpMultiply:
			v = a * b
		case OpDivide:
			if b == 0 {
				return ErrDivisionByZero
			}
			v = a / b
		default:
			return fmt.Errorf("operator %q: %w", string(op), ErrMalformedExpression)
		}
		values = append(values, v)
		return nil
	}

	wantNumber := true
	for _, t := range tokens {
		switch t.Kind {
		case TokenNumber:
			if !wantNumber {
				return 0, fmt.Errorf("adjacent numbers: %w", ErrMalformedExpression)
			}
			v, err := strconv.ParseFloat(t.Text, 64)
			if err != nil {
				return 0, fmt.Errorf("number %q: %w", t.Text, ErrMalformedExpression)
			}
			values = append(values, v)
			wantNumber = false
		case TokenOperator:
			if wantNumber {
				return 0, fmt.Errorf("operator %q without left operand: %w", t.Text, ErrMalformedExpression)
			}
			op := Operator(t.Text)
			if !op.valid() {
				return 0, fmt.Errorf("operator %q: %w", t.Text, ErrMalformedExpression)
			}
			for len(ops) > 0 && precedence(ops[len(ops)-1]) >= precedence(op) {
				if err := apply(); err != nil {
					return 0, err
				}
			}
			ops = append(ops, op)
			wantNumber = true
		default:
			return 0, fmt.Errorf("token kind %d: %w", t.Kind, ErrMalformedExpression)
		}
	}
	if wantNumber {
		return 0, fmt.Errorf("expression ends with operator: %w", ErrMalformedExpression)
	}

	for len(ops) > 0 {
		if err := apply(); err != nil {
			return 0, err
		}
	}
	if len(values) != 1 {
		return 0, ErrMalformedExpression
	}
	return values[0], nil
}

// FormatResult renders a computed value for display: integers without a
// decimal point, everything else with up to six decimals, trailing zeros
// trimmed.
func FormatResult(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	s := strconv.FormatFloat(v, 'f', 6, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	return s
}
