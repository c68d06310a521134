package calc

import (
	"errors"
	"strings"
	"testing"
)

func push(t *testing.T, c *Calculator, digits ...int) {
	t.Helper()
	for _, d := range digits {
		if err := c.PushDigit(d); err != nil {
			t.Fatalf("PushDigit(%d): %v", d, err)
		}
	}
}

func TestCalculatorAddition(t *testing.T) {
	c := New()
	push(t, c, 1, 2)
	if err := c.PushOperator(OpAdd); err != nil {
		t.Fatalf("PushOperator: %v", err)
	}
	push(t, c, 3)
	if err := c.Equals(); err != nil {
		t.Fatalf("Equals: %v", err)
	}

	s := c.Snapshot()
	if s.Mode != ModeResult {
		t.Errorf("mode = %v, want %v", s.Mode, ModeResult)
	}
	if s.Result != "15" {
		t.Errorf("result = %q, want %q", s.Result, "15")
	}
	if s.Display != "15" {
		t.Errorf("display = %q, want %q", s.Display, "15")
	}
}

func TestCalculatorPrecedence(t *testing.T) {
	// 2 + 3 * 4 = 14, not 20.
	c := New()
	push(t, c, 2)
	if err := c.PushOperator(OpAdd); err != nil {
		t.Fatalf("PushOperator: %v", err)
	}
	push(t, c, 3)
	if err := c.PushOperator(OpMultiply); err != nil {
		t.Fatalf("PushOperator: %v", err)
	}
	push(t, c, 4)
	if err := c.Equals(); err != nil {
		t.Fatalf("Equals: %v", err)
	}
	if got := c.Snapshot().Result; got != "14" {
		t.Errorf("result = %q, want %q", got, "14")
	}
}

func TestCalculatorOperandDigitLimit(t *testing.T) {
	c := New()
	for i := 0; i < MaxOperandDigits; i++ {
		if err := c.PushDigit(9); err != nil {
			t.Fatalf("PushDigit #%d: %v", i+1, err)
		}
	}
	err := c.PushDigit(9)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("PushDigit past limit = %v, want ErrInvalidInput", err)
	}
	if got := len(c.Snapshot().Current); got != MaxOperandDigits {
		t.Errorf("operand length = %d, want %d", got, MaxOperandDigits)
	}
}

func TestCalculatorOperatorRejections(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		c := New()
		if err := c.PushOperator(OpAdd); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("operator on empty = %v, want ErrInvalidInput", err)
		}
		if c.Mode() != ModeEmpty {
			t.Errorf("mode = %v, want %v", c.Mode(), ModeEmpty)
		}
	})

	t.Run("expecting operand", func(t *testing.T) {
		c := New()
		push(t, c, 7)
		if err := c.PushOperator(OpAdd); err != nil {
			t.Fatalf("PushOperator: %v", err)
		}
		if err := c.PushOperator(OpSubtract); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("second operator = %v, want ErrInvalidInput", err)
		}
		if got := c.Expression(); got != "7 +" {
			t.Errorf("expression = %q, want %q", got, "7 +")
		}
	})
}

func TestCalculatorEqualsRejections(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		c := New()
		if err := c.Equals(); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("equals on empty = %v, want ErrInvalidInput", err)
		}
	})

	t.Run("trailing operator", func(t *testing.T) {
		c := New()
		push(t, c, 7)
		if err := c.PushOperator(OpAdd); err != nil {
			t.Fatalf("PushOperator: %v", err)
		}
		if err := c.Equals(); !errors.Is(err, ErrMalformedExpression) {
			t.Errorf("equals = %v, want ErrMalformedExpression", err)
		}
		if c.Mode() != ModeError {
			t.Errorf("mode = %v, want %v", c.Mode(), ModeError)
		}
		// Expression preserved for inspection.
		if got := c.Expression(); got != "7 +" {
			t.Errorf("expression = %q, want %q", got, "7 +")
		}
	})
}

func TestCalculatorDivisionByZero(t *testing.T) {
	c := New()
	push(t, c, 8)
	if err := c.PushOperator(OpDivide); err != nil {
		t.Fatalf("PushOperator: %v", err)
	}
	push(t, c, 0)
	if err := c.Equals(); !errors.Is(err, ErrDivisionByZero) {
		t.Fatalf("Equals = %v, want ErrDivisionByZero", err)
	}

	s := c.Snapshot()
	if s.Mode != ModeError {
		t.Errorf("mode = %v, want %v", s.Mode, ModeError)
	}
	if s.Display != "Error" {
		t.Errorf("display = %q, want %q", s.Display, "Error")
	}
	if !strings.Contains(s.Fault, "division by zero") {
		t.Errorf("fault = %q, want division by zero", s.Fault)
	}

	// Digits and operators are rejected until cleared.
	if err := c.PushDigit(5); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("digit in error state = %v, want ErrInvalidInput", err)
	}
	if err := c.PushOperator(OpAdd); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("operator in error state = %v, want ErrInvalidInput", err)
	}

	c.Clear()
	if c.Mode() != ModeEmpty {
		t.Errorf("mode after clear = %v, want %v", c.Mode(), ModeEmpty)
	}
	push(t, c, 5)
	if got := c.Expression(); got != "5" {
		t.Errorf("expression after clear = %q, want %q", got, "5")
	}
}

func TestCalculatorDeleteFromErrorState(t *testing.T) {
	c := New()
	push(t, c, 8)
	if err := c.PushOperator(OpDivide); err != nil {
		t.Fatalf("PushOperator: %v", err)
	}
	push(t, c, 0)
	if err := c.Equals(); err == nil {
		t.Fatal("Equals: expected error")
	}

	// Delete clears the fault and peels the trailing zero, leaving "8 /".
	if err := c.Delete(); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	s := c.Snapshot()
	if s.Mode != ModeExpectingOperand {
		t.Errorf("mode = %v, want %v", s.Mode, ModeExpectingOperand)
	}
	if s.Fault != "" {
		t.Errorf("fault = %q, want empty", s.Fault)
	}
	if s.Expression != "8 /" {
		t.Errorf("expression = %q, want %q", s.Expression, "8 /")
	}

	push(t, c, 2)
	if err := c.Equals(); err != nil {
		t.Fatalf("Equals: %v", err)
	}
	if got := c.Snapshot().Result; got != "4" {
		t.Errorf("result = %q, want %q", got, "4")
	}
}

func TestCalculatorDelete(t *testing.T) {
	t.Run("digit by digit", func(t *testing.T) {
		c := New()
		push(t, c, 1, 2, 3)
		if err := c.Delete(); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		if got := c.Expression(); got != "12" {
			t.Errorf("expression = %q, want %q", got, "12")
		}
	})

	t.Run("peels operator then number", func(t *testing.T) {
		c := New()
		push(t, c, 4, 5)
		if err := c.PushOperator(OpAdd); err != nil {
			t.Fatalf("PushOperator: %v", err)
		}
		if err := c.Delete(); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		// Operator removed, number reopened for editing.
		if got := c.Expression(); got != "45" {
			t.Errorf("expression = %q, want %q", got, "45")
		}
		if c.Mode() != ModeEntering {
			t.Errorf("mode = %v, want %v", c.Mode(), ModeEntering)
		}
		if err := c.Delete(); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		if got := c.Expression(); got != "4" {
			t.Errorf("expression = %q, want %q", got, "4")
		}
	})

	t.Run("single digit back to empty", func(t *testing.T) {
		c := New()
		push(t, c, 7)
		if err := c.Delete(); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		s := c.Snapshot()
		if s.Mode != ModeEmpty || s.Expression != "" {
			t.Errorf("snapshot = %+v, want empty", s)
		}
	})

	t.Run("no-op when empty", func(t *testing.T) {
		c := New()
		if err := c.Delete(); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		if c.Mode() != ModeEmpty {
			t.Errorf("mode = %v, want %v", c.Mode(), ModeEmpty)
		}
	})
}

func TestCalculatorClearIdempotent(t *testing.T) {
	c := New()
	push(t, c, 9)
	c.Clear()
	c.Clear()
	s := c.Snapshot()
	if s.Mode != ModeEmpty || s.Expression != "" || s.Display != "0" {
		t.Errorf("snapshot after double clear = %+v", s)
	}
}

func TestCalculatorResultChaining(t *testing.T) {
	t.Run("operator reuses result", func(t *testing.T) {
		c := New()
		push(t, c, 6)
		if err := c.PushOperator(OpMultiply); err != nil {
			t.Fatalf("PushOperator: %v", err)
		}
		push(t, c, 7)
		if err := c.Equals(); err != nil {
			t.Fatalf("Equals: %v", err)
		}
		if err := c.PushOperator(OpSubtract); err != nil {
			t.Fatalf("PushOperator after result: %v", err)
		}
		push(t, c, 2)
		if err := c.Equals(); err != nil {
			t.Fatalf("Equals: %v", err)
		}
		if got := c.Snapshot().Result; got != "40" {
			t.Errorf("result = %q, want %q", got, "40")
		}
	})

	t.Run("digit starts fresh", func(t *testing.T) {
		c := New()
		push(t, c, 6)
		if err := c.PushOperator(OpMultiply); err != nil {
			t.Fatalf("PushOperator: %v", err)
		}
		push(t, c, 7)
		if err := c.Equals(); err != nil {
			t.Fatalf("Equals: %v", err)
		}
		push(t, c, 5)
		if got := c.Expression(); got != "5" {
			t.Errorf("expression = %q, want %q", got, "5")
		}
	})
}
