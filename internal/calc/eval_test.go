package calc

import (
	"errors"
	"testing"
)

func toks(parts ...string) []Token {
	out := make([]Token, 0, len(parts))
	for _, p := range parts {
		switch p {
		case "+", "-", "*", "/":
			out = append(out, Token{Kind: TokenOperator, Text: p})
		default:
			out = append(out, Token{Kind: TokenNumber, Text: p})
		}
	}
	return out
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name  string
		input []Token
		want  float64
	}{
		{"single number", toks("42"), 42},
		{"addition", toks("12", "+", "3"), 15},
		{"subtraction below zero", toks("3", "-", "5"), -2},
		{"precedence", toks("2", "+", "3", "*", "4"), 14},
		{"left to right same level", toks("8", "/", "4", "/", "2"), 1},
		{"mixed", toks("10", "-", "6", "/", "3", "+", "1"), 9},
		{"fractional division", toks("7", "/", "2"), 3.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Evaluate(tt.input)
			if err != nil {
				t.Fatalf("Evaluate: %v", err)
			}
			if got != tt.want {
				t.Errorf("Evaluate = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEvaluateErrors(t *testing.T) {
	tests := []struct {
		name  string
		input []Token
		want  error
	}{
		{"empty", nil, ErrMalformedExpression},
		{"trailing operator", toks("5", "+"), ErrMalformedExpression},
		{"leading operator", toks("+", "5"), ErrMalformedExpression},
		{"adjacent numbers", toks("5", "6"), ErrMalformedExpression},
		{"division by zero", toks("8", "/", "0"), ErrDivisionByZero},
		{"nested division by zero", toks("1", "+", "8", "/", "0"), ErrDivisionByZero},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Evaluate(tt.input); !errors.Is(err, tt.want) {
				t.Errorf("Evaluate = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestFormatResult(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{15, "15"},
		{-2, "-2"},
		{3.5, "3.5"},
		{1.0 / 3.0, "0.333333"},
		{0, "0"},
	}
	for _, tt := range tests {
		if got := FormatResult(tt.in); got != tt.want {
			t.Errorf("FormatResult(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
