package core

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Operation names a registered text operation.
type Operation string

const (
	OpReverse         Operation = "reverse"
	OpCountVowels     Operation = "count-vowels"
	OpCapitalizeWords Operation = "capitalize-words"
)

var aliases = map[string]Operation{
	"reverse":          OpReverse,
	"rev":              OpReverse,
	"count-vowels":     OpCountVowels,
	"vowels":           OpCountVowels,
	"capitalize-words": OpCapitalizeWords,
	"capitalize":       OpCapitalizeWords,
	"title":            OpCapitalizeWords,
}

// Operations returns every registered operation in a stable order.
func Operations() []Operation {
	return []Operation{OpReverse, OpCountVowels, OpCapitalizeWords}
}

// ParseOperation resolves a canonical name or alias (case-insensitive).
func ParseOperation(name string) (Operation, error) {
	op, ok := aliases[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownOperation, name)
	}
	return op, nil
}

// Result is the outcome of applying an Operation to a text value.
// Output is a string for reverse/capitalize-words and an int for count-vowels.
type Result struct {
	Operation Operation `json:"operation" yaml:"operation"`
	Input     string    `json:"input" yaml:"input"`
	Output    any       `json:"output" yaml:"output"`
}

// String renders the output as plain text.
func (r Result) String() string {
	switch v := r.Output.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	default:
		return fmt.Sprint(v)
	}
}

// Validate rejects text that is not valid UTF-8.
func Validate(text string) error {
	if !utf8.ValidString(text) {
		return fmt.Errorf("%w: text is not valid UTF-8", ErrInvalidArgument)
	}
	return nil
}

// Apply validates text and runs op on it.
func Apply(op Operation, text string) (Result, error) {
	if err := Validate(text); err != nil {
		return Result{}, err
	}

	res := Result{Operation: op, Input: text}
	switch op {
	case OpReverse:
		res.Output = Reverse(text)
	case OpCountVowels:
		res.Output = CountVowels(text)
	case OpCapitalizeWords:
		res.Output = CapitalizeWords(text)
	default:
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownOperation, op)
	}
	return res, nil
}
