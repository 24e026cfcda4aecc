package dumper

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidListStart is returned for an ordered list start that is neither
// a number nor a single letter.
var ErrInvalidListStart = errors.New("invalid list start")

const (
	lowerAlphabet = "abcdefghijklmnopqrstuvwxyz"
	upperAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// Numbering is the enumeration style of an ordered list.
type Numbering string

const (
	NumberingDecimal Numbering = "1"
	NumberingLower   Numbering = "a"
	NumberingUpper   Numbering = "A"
)

// ListStart is the parsed start attribute of an ordered list. Offset is the
// 1-based position of the first item.
type ListStart struct {
	Numbering Numbering
	Offset    int
	Label     string
}

// ParseListStart interprets an ordered list start value. An empty value
// starts a decimal list at 1.
func ParseListStart(value string) (ListStart, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return ListStart{Numbering: NumberingDecimal, Offset: 1, Label: "1"}, nil
	}
	if n, err := strconv.Atoi(value); err == nil {
		return ListStart{Numbering: NumberingDecimal, Offset: n, Label: strconv.Itoa(n)}, nil
	}
	if len(value) == 1 {
		if i := strings.IndexByte(lowerAlphabet, value[0]); i >= 0 {
			return ListStart{Numbering: NumberingLower, Offset: i + 1, Label: value}, nil
		}
		if i := strings.IndexByte(upperAlphabet, value[0]); i >= 0 {
			return ListStart{Numbering: NumberingUpper, Offset: i + 1, Label: value}, nil
		}
	}
	return ListStart{}, fmt.Errorf("start %q: %w", value, ErrInvalidListStart)
}

// nextListLabel advances an ordered list label. Letters stay in their
// alphabet and wrap after the last letter. ok is false for labels that are
// neither numbers nor single letters.
func nextListLabel(label string) (next string, ok bool) {
	if n, err := strconv.Atoi(label); err == nil {
		return strconv.Itoa(n + 1), true
	}
	if len(label) != 1 {
		return "", false
	}
	for _, alphabet := range []string{lowerAlphabet, upperAlphabet} {
		if i := strings.IndexByte(alphabet, label[0]); i >= 0 {
			return string(alphabet[(i+1)%len(alphabet)]), true
		}
	}
	return "", false
}
