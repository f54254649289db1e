package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind represents the type of value held by a cell
type Kind int

const (
	KindEmpty Kind = iota
	KindString
	KindNumber
	KindBool
	KindDate
	KindOther // Formulas, errors and anything the backend cannot classify
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "EMPTY"
	case KindString:
		return "STRING"
	case KindNumber:
		return "NUMBER"
	case KindBool:
		return "BOOL"
	case KindDate:
		return "DATE"
	default:
		return "OTHER"
	}
}

// Value is the content of a single cell
type Value struct {
	Kind Kind   // What the cell holds
	Text string // Raw text as stored in the workbook
}

// Empty is the value of a blank cell
var Empty = Value{Kind: KindEmpty}

// StringValue builds a string cell value
func StringValue(s string) Value {
	return Value{Kind: KindString, Text: s}
}

// NumberValue builds a numeric cell value
func NumberValue(f float64) Value {
	return Value{Kind: KindNumber, Text: strconv.FormatFloat(f, 'f', -1, 64)}
}

// ValueOf classifies an arbitrary Go value the way a spreadsheet cell would store it
func ValueOf(v any) Value {
	switch x := v.(type) {
	case nil:
		return Empty
	case Value:
		return x
	case string:
		if x == "" {
			return Empty
		}
		return StringValue(x)
	case bool:
		return Value{Kind: KindBool, Text: strconv.FormatBool(x)}
	case int:
		return NumberValue(float64(x))
	case int64:
		return NumberValue(float64(x))
	case float32:
		return NumberValue(float64(x))
	case float64:
		return NumberValue(x)
	default:
		return Value{Kind: KindOther, Text: fmt.Sprint(x)}
	}
}

// IsEmpty reports whether the cell holds nothing
func (v Value) IsEmpty() bool {
	return v.Kind == KindEmpty
}

// IsString reports whether the cell holds text
func (v Value) IsString() bool {
	return v.Kind == KindString
}

// Contains reports whether the value is a string containing keyword.
// Matching is case-sensitive with no normalization.
func (v Value) Contains(keyword string) bool {
	return v.Kind == KindString && strings.Contains(v.Text, keyword)
}

// Native converts the value back into the Go type a writer expects, so copying
// a cell into another workbook preserves its type
func (v Value) Native() any {
	switch v.Kind {
	case KindEmpty:
		return nil
	case KindNumber:
		if f, err := strconv.ParseFloat(v.Text, 64); err == nil {
			return f
		}
	case KindBool:
		if b, err := strconv.ParseBool(v.Text); err == nil {
			return b
		}
	}
	return v.Text
}

// String returns the cell text
func (v Value) String() string {
	return v.Text
}
