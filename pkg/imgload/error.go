package imgload

import "fmt"

type Code int

const (
	CodeOpen Code = iota + 1
	CodeFormat
	CodeDecode
	CodeTooLarge
	CodeConvert
)

func (c Code) String() string {
	switch c {
	case CodeOpen:
		return "open"
	case CodeFormat:
		return "unknown format"
	case CodeDecode:
		return "decode"
	case CodeTooLarge:
		return "too large"
	case CodeConvert:
		return "convert"
	default:
		return fmt.Sprintf("code(%d)", int(c))
	}
}

// Error reports a failed load. Path is empty when decoding from a reader.
type Error struct {
	Code Code
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("imgload: %s: %v", e.Code, e.Err)
	}
	return fmt.Sprintf("imgload: %s %s: %v", e.Code, e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
