package syntax

import (
	"fmt"
	"strings"
)

// Error is a located parse or type error. It is data, not a fault: callers
// surface it as a diagnostic.
type Error struct {
	Loc Loc
	Msg string
}

func (e Error) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Loc.Line, e.Loc.Col, e.Msg)
}

// ErrorList collects errors in the order they were found.
type ErrorList []Error

// Add appends an error at loc.
func (l *ErrorList) Add(loc Loc, format string, args ...any) {
	*l = append(*l, Error{Loc: loc, Msg: fmt.Sprintf(format, args...)})
}

func (l ErrorList) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}
	msgs := make([]string, len(l))
	for i, e := range l {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

// Err returns nil for an empty list, so a clean result can be checked with
// `if err := list.Err(); err != nil`.
func (l ErrorList) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}
