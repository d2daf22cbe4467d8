package domain

import (
	"fmt"
	"runtime"
)

// Location represents the source position of a registration call.
type Location struct {
	File string `json:"file"`
	Line int    `json:"line"`
}

// CaptureLocation records the source position of a caller. skip counts
// additional stack frames above the immediate caller, as in runtime.Caller.
// It returns nil when the position cannot be resolved.
func CaptureLocation(skip int) *Location {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return nil
	}
	return &Location{File: file, Line: line}
}

// String renders the location as "file:line".
func (l Location) String() string {
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}
