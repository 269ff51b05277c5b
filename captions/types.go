package captions

import (
	"errors"
	"fmt"
	"strings"
)

const (
	CaptionExtension   = ".txt"
	DefaultSummaryName = "summary.txt"
)

var (
	ErrTargetRequired   = errors.New("target text is required")
	ErrUnknownOperation = errors.New("unsupported operation")
)

type (
	// Operation is how Edit changes the content of each file.
	Operation string

	// Result is what a batch did, with the line that was logged for it.
	Result struct {
		Count int
		Log   string
	}

	// SyncResult counts the captions Sync created and deleted.
	SyncResult struct {
		Created int
		Deleted int
		Log     string
	}
)

const (
	Insert  Operation = "insert"
	Append  Operation = "append"
	Replace Operation = "replace"
	Remove  Operation = "remove"
)

func ParseOperation(s string) (Operation, error) {
	switch op := Operation(strings.ToLower(s)); op {
	case Insert, Append, Replace, Remove:
		return op, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownOperation, s)
}

// Title is the operation name as written at the start of a log line.
func (o Operation) Title() string {
	if o == "" {
		return ""
	}
	return strings.ToUpper(string(o[:1])) + string(o[1:])
}
