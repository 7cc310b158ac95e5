package effectchain

import (
	"errors"
	"fmt"
)

// ErrUnknownEffect is returned when a step references an unregistered effect.
var ErrUnknownEffect = errors.New("unknown effect type")

// StageError reports which chain stage failed. Index is 1-based.
type StageError struct {
	Index int
	Name  string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("effectchain: stage %d (%s): %v", e.Index, e.Name, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }
