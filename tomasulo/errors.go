package tomasulo

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sarchlab/tomasulo/insts"
)

// ErrInvalidMemoryInit is wrapped by InitializeMemory when a requested
// address is negative or a value doesn't fit in 16 bits.
var ErrInvalidMemoryInit = errors.New("tomasulo: invalid memory initialization")

// LoadError wraps the structured {line, message} diagnostics Parse
// produced for a program that failed to load. A failed load mutates no
// core state.
type LoadError struct {
	Errors []insts.ParseError
}

func (e *LoadError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, pe := range e.Errors {
		msgs[i] = pe.Error()
	}
	return fmt.Sprintf("tomasulo: %d parse error(s): %s", len(e.Errors), strings.Join(msgs, "; "))
}
