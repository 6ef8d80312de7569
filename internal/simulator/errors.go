package simulator

import (
	"errors"
	"fmt"

	"github.com/nguyentantai21042004/legal-os/internal/domain"
)

var (
	ErrInvalidID   = errors.New("invalid simulation id")
	ErrBusy        = errors.New("simulation is busy with another action")
	ErrNoMaterials = errors.New("no readable case materials")
	ErrEmptyAnswer = errors.New("answer is empty")
	ErrInvalidRole = errors.New("role must be plaintiff or defendant")
	ErrUnsupported = errors.New("unsupported audio format")
)

// TransitionError reports an action that the current state does not allow.
type TransitionError struct {
	From   domain.SimState
	Action string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s a simulation in state %s", e.Action, e.From)
}
