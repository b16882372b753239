package ports

import (
	"context"

	"github.com/mrtimely/timely-cli/internal/domain"
)

// BoardCommand represents a user action issued from the interactive board.
type BoardCommand string

const (
	// CmdSelect switches time tracking to an activity.
	CmdSelect BoardCommand = "select"

	// CmdComplete requests delayed completion of the running activity.
	CmdComplete BoardCommand = "complete"

	// CmdCancelComplete aborts a pending completion countdown.
	CmdCancelComplete BoardCommand = "cancel_complete"

	// CmdBreak starts an explicit break.
	CmdBreak BoardCommand = "break"

	// CmdAdd creates a new activity. The argument carries the name.
	CmdAdd BoardCommand = "add"

	// CmdAddMinute extends the planned duration by one minute.
	CmdAddMinute BoardCommand = "add_minute"

	// CmdReset clears the session and timeline.
	CmdReset BoardCommand = "reset"

	// CmdQuit exits the board.
	CmdQuit BoardCommand = "quit"
)

// Board is the driving port for the interactive activity board. The board
// pulls fresh state on every tick and pushes user commands back through the
// callback.
type Board interface {
	// Run starts the board and blocks until the user quits.
	Run(ctx context.Context, initialState *domain.CurrentState) error

	// Stop gracefully stops the board.
	Stop()

	// SetFetchState sets a function that returns the current tracker state,
	// called on each tick to refresh the display.
	SetFetchState(fetch func() *domain.CurrentState)

	// SetCommandCallback sets the function invoked for board commands. The
	// argument carries the activity id for CmdSelect, the new name for
	// CmdAdd, and is empty otherwise.
	SetCommandCallback(callback func(cmd BoardCommand, arg string) error)
}
