package tui

import (
	"context"
	"fmt"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mrtimely/timely-cli/internal/config"
	"github.com/mrtimely/timely-cli/internal/domain"
	"github.com/mrtimely/timely-cli/internal/ports"
)

// Board implements the ports.Board interface using Bubbletea.
type Board struct {
	program *tea.Program
	model   Model
	ctx     context.Context
	cancel  context.CancelFunc
	mu      sync.RWMutex
	wg      sync.WaitGroup

	completion  config.CompletionConfig
	theme       *config.ThemeConfig
	fetchState  func() *domain.CurrentState
	cmdCallback func(cmd ports.BoardCommand, arg string) error

	notificationsEnabled bool
	notificationToggle   func(bool)
	onActivityComplete   func(name string, tracked time.Duration)
}

// NewBoard creates a new board adapter.
func NewBoard(completion config.CompletionConfig, theme *config.ThemeConfig) *Board {
	return &Board{
		completion: completion,
		theme:      theme,
	}
}

// Ensure Board implements ports.Board.
var _ ports.Board = (*Board)(nil)

// Run starts the board interface and blocks until the user quits.
func (b *Board) Run(ctx context.Context, initialState *domain.CurrentState) error {
	b.model = NewModel(initialState, b.completion, b.theme)
	b.model.fetchState = b.fetchState
	b.model.commandCallback = b.cmdCallback
	b.model.notificationsEnabled = b.notificationsEnabled
	b.model.notificationToggle = b.notificationToggle
	b.model.onActivityComplete = b.onActivityComplete

	b.mu.Lock()
	b.program = tea.NewProgram(
		b.model,
		tea.WithAltScreen(),
	)
	b.mu.Unlock()

	b.ctx, b.cancel = context.WithCancel(ctx)
	defer b.cancel()

	// Quit the program when the context is cancelled
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		<-b.ctx.Done()
		b.mu.RLock()
		program := b.program
		b.mu.RUnlock()
		if program != nil {
			program.Quit()
		}
	}()

	_, err := b.program.Run()
	if err != nil {
		return fmt.Errorf("failed to run board: %w", err)
	}

	b.cancel()
	b.wg.Wait()

	return nil
}

// Stop gracefully stops the board interface.
func (b *Board) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.cancel != nil {
		b.cancel()
	}
	if b.program != nil {
		b.program.Quit()
	}
}

// SetFetchState sets the function used to refresh state on each tick.
func (b *Board) SetFetchState(fetch func() *domain.CurrentState) {
	b.mu.Lock()
	b.fetchState = fetch
	b.mu.Unlock()
}

// SetCommandCallback sets a function to call when board commands are issued.
func (b *Board) SetCommandCallback(callback func(cmd ports.BoardCommand, arg string) error) {
	b.mu.Lock()
	b.cmdCallback = callback
	b.mu.Unlock()
}

// SetNotifications wires the notification toggle into the board.
func (b *Board) SetNotifications(enabled bool, toggle func(bool)) {
	b.mu.Lock()
	b.notificationsEnabled = enabled
	b.notificationToggle = toggle
	b.mu.Unlock()
}

// SetActivityCompleteCallback sets a function fired when a completion
// countdown finalizes, with the activity name and its tracked total.
func (b *Board) SetActivityCompleteCallback(callback func(name string, tracked time.Duration)) {
	b.mu.Lock()
	b.onActivityComplete = callback
	b.mu.Unlock()
}

// UpdateState pushes a fresh state into the running board.
func (b *Board) UpdateState(state *domain.CurrentState) {
	b.mu.RLock()
	program := b.program
	b.mu.RUnlock()

	if program != nil {
		program.Send(state)
	}
}
