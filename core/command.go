package core

import (
	"errors"
	"sync"

	"github.com/google/shlex"
)

// Console error replies. The error text is what goes back over the wire.
var (
	ErrUnknownCommand  = errors.New("invalid cmd")
	ErrInvalidArgument = errors.New("invalid arg")
)

// CommandHandler handles one console command.
// args holds the whitespace separated fields after the command letter.
// The returned reply is sent back verbatim on success.
type CommandHandler func(args []string) (string, error)

// Command represents a single-letter console command
type Command struct {
	Name    byte
	Usage   string // One-line help text
	Details string // Extra help lines, already indented
	Handler CommandHandler
}

// CommandRegistry holds all registered console commands
type CommandRegistry struct {
	mu       sync.RWMutex
	commands map[byte]*Command
	order    []byte
	help     string // Help text rebuilt on every registration
}

// NewCommandRegistry creates a new command registry
func NewCommandRegistry() *CommandRegistry {
	return &CommandRegistry{
		commands: make(map[byte]*Command),
	}
}

// Register adds a command to the registry.
// Registering the same letter again replaces the handler but keeps its help position.
func (r *CommandRegistry) Register(name byte, usage, details string, handler CommandHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.commands[name]; !exists {
		r.order = append(r.order, name)
	}

	r.commands[name] = &Command{
		Name:    name,
		Usage:   usage,
		Details: details,
		Handler: handler,
	}

	r.rebuildHelp()
}

// GetCommand retrieves a command by letter
func (r *CommandRegistry) GetCommand(name byte) (*Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, ok := r.commands[name]
	return cmd, ok
}

// Count returns the number of registered commands
func (r *CommandRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.commands)
}

// Dispatch parses a command line and calls the matching handler.
// A line whose first field is not a single registered letter is ErrUnknownCommand.
func (r *CommandRegistry) Dispatch(line string) (string, error) {
	fields, err := shlex.Split(line)
	if err != nil || len(fields) == 0 || len(fields[0]) != 1 {
		return "", ErrUnknownCommand
	}

	cmd, ok := r.GetCommand(fields[0][0])
	if !ok || cmd.Handler == nil {
		return "", ErrUnknownCommand
	}

	return cmd.Handler(fields[1:])
}

// Help returns the help text listing every command in registration order
func (r *CommandRegistry) Help() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.help
}

const helpRule = "-------------------------------------------------------\n"

// rebuildHelp rebuilds the help string
// Must be called with lock held
func (r *CommandRegistry) rebuildHelp() {
	help := helpRule
	for _, name := range r.order {
		cmd := r.commands[name]
		help += string(cmd.Name) + " - " + cmd.Usage + "\n"
		if cmd.Details != "" {
			help += cmd.Details
		}
	}
	help += helpRule
	r.help = help
}
