package domain

import (
	"fmt"
	"strings"
)

const (
	// RunningResponse acknowledges a matched command.
	RunningResponse = "Running command..."
	// DefaultResponse is sent when nothing in the registry matched.
	DefaultResponse = "Not sure what you mean. Try *help*."
	// HelpCommand always resolves to the registry listing.
	HelpCommand = "help"
)

// TieBreak resolves overlapping command names in substring mode, where one
// registered name may be contained in another.
type TieBreak string

const (
	// TieBreakFirst picks the first registry entry whose name is contained
	// in the command. Registry order is precedence order.
	TieBreakFirst TieBreak = "first"
	// TieBreakLongest picks the contained entry with the longest name.
	TieBreakLongest TieBreak = "longest"
)

// MatchOptions control how a command string is resolved against the registry.
type MatchOptions struct {
	// Exact requires the command to equal a registry name. When false, a
	// registry name occurring anywhere inside the command matches, which
	// permits trailing arguments after the command word.
	Exact bool
	// TieBreak is only consulted in substring mode.
	TieBreak TieBreak
}

// MatchResult is the outcome of a successful registry match.
type MatchResult struct {
	// Command is the registry name that matched, or HelpCommand.
	Command string
	// Response is the canned text to send back.
	Response string
}

// Registry is the static, ordered set of commands the bot acts on. It is
// never mutated after construction.
type Registry struct {
	commands []Command
}

func NewRegistry(commands []Command) *Registry {
	return &Registry{commands: append([]Command(nil), commands...)}
}

// Commands returns the registry entries in registration order.
func (r *Registry) Commands() []Command {
	return append([]Command(nil), r.commands...)
}

// Match resolves a normalized (lower-cased, trimmed) command against the
// registry. ok is false when nothing matched and the caller should fall back
// to DefaultResponse. The help command always matches and yields the listing.
func (r *Registry) Match(command string, opts MatchOptions) (MatchResult, bool) {
	if command == HelpCommand {
		return MatchResult{Command: HelpCommand, Response: r.help()}, true
	}

	if opts.Exact {
		for _, c := range r.commands {
			if command == strings.ToLower(c.Name) {
				return MatchResult{Command: c.Name, Response: RunningResponse}, true
			}
		}

		return MatchResult{}, false
	}

	return r.matchSubstring(command, opts.TieBreak)
}

func (r *Registry) matchSubstring(command string, tieBreak TieBreak) (MatchResult, bool) {
	var best string

	for _, c := range r.commands {
		name := strings.ToLower(c.Name)
		if !strings.Contains(command, name) {
			continue
		}

		if tieBreak != TieBreakLongest {
			return MatchResult{Command: c.Name, Response: RunningResponse}, true
		}

		if len(name) > len(best) {
			best = c.Name
		}
	}

	if best != "" {
		return MatchResult{Command: best, Response: RunningResponse}, true
	}

	return MatchResult{}, false
}

func (r *Registry) help() string {
	sb := &strings.Builder{}

	for _, c := range r.commands {
		fmt.Fprintf(sb, "\n*%s*:\n%s\n", c.Name, c.Description)
	}

	return sb.String()
}
