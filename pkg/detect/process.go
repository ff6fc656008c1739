package detect

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/shirou/gopsutil/v3/process"
)

// DefaultProcessCommand lists processes when the process table cannot be
// read directly.
const DefaultProcessCommand = "ps"

// FridaProcessPatterns are matched case-insensitively against process names
// and command lines.
var FridaProcessPatterns = []string{"frida-server", "frida-agent", "frida"}

// ProcessScan fires when a running process matches one of Patterns.
type ProcessScan struct {
	Patterns []string
	// Command is run when the process table is unreadable. Its output is
	// matched line by line. Empty disables the fallback.
	Command string

	list func(ctx context.Context) ([]string, error)
}

// NewProcessScan returns a scan for the Frida process names.
func NewProcessScan(command string) *ProcessScan {
	return &ProcessScan{Patterns: FridaProcessPatterns, Command: command}
}

func (c *ProcessScan) Name() string       { return "frida_process" }
func (c *ProcessScan) Category() Category { return CategoryHook }

func (c *ProcessScan) Detect(ctx context.Context) (bool, error) {
	list := c.list
	if list == nil {
		list = listProcesses
	}
	lines, err := list(ctx)
	if err != nil || len(lines) == 0 {
		if c.Command == "" {
			return false, err
		}
		lines, err = runCommand(ctx, c.Command)
		if err != nil {
			return false, err
		}
	}
	for _, line := range lines {
		if containsAny(strings.ToLower(line), c.Patterns) {
			return true, nil
		}
	}
	return false, nil
}

func listProcesses(ctx context.Context) ([]string, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("list processes: %w", err)
	}
	out := make([]string, 0, len(procs))
	for _, p := range procs {
		name, err := p.NameWithContext(ctx)
		if err != nil {
			continue
		}
		if cmdline, err := p.CmdlineWithContext(ctx); err == nil && cmdline != "" {
			name += " " + cmdline
		}
		out = append(out, name)
	}
	return out, nil
}

// runCommand splits command with shell quoting rules and returns its stdout
// lines.
func runCommand(ctx context.Context, command string) ([]string, error) {
	args, err := shellquote.Split(command)
	if err != nil {
		return nil, fmt.Errorf("parse command %q: %w", command, err)
	}
	if len(args) == 0 {
		return nil, errors.New("empty command")
	}
	out, err := exec.CommandContext(ctx, args[0], args[1:]...).Output()
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", args[0], err)
	}
	return strings.Split(string(bytes.TrimRight(out, "\n")), "\n"), nil
}

func containsAny(s string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(s, strings.ToLower(p)) {
			return true
		}
	}
	return false
}
