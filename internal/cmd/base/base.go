// Package base holds what every vectara-examples command shares: the
// logger and UI, flag handling, configuration loading and the workflow
// runner.
package base

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
)

// Command is embedded by every command.
type Command struct {
	Log hclog.Logger
	UI  cli.Ui
}

// NewCommand returns a Command writing to log and ui.
func NewCommand(log hclog.Logger, ui cli.Ui) *Command {
	return &Command{
		Log: log,
		UI:  ui,
	}
}

// Context returns a context that is cancelled on interrupt.
func (c *Command) Context() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

// Setup parses args with f and opens a session from o. Problems are reported
// through the UI and leave the session nil.
func (c *Command) Setup(f *FlagSet, o *Options, args []string) *Session {
	if err := f.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return nil
	}
	if f.NArg() > 0 {
		c.UI.Error(fmt.Sprintf("unexpected arguments: %v", f.Args()))
		return nil
	}

	s, err := c.NewSession(o)
	if err != nil {
		c.UI.Error(fmt.Sprintf("error loading configuration: %v", err))
		return nil
	}
	return s
}
