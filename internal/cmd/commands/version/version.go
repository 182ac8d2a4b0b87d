package version

import (
	"github.com/hashicorp-forge/vectara-examples/internal/cmd/base"
	"github.com/hashicorp-forge/vectara-examples/internal/version"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Print the version"
}

func (c *Command) Help() string {
	return `Usage: vectara-examples version`
}

func (c *Command) Run(args []string) int {
	c.UI.Output(version.Version)
	return 0
}
