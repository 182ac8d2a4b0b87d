package cmd

import (
	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/hashicorp-forge/vectara-examples/internal/cmd/base"
	"github.com/hashicorp-forge/vectara-examples/internal/cmd/commands/apikey"
	"github.com/hashicorp-forge/vectara-examples/internal/cmd/commands/corpus"
	"github.com/hashicorp-forge/vectara-examples/internal/cmd/commands/grpc"
	"github.com/hashicorp-forge/vectara-examples/internal/cmd/commands/query"
	"github.com/hashicorp-forge/vectara-examples/internal/cmd/commands/rest"
	"github.com/hashicorp-forge/vectara-examples/internal/cmd/commands/token"
	"github.com/hashicorp-forge/vectara-examples/internal/cmd/commands/user"
	"github.com/hashicorp-forge/vectara-examples/internal/cmd/commands/version"
)

// Commands is the mapping of all available commands.
var Commands map[string]cli.CommandFactory

func initCommands(log hclog.Logger, ui cli.Ui) {
	b := base.NewCommand(log, ui)

	Commands = map[string]cli.CommandFactory{
		"apikey": func() (cli.Command, error) {
			return &apikey.Command{Command: b}, nil
		},
		"corpus": func() (cli.Command, error) {
			return &corpus.Command{Command: b}, nil
		},
		"grpc": func() (cli.Command, error) {
			return &grpc.Command{Command: b}, nil
		},
		"query": func() (cli.Command, error) {
			return &query.Command{Command: b}, nil
		},
		"rest": func() (cli.Command, error) {
			return &rest.Command{Command: b}, nil
		},
		"token": func() (cli.Command, error) {
			return &token.Command{Command: b}, nil
		},
		"user": func() (cli.Command, error) {
			return &user.Command{Command: b}, nil
		},
		"version": func() (cli.Command, error) {
			return &version.Command{Command: b}, nil
		},
	}
}
