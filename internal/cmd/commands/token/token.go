package token

import (
	"flag"
	"fmt"
	"time"

	"github.com/hashicorp-forge/vectara-examples/internal/cmd/base"
)

type Command struct {
	*base.Command

	opts      base.Options
	flagPrint bool
}

type result struct {
	TokenType   string    `json:"token_type" yaml:"token_type"`
	ObtainedAt  time.Time `json:"obtained_at" yaml:"obtained_at"`
	Expiry      time.Time `json:"expiry,omitempty" yaml:"expiry,omitempty"`
	AccessToken string    `json:"access_token,omitempty" yaml:"access_token,omitempty"`
}

func (c *Command) Synopsis() string {
	return "Obtain an OAuth2 token for the app client"
}

func (c *Command) Help() string {
	return `Usage: vectara-examples token [options]

  This command exchanges the app client ID and secret for a bearer token
  and reports its type and expiry. The token itself is only printed with
  -print.` + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("token", flag.ContinueOnError))
	c.opts.AddFlags(f)

	f.BoolVar(
		&c.flagPrint, "print", false,
		"Print the raw access token.",
	)

	return f
}

func (c *Command) Run(args []string) int {
	s := c.Setup(c.Flags(), &c.opts, args)
	if s == nil {
		return 1
	}
	defer s.Close()

	ctx, cancel := c.Context()
	defer cancel()

	tok, err := s.FetchToken(ctx)
	if err != nil {
		c.UI.Error(fmt.Sprintf("error fetching token: %v", err))
		return 1
	}
	c.Log.Info("token obtained", "type", tok.TokenType, "expiry", tok.Expiry)

	r := result{
		TokenType:  tok.TokenType,
		ObtainedAt: tok.ObtainedAt,
		Expiry:     tok.Expiry,
	}
	if c.flagPrint {
		r.AccessToken = tok.AccessToken
	}
	if err := s.Print(r); err != nil {
		c.UI.Error(fmt.Sprintf("error rendering token: %v", err))
		return 1
	}
	return 0
}
