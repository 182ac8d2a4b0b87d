package apikey

import (
	"flag"

	"github.com/hashicorp-forge/vectara-examples/internal/cmd/base"
	"github.com/hashicorp-forge/vectara-examples/pkg/vectara"
	"github.com/hashicorp-forge/vectara-examples/pkg/vectara/schema"
)

type Command struct {
	*base.Command

	opts            base.Options
	flagDescription string
	flagIndexing    bool
}

func (c *Command) Synopsis() string {
	return "Create, list, disable and delete an API key"
}

func (c *Command) Help() string {
	return `Usage: vectara-examples apikey [options]

  This command creates an API key for the corpus, lists the account's keys,
  disables the new key and finally deletes it. The run stops at the first
  failed step.` + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("apikey", flag.ContinueOnError))
	c.opts.AddFlags(f)

	f.StringVar(
		&c.flagDescription, "description", "vectara-examples key",
		"Description of the created key.",
	)
	f.BoolVar(
		&c.flagIndexing, "indexing", false,
		"Create a key that can index as well as query.",
	)

	return f
}

func (c *Command) Run(args []string) int {
	s := c.Setup(c.Flags(), &c.opts, args)
	if s == nil {
		return 1
	}
	defer s.Close()

	if s.Config.CorpusID == 0 {
		c.UI.Error("corpus-id is required")
		return 1
	}

	ctx, cancel := c.Context()
	defer cancel()

	cred, err := s.Credential(ctx, false)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	w := s.Workflow(cred)

	keyType := schema.APIKeyTypeServing
	if c.flagIndexing {
		keyType = schema.APIKeyTypeServingIndexing
	}

	out, ok := w.REST(ctx, "create API key", vectara.CreateAPIKey, schema.CreateAPIKeyRequest{
		APIKeyData: []schema.APIKeyData{{
			Description: c.flagDescription,
			APIKeyType:  keyType,
			CorpusID:    []int64{s.Config.CorpusID},
		}},
	})
	var keyID string
	if created, ok := base.Result[schema.CreateAPIKeyResponse](w, "create API key", out, ok); ok {
		keyID = created.KeyIDs()[0]
		w.Print("create API key", map[string]string{"key_id": keyID})
	}

	out, ok = w.REST(ctx, "list API keys", vectara.ListAPIKeys, schema.ListAPIKeysRequest{
		NumResults:      100,
		ReadCorporaInfo: true,
	})
	if list, ok := base.Result[schema.ListAPIKeysResponse](w, "list API keys", out, ok); ok {
		w.Print("list API keys", list.KeyData)
	}

	w.REST(ctx, "disable API key", vectara.EnableAPIKey, schema.EnableAPIKeyRequest{
		KeyEnablement: []schema.KeyEnablement{{KeyID: keyID, Enable: false}},
	})
	w.REST(ctx, "delete API key", vectara.DeleteAPIKey, schema.DeleteAPIKeyRequest{
		KeyID: []string{keyID},
	})

	return w.ExitCode()
}
