package query

import (
	"flag"

	"github.com/hashicorp-forge/vectara-examples/internal/cmd/base"
	"github.com/hashicorp-forge/vectara-examples/pkg/vectara"
	"github.com/hashicorp-forge/vectara-examples/pkg/vectara/rpc"
	"github.com/hashicorp-forge/vectara-examples/pkg/vectara/schema"
)

type Command struct {
	*base.Command

	opts           base.Options
	flagQuery      string
	flagNumResults uint
	flagFilter     string
	flagGRPC       bool
}

func (c *Command) Synopsis() string {
	return "Query a corpus"
}

func (c *Command) Help() string {
	return `Usage: vectara-examples query [options]

  This command runs one query against the corpus and prints the matching
  passages. It authenticates with the API key when one is configured and
  with an OAuth2 token otherwise.` + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("query", flag.ContinueOnError))
	c.opts.AddFlags(f)

	f.StringVar(
		&c.flagQuery, "query", base.SampleQuery,
		"Query text.",
	)
	f.UintVar(
		&c.flagNumResults, "num-results", 10,
		"Maximum number of query results.",
	)
	f.StringVar(
		&c.flagFilter, "filter", "",
		"Metadata filter expression, e.g. doc.source = 'vectara-examples'.",
	)
	f.BoolVar(
		&c.flagGRPC, "grpc", false,
		"Query over gRPC instead of REST.",
	)

	return f
}

func (c *Command) Run(args []string) int {
	s := c.Setup(c.Flags(), &c.opts, args)
	if s == nil {
		return 1
	}
	defer s.Close()

	corpusID := s.Config.CorpusID
	if corpusID == 0 {
		c.UI.Error("corpus-id is required")
		return 1
	}

	ctx, cancel := c.Context()
	defer cancel()

	cred, err := s.Credential(ctx, true)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	w := s.Workflow(cred)

	req := schema.BatchQueryRequest{
		Query: []schema.QueryRequest{{
			Query:      c.flagQuery,
			NumResults: uint32(c.flagNumResults),
			CorpusKey: []schema.CorpusKey{{
				CustomerID:     s.Config.CustomerID,
				CorpusID:       corpusID,
				MetadataFilter: c.flagFilter,
			}},
		}},
	}

	var (
		out vectara.Outcome
		ok  bool
	)
	if c.flagGRPC {
		out, ok = w.GRPC(ctx, "query", vectara.Query, req, rpc.WithCorpusID(corpusID))
	} else {
		out, ok = w.REST(ctx, "query", vectara.Query, req)
	}
	if resp, ok := base.Result[schema.BatchQueryResponse](w, "query", out, ok); ok {
		w.Print("query", resp.Hits())
	}

	return w.ExitCode()
}
