package grpc

import (
	"flag"
	"fmt"

	"github.com/google/uuid"

	"github.com/hashicorp-forge/vectara-examples/internal/cmd/base"
	"github.com/hashicorp-forge/vectara-examples/pkg/vectara"
	"github.com/hashicorp-forge/vectara-examples/pkg/vectara/rpc"
	"github.com/hashicorp-forge/vectara-examples/pkg/vectara/schema"
)

type Command struct {
	*base.Command

	opts           base.Options
	flagCorpusName string
	flagDocumentID string
	flagQuery      string
	flagNumResults uint
}

func (c *Command) Synopsis() string {
	return "Run the corpus lifecycle over gRPC"
}

func (c *Command) Help() string {
	return `Usage: vectara-examples grpc [options]

  This command creates a corpus, indexes a document, queries it, deletes the
  document and finally deletes the corpus, all over gRPC. The run stops at
  the first failed step.` + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("grpc", flag.ContinueOnError))
	c.opts.AddFlags(f)

	f.StringVar(
		&c.flagCorpusName, "corpus-name", "",
		"Name of the created corpus (default a random name).",
	)
	f.StringVar(
		&c.flagDocumentID, "document-id", "",
		"ID of the indexed document (default a random ID).",
	)
	f.StringVar(
		&c.flagQuery, "query", base.SampleQuery,
		"Query text.",
	)
	f.UintVar(
		&c.flagNumResults, "num-results", 10,
		"Maximum number of query results.",
	)

	return f
}

func (c *Command) Run(args []string) int {
	s := c.Setup(c.Flags(), &c.opts, args)
	if s == nil {
		return 1
	}
	defer s.Close()

	customerID := s.Config.CustomerID
	name := c.flagCorpusName
	if name == "" {
		name = "vectara-examples-" + uuid.NewString()[:8]
	}
	docID := c.flagDocumentID
	if docID == "" {
		docID = base.NewDocumentID()
	}

	ctx, cancel := c.Context()
	defer cancel()

	cred, err := s.Credential(ctx, false)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	w := s.Workflow(cred)

	out, ok := w.GRPC(ctx, "create corpus", vectara.CreateCorpus, schema.CreateCorpusRequest{
		Corpus: schema.Corpus{Name: name, Description: "Created by vectara-examples"},
	})
	var corpusID int64
	if created, ok := base.Result[schema.CreateCorpusResponse](w, "create corpus", out, ok); ok {
		corpusID = int64(created.CorpusID)
		w.Print("create corpus", map[string]any{"corpus_id": corpusID, "name": name})
	}
	inCorpus := rpc.WithCorpusID(corpusID)

	out, ok = w.GRPC(ctx, "index document", vectara.Index, schema.IndexRequest{
		CustomerID: customerID,
		CorpusID:   corpusID,
		Document:   base.SampleDocument(docID),
	}, inCorpus)
	if resp, ok := base.Result[schema.IndexResponse](w, "index document", out, ok); ok {
		w.Print("index document", resp.QuotaConsumed)
	}

	out, ok = w.GRPC(ctx, "query", vectara.Query, schema.BatchQueryRequest{
		Query: []schema.QueryRequest{{
			Query:      c.flagQuery,
			NumResults: uint32(c.flagNumResults),
			CorpusKey:  []schema.CorpusKey{{CustomerID: customerID, CorpusID: corpusID}},
		}},
	}, inCorpus)
	if resp, ok := base.Result[schema.BatchQueryResponse](w, "query", out, ok); ok {
		w.Print("query", resp.Hits())
	}

	w.GRPC(ctx, "delete document", vectara.DeleteDoc, schema.DeleteDocRequest{
		CustomerID: customerID,
		CorpusID:   corpusID,
		DocumentID: docID,
	}, inCorpus)
	w.GRPC(ctx, "delete corpus", vectara.DeleteCorpus, schema.CorpusRequest{
		CustomerID: customerID,
		CorpusID:   corpusID,
	})

	if w.Err() == nil {
		c.UI.Info(fmt.Sprintf("corpus %d created, used and deleted", corpusID))
	}
	return w.ExitCode()
}
