package rest

import (
	"flag"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/hashicorp-forge/vectara-examples/internal/cmd/base"
	"github.com/hashicorp-forge/vectara-examples/pkg/vectara"
	"github.com/hashicorp-forge/vectara-examples/pkg/vectara/schema"
)

type Command struct {
	*base.Command

	opts           base.Options
	flagCorpusName string
	flagUploadFile string
	flagDocumentID string
	flagQuery      string
	flagNumResults uint

	// fs is replaced in tests.
	fs afero.Fs
}

func (c *Command) Synopsis() string {
	return "Run the corpus lifecycle over REST"
}

func (c *Command) Help() string {
	return `Usage: vectara-examples rest [options]

  This command creates a corpus, uploads a file into it, indexes a document,
  queries it, deletes the document, resets the corpus and finally deletes
  it, all over the REST API. The run stops at the first failed step.` + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("rest", flag.ContinueOnError))
	c.opts.AddFlags(f)

	f.StringVar(
		&c.flagCorpusName, "corpus-name", "",
		"Name of the created corpus (default a random name).",
	)
	f.StringVar(
		&c.flagUploadFile, "upload-file", "",
		"File to upload (default a small built-in text file).",
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

	upload := &schema.UploadRequest{
		CustomerID:  customerID,
		FileName:    "hitchhiker.txt",
		ContentType: "text/plain",
		Content:     base.SampleUpload,
	}
	if c.flagUploadFile != "" {
		fs := c.fs
		if fs == nil {
			fs = afero.NewOsFs()
		}
		var err error
		if upload, err = schema.ReadUploadFile(fs, c.flagUploadFile, customerID, 0); err != nil {
			c.UI.Error(err.Error())
			return 1
		}
	}

	ctx, cancel := c.Context()
	defer cancel()

	cred, err := s.Credential(ctx, false)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	w := s.Workflow(cred)

	out, ok := w.REST(ctx, "create corpus", vectara.CreateCorpus, schema.CreateCorpusRequest{
		Corpus: schema.Corpus{Name: name, Description: "Created by vectara-examples"},
	})
	var corpusID int64
	if created, ok := base.Result[schema.CreateCorpusResponse](w, "create corpus", out, ok); ok {
		corpusID = int64(created.CorpusID)
		w.Print("create corpus", map[string]any{"corpus_id": corpusID, "name": name})
	}

	upload.CorpusID = corpusID
	out, ok = w.REST(ctx, "upload file", vectara.Upload, upload)
	if resp, ok := base.Result[schema.UploadResponse](w, "upload file", out, ok); ok {
		w.Print("upload file", resp.Response.QuotaConsumed)
	}

	out, ok = w.REST(ctx, "index document", vectara.Index, schema.IndexRequest{
		CustomerID: customerID,
		CorpusID:   corpusID,
		Document:   base.SampleDocument(docID),
	})
	if resp, ok := base.Result[schema.IndexResponse](w, "index document", out, ok); ok {
		w.Print("index document", resp.QuotaConsumed)
	}

	out, ok = w.REST(ctx, "query", vectara.Query, schema.BatchQueryRequest{
		Query: []schema.QueryRequest{{
			Query:      c.flagQuery,
			NumResults: uint32(c.flagNumResults),
			CorpusKey:  []schema.CorpusKey{{CustomerID: customerID, CorpusID: corpusID}},
		}},
	})
	if resp, ok := base.Result[schema.BatchQueryResponse](w, "query", out, ok); ok {
		w.Print("query", resp.Hits())
	}

	w.REST(ctx, "delete document", vectara.DeleteDoc, schema.DeleteDocRequest{
		CustomerID: customerID,
		CorpusID:   corpusID,
		DocumentID: docID,
	})
	corpus := schema.CorpusRequest{CustomerID: customerID, CorpusID: corpusID}
	w.REST(ctx, "reset corpus", vectara.ResetCorpus, corpus)
	w.REST(ctx, "delete corpus", vectara.DeleteCorpus, corpus)

	if w.Err() == nil {
		c.UI.Info(fmt.Sprintf("corpus %d created, used and deleted", corpusID))
	}
	return w.ExitCode()
}
