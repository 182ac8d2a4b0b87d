package base

import (
	"github.com/google/uuid"

	"github.com/hashicorp-forge/vectara-examples/pkg/vectara/schema"
)

// SampleQuery matches the sample document.
const SampleQuery = "What is the answer to the ultimate question?"

// SampleUpload is uploaded by the workflows when no file is given.
var SampleUpload = []byte(`The Hitchhiker's Guide to the Galaxy

The answer to the ultimate question of life, the universe and everything
is 42. Deep Thought took seven and a half million years to compute it.
`)

// NewDocumentID returns a random document id.
func NewDocumentID() string {
	return "doc-" + uuid.NewString()
}

// SampleDocument returns the document the workflows index.
func SampleDocument(id string) schema.Document {
	return schema.Document{
		DocumentID:   id,
		Title:        "An example document",
		MetadataJSON: schema.Metadata(map[string]string{"source": "vectara-examples"}),
		Section: []schema.Section{
			{
				Title: "The answer",
				Text:  "The answer to the ultimate question of life, the universe and everything is 42.",
			},
			{
				Title: "The computer",
				Text:  "Deep Thought took seven and a half million years to compute the answer.",
			},
		},
	}
}
