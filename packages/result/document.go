package result

import (
	"github.com/abdul-hamid-achik/searchbox/packages/codec"
)

// DocumentResult is returned by single-document actions (get, index,
// delete and exists).
type DocumentResult struct {
	*Result
	Index   string
	Type    string
	ID      string
	Version int64
	Found   bool
}

// NewDocument parses a single-document response. When requireFound is set,
// a response reporting found:false is treated as unsuccessful even if the
// status code is 2xx.
func NewDocument(body []byte, statusCode int, reasonPhrase string, c codec.Codec, requireFound bool) (*DocumentResult, error) {
	base, err := New(body, statusCode, reasonPhrase, c, "_source")
	if err != nil {
		return nil, err
	}

	doc := &DocumentResult{
		Result:  base,
		Index:   base.Value("_index").String(),
		Type:    base.Value("_type").String(),
		ID:      base.Value("_id").String(),
		Version: base.Value("_version").Int(),
		Found:   base.Succeeded,
	}

	if found := base.Value("found"); found.Exists() {
		doc.Found = found.Bool()
	}
	if requireFound && !doc.Found {
		doc.Succeeded = false
		if doc.ErrorMessage == "" {
			doc.ErrorMessage = "document not found"
		}
	}
	return doc, nil
}
