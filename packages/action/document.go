package action

import (
	"net/http"

	"github.com/abdul-hamid-achik/searchbox/packages/codec"
	"github.com/abdul-hamid-achik/searchbox/packages/result"
)

var (
	_ Action[*result.DocumentResult] = (*Get)(nil)
	_ Action[*result.DocumentResult] = (*Index)(nil)
	_ Action[*result.DocumentResult] = (*Delete)(nil)
	_ Action[*result.DocumentResult] = (*Exists)(nil)
)

// Get reads a single document.
type Get struct {
	base
}

func NewGet(index, typ, id string, opts ...Option) *Get {
	return &Get{base: newBase(http.MethodGet, docPath(index, typ, id), nil, opts)}
}

func (a *Get) CreateResult(body []byte, statusCode int, reasonPhrase string, c codec.Codec) (*result.DocumentResult, error) {
	return result.NewDocument(body, statusCode, reasonPhrase, c, true)
}

// Index stores a document. Without an id the engine assigns one and the
// request is a POST to the type endpoint.
type Index struct {
	base
}

func NewIndex(index, typ, id string, source any, opts ...Option) *Index {
	method := http.MethodPut
	if id == "" {
		method = http.MethodPost
	}
	return &Index{base: newBase(method, docPath(index, typ, id), source, opts)}
}

func (a *Index) CreateResult(body []byte, statusCode int, reasonPhrase string, c codec.Codec) (*result.DocumentResult, error) {
	return result.NewDocument(body, statusCode, reasonPhrase, c, false)
}

// Delete removes a single document.
type Delete struct {
	base
}

func NewDelete(index, typ, id string, opts ...Option) *Delete {
	return &Delete{base: newBase(http.MethodDelete, docPath(index, typ, id), nil, opts)}
}

func (a *Delete) CreateResult(body []byte, statusCode int, reasonPhrase string, c codec.Codec) (*result.DocumentResult, error) {
	return result.NewDocument(body, statusCode, reasonPhrase, c, true)
}

// Exists checks for a document, index or type with a HEAD request. Pass
// empty strings to check a broader scope, e.g. NewExists("twitter", "", "").
type Exists struct {
	base
}

func NewExists(index, typ, id string, opts ...Option) *Exists {
	return &Exists{base: newBase(http.MethodHead, docPath(index, typ, id), nil, opts)}
}

func (a *Exists) CreateResult(body []byte, statusCode int, reasonPhrase string, c codec.Codec) (*result.DocumentResult, error) {
	return result.NewDocument(body, statusCode, reasonPhrase, c, true)
}
