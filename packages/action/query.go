package action

import (
	"net/http"

	"github.com/abdul-hamid-achik/searchbox/packages/codec"
	"github.com/abdul-hamid-achik/searchbox/packages/result"
)

var (
	_ Action[*result.SearchResult] = (*Search)(nil)
	_ Action[*result.CountResult] = (*Count)(nil)
	_ Action[*result.Result] = (*MoreLikeThis)(nil)
	_ Action[*result.Result] = (*DeleteByQuery)(nil)
)

// Search runs a query across indices and types.
type Search struct {
	base
}

// NewSearch posts query to the _search endpoint. Empty indices search all
// of them.
func NewSearch(indices, types []string, query any, opts ...Option) *Search {
	return &Search{base: newBase(http.MethodPost, multiPath(indices, types, "_search"), query, opts)}
}

func (a *Search) CreateResult(body []byte, statusCode int, reasonPhrase string, c codec.Codec) (*result.SearchResult, error) {
	return result.NewSearch(body, statusCode, reasonPhrase, c)
}

// Count counts documents matching a query.
type Count struct {
	base
}

func NewCount(indices, types []string, query any, opts ...Option) *Count {
	return &Count{base: newBase(http.MethodPost, multiPath(indices, types, "_count"), query, opts)}
}

func (a *Count) CreateResult(body []byte, statusCode int, reasonPhrase string, c codec.Codec) (*result.CountResult, error) {
	return result.NewCount(body, statusCode, reasonPhrase, c)
}

// MoreLikeThis finds documents similar to a given one. The optional query
// travels in the body of a GET request.
type MoreLikeThis struct {
	base
}

func NewMoreLikeThis(index, typ, id string, query any, opts ...Option) *MoreLikeThis {
	return &MoreLikeThis{base: newBase(http.MethodGet, docPath(index, typ, id)+"/_mlt", query, opts)}
}

func (a *MoreLikeThis) CreateResult(body []byte, statusCode int, reasonPhrase string, c codec.Codec) (*result.Result, error) {
	return result.New(body, statusCode, reasonPhrase, c, "hits.hits")
}

// DeleteByQuery removes every document matching a query. The query travels
// in the body of a DELETE request.
type DeleteByQuery struct {
	base
}

func NewDeleteByQuery(indices, types []string, query any, opts ...Option) *DeleteByQuery {
	return &DeleteByQuery{base: newBase(http.MethodDelete, multiPath(indices, types, "_query"), query, opts)}
}

func (a *DeleteByQuery) CreateResult(body []byte, statusCode int, reasonPhrase string, c codec.Codec) (*result.Result, error) {
	return result.New(body, statusCode, reasonPhrase, c, "")
}
