package result

import (
	"github.com/abdul-hamid-achik/searchbox/packages/codec"
	"github.com/tidwall/gjson"
)

// Hit is a single search hit.
type Hit struct {
	Index  string
	Type   string
	ID     string
	Score  float64
	Source string
}

// SearchResult is returned by search and more-like-this style queries.
type SearchResult struct {
	*Result
	Total    int64
	MaxScore float64
	Hits     []Hit
}

func NewSearch(body []byte, statusCode int, reasonPhrase string, c codec.Codec) (*SearchResult, error) {
	base, err := New(body, statusCode, reasonPhrase, c, "hits.hits")
	if err != nil {
		return nil, err
	}

	sr := &SearchResult{
		Result:   base,
		Total:    total(base.Value("hits.total")),
		MaxScore: base.Value("hits.max_score").Float(),
	}
	base.Value("hits.hits").ForEach(func(_, hit gjson.Result) bool {
		sr.Hits = append(sr.Hits, Hit{
			Index:  hit.Get("_index").String(),
			Type:   hit.Get("_type").String(),
			ID:     hit.Get("_id").String(),
			Score:  hit.Get("_score").Float(),
			Source: hit.Get("_source").Raw,
		})
		return true
	})
	return sr, nil
}

// total reads hits.total in both the numeric and the {"value": n} form.
func total(v gjson.Result) int64 {
	if v.IsObject() {
		return v.Get("value").Int()
	}
	return v.Int()
}

// SourcesAs decodes every hit source into a fresh value from newTarget.
// It stops at the first decode error.
func (r *SearchResult) SourcesAs(newTarget func() any) ([]any, error) {
	out := make([]any, 0, len(r.Hits))
	for _, hit := range r.Hits {
		target := newTarget()
		if err := r.codec.Unmarshal([]byte(hit.Source), target); err != nil {
			return nil, &DeserializationError{
				StatusCode:   r.StatusCode,
				ReasonPhrase: r.ReasonPhrase,
				Err:          err,
			}
		}
		out = append(out, target)
	}
	return out, nil
}

// CountResult is returned by count queries.
type CountResult struct {
	*Result
	Count int64
}

func NewCount(body []byte, statusCode int, reasonPhrase string, c codec.Codec) (*CountResult, error) {
	base, err := New(body, statusCode, reasonPhrase, c, "count")
	if err != nil {
		return nil, err
	}
	return &CountResult{Result: base, Count: base.Value("count").Int()}, nil
}
