package mock

import (
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	gojson "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

const (
	defaultPageSize = 10
	shardCount      = 5
)

type errorResponse struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}

type docResponse struct {
	Index   string          `json:"_index"`
	Type    string          `json:"_type"`
	ID      string          `json:"_id"`
	Version int64           `json:"_version,omitempty"`
	Found   *bool           `json:"found,omitempty"`
	Created *bool           `json:"created,omitempty"`
	Source  gojson.RawMessage `json:"_source,omitempty"`
}

type shards struct {
	Total      int `json:"total"`
	Successful int `json:"successful"`
	Failed     int `json:"failed"`
}

type hit struct {
	Index  string          `json:"_index"`
	Type   string          `json:"_type"`
	ID     string          `json:"_id"`
	Score  float64         `json:"_score"`
	Source gojson.RawMessage `json:"_source"`
}

type hits struct {
	Total    int      `json:"total"`
	MaxScore *float64 `json:"max_score"`
	Hits     []hit    `json:"hits"`
}

type searchResponse struct {
	Took     int64  `json:"took"`
	TimedOut bool   `json:"timed_out"`
	Shards   shards `json:"_shards"`
	Hits     hits   `json:"hits"`
}

type countResponse struct {
	Count  int    `json:"count"`
	Shards shards `json:"_shards"`
}

type indexShards struct {
	Shards shards `json:"_shards"`
}

type deleteByQueryResponse struct {
	Indices map[string]indexShards `json:"_indices"`
}

func allShards() shards {
	return shards{Total: shardCount, Successful: shardCount}
}

func boolPtr(b bool) *bool {
	return &b
}

func (s *Server) registerRoutes() {
	for _, m := range []string{http.MethodGet, http.MethodPost} {
		s.router.Handle(m, "/_search", "search", s.handleSearch)
		s.router.Handle(m, "/{{index}}/_search", "search", s.handleSearch)
		s.router.Handle(m, "/{{index}}/{{type}}/_search", "search", s.handleSearch)
		s.router.Handle(m, "/_count", "count", s.handleCount)
		s.router.Handle(m, "/{{index}}/_count", "count", s.handleCount)
		s.router.Handle(m, "/{{index}}/{{type}}/_count", "count", s.handleCount)
		s.router.Handle(m, "/{{index}}/{{type}}/{{id}}/_mlt", "more-like-this", s.handleMoreLikeThis)
	}
	s.router.Handle(http.MethodDelete, "/{{index}}/_query", "delete-by-query", s.handleDeleteByQuery)
	s.router.Handle(http.MethodDelete, "/{{index}}/{{type}}/_query", "delete-by-query", s.handleDeleteByQuery)

	s.router.Handle(http.MethodPut, "/{{index}}/{{type}}/{{id}}", "index", s.handleIndex)
	s.router.Handle(http.MethodPost, "/{{index}}/{{type}}/{{id}}", "index", s.handleIndex)
	s.router.Handle(http.MethodPost, "/{{index}}/{{type}}", "index", s.handleIndex)
	s.router.Handle(http.MethodGet, "/{{index}}/{{type}}/{{id}}", "get", s.handleGet)
	s.router.Handle(http.MethodHead, "/{{index}}/{{type}}/{{id}}", "exists", s.handleExists)
	s.router.Handle(http.MethodDelete, "/{{index}}/{{type}}/{{id}}", "delete", s.handleDelete)
	s.router.Handle(http.MethodHead, "/{{index}}/{{type}}", "type-exists", s.handleExists)
	s.router.Handle(http.MethodHead, "/{{index}}", "index-exists", s.handleExists)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request, body []byte, params map[string]string) {
	if len(body) == 0 || !gjson.ValidBytes(body) || !gjson.ParseBytes(body).IsObject() {
		s.writeError(w, http.StatusBadRequest, "MapperParsingException[failed to parse, document is empty or not an object]")
		return
	}

	id := params["id"]
	if id == "" {
		id = uuid.NewString()
	}

	source := append([]byte(nil), body...)
	doc, created := s.store.Put(params["index"], params["type"], id, source)

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	s.writeJSON(w, status, docResponse{
		Index:   doc.Index,
		Type:    doc.Type,
		ID:      doc.ID,
		Version: doc.Version,
		Created: boolPtr(created),
	})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request, body []byte, params map[string]string) {
	doc, ok := s.store.Get(params["index"], params["type"], params["id"])
	if !ok {
		s.writeJSON(w, http.StatusNotFound, docResponse{
			Index: params["index"],
			Type:  params["type"],
			ID:    params["id"],
			Found: boolPtr(false),
		})
		return
	}

	s.writeJSON(w, http.StatusOK, docResponse{
		Index:   doc.Index,
		Type:    doc.Type,
		ID:      doc.ID,
		Version: doc.Version,
		Found:   boolPtr(true),
		Source:  doc.Source,
	})
}

// handleExists answers HEAD requests with a status and no entity.
func (s *Server) handleExists(w http.ResponseWriter, r *http.Request, body []byte, params map[string]string) {
	var found bool
	switch {
	case params["id"] != "":
		_, found = s.store.Get(params["index"], params["type"], params["id"])
	case params["type"] != "":
		found = s.store.HasType(params["index"], params["type"])
	default:
		found = s.store.HasIndex(params["index"])
	}

	if found {
		w.WriteHeader(http.StatusOK)
		return
	}
	w.WriteHeader(http.StatusNotFound)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request, body []byte, params map[string]string) {
	doc, ok := s.store.Delete(params["index"], params["type"], params["id"])
	if !ok {
		s.writeJSON(w, http.StatusNotFound, docResponse{
			Index: params["index"],
			Type:  params["type"],
			ID:    params["id"],
			Found: boolPtr(false),
		})
		return
	}

	s.writeJSON(w, http.StatusOK, docResponse{
		Index:   doc.Index,
		Type:    doc.Type,
		ID:      doc.ID,
		Version: doc.Version,
		Found:   boolPtr(true),
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request, body []byte, params map[string]string) {
	start := time.Now()

	sc, ok := s.scope(w, params)
	if !ok {
		return
	}
	matcher, err := ParseQuery(body)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("SearchPhaseExecutionException[%v]", err))
		return
	}

	docs := s.store.Find(sc, matcher)
	scored := make([]scoredDoc, len(docs))
	for i, d := range docs {
		scored[i] = scoredDoc{doc: d, score: 1}
	}

	s.writeJSON(w, http.StatusOK, s.searchResponse(r, body, scored, start))
}

func (s *Server) handleCount(w http.ResponseWriter, r *http.Request, body []byte, params map[string]string) {
	sc, ok := s.scope(w, params)
	if !ok {
		return
	}
	matcher, err := ParseQuery(body)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("QueryParsingException[%v]", err))
		return
	}

	docs := s.store.Find(sc, matcher)
	s.writeJSON(w, http.StatusOK, countResponse{Count: len(docs), Shards: allShards()})
}

func (s *Server) handleMoreLikeThis(w http.ResponseWriter, r *http.Request, body []byte, params map[string]string) {
	start := time.Now()
	index, typ, id := params["index"], params["type"], params["id"]

	source, ok := s.store.Get(index, typ, id)
	if !ok {
		s.writeError(w, http.StatusNotFound, fmt.Sprintf("DocumentMissingException[[%s][%s][%s]: document missing]", index, typ, id))
		return
	}

	var fields []string
	if f := r.URL.Query().Get("mlt_fields"); f != "" {
		fields = strings.Split(f, ",")
	}
	terms := termsOf(source.Source, fields)

	var scored []scoredDoc
	candidates := s.store.Find(Scope{Indices: []string{index}, Types: []string{typ}}, func(d Document) bool {
		return d.ID != id
	})
	for _, d := range candidates {
		if n := sharedTerms(d.Source, fields, terms); n > 0 {
			scored = append(scored, scoredDoc{doc: d, score: float64(n)})
		}
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].score > scored[j].score })

	s.writeJSON(w, http.StatusOK, s.searchResponse(r, body, scored, start))
}

func (s *Server) handleDeleteByQuery(w http.ResponseWriter, r *http.Request, body []byte, params map[string]string) {
	sc, ok := s.scope(w, params)
	if !ok {
		return
	}
	matcher, err := ParseQuery(body)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("QueryParsingException[%v]", err))
		return
	}

	resp := deleteByQueryResponse{Indices: make(map[string]indexShards)}
	for _, index := range s.store.DeleteWhere(sc, matcher) {
		resp.Indices[index] = indexShards{Shards: allShards()}
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// scope resolves the index and type path segments and rejects explicitly
// named indices that hold no documents.
func (s *Server) scope(w http.ResponseWriter, params map[string]string) (Scope, bool) {
	sc := ParseScope(params["index"], params["type"])
	for _, index := range sc.Indices {
		if !s.store.HasIndex(index) {
			s.writeError(w, http.StatusNotFound, fmt.Sprintf("IndexMissingException[[%s] missing]", index))
			return Scope{}, false
		}
	}
	return sc, true
}

type scoredDoc struct {
	doc   Document
	score float64
}

func (s *Server) searchResponse(r *http.Request, body []byte, scored []scoredDoc, start time.Time) searchResponse {
	from, size := page(r, body)

	resp := searchResponse{
		Shards: allShards(),
		Hits: hits{
			Total: len(scored),
			Hits:  make([]hit, 0),
		},
	}
	if len(scored) > 0 {
		maxScore := scored[0].score
		for _, sd := range scored {
			maxScore = max(maxScore, sd.score)
		}
		resp.Hits.MaxScore = &maxScore
	}

	for i := from; i < len(scored) && i < from+size; i++ {
		d := scored[i].doc
		resp.Hits.Hits = append(resp.Hits.Hits, hit{
			Index:  d.Index,
			Type:   d.Type,
			ID:     d.ID,
			Score:  scored[i].score,
			Source: d.Source,
		})
	}

	resp.Took = time.Since(start).Milliseconds()
	return resp
}

// page reads from and size from the query string, then the body.
func page(r *http.Request, body []byte) (int, int) {
	from, size := 0, defaultPageSize
	if len(body) > 0 {
		if v := gjson.GetBytes(body, "from"); v.Exists() {
			from = int(v.Int())
		}
		if v := gjson.GetBytes(body, "size"); v.Exists() {
			size = int(v.Int())
		}
	}
	q := r.URL.Query()
	if v, err := strconv.Atoi(q.Get("from")); err == nil {
		from = v
	}
	if v, err := strconv.Atoi(q.Get("size")); err == nil {
		size = v
	}
	return max(from, 0), max(size, 0)
}
