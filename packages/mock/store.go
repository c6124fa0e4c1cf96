package mock

import (
	"slices"
	"sort"
	"strings"
	"sync"
)

// Document is a stored document and its bookkeeping.
type Document struct {
	Index   string
	Type    string
	ID      string
	Source  []byte
	Version int64

	seq uint64
}

// Store is an in-memory index/type/id document store. It is safe for
// concurrent use.
type Store struct {
	mu   sync.RWMutex
	docs map[string]*Document
	seq  uint64
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		docs: make(map[string]*Document),
	}
}

func docKey(index, typ, id string) string {
	return index + "\x00" + typ + "\x00" + id
}

// Put stores source under index/type/id and reports whether the document
// is new. Existing documents keep their position and get a new version.
func (s *Store) Put(index, typ, id string, source []byte) (Document, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := docKey(index, typ, id)
	if doc, ok := s.docs[key]; ok {
		doc.Source = source
		doc.Version++
		return *doc, false
	}

	s.seq++
	doc := &Document{
		Index:   index,
		Type:    typ,
		ID:      id,
		Source:  source,
		Version: 1,
		seq:     s.seq,
	}
	s.docs[key] = doc
	return *doc, true
}

// Get returns the document stored under index/type/id
func (s *Store) Get(index, typ, id string) (Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[docKey(index, typ, id)]
	if !ok {
		return Document{}, false
	}
	return *doc, true
}

// Delete removes a document. The returned document carries the version the
// deletion produced.
func (s *Store) Delete(index, typ, id string) (Document, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := docKey(index, typ, id)
	doc, ok := s.docs[key]
	if !ok {
		return Document{}, false
	}
	delete(s.docs, key)
	doc.Version++
	return *doc, true
}

// HasIndex reports whether any document lives in index
func (s *Store) HasIndex(index string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, doc := range s.docs {
		if doc.Index == index {
			return true
		}
	}
	return false
}

// HasType reports whether any document lives in index/type
func (s *Store) HasType(index, typ string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, doc := range s.docs {
		if doc.Index == index && doc.Type == typ {
			return true
		}
	}
	return false
}

// Find returns the documents in the given scope accepted by match, oldest
// first.
func (s *Store) Find(sc Scope, match Matcher) []Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var found []Document
	for _, doc := range s.docs {
		if sc.Contains(doc) && match(*doc) {
			found = append(found, *doc)
		}
	}
	sort.Slice(found, func(i, j int) bool { return found[i].seq < found[j].seq })
	return found
}

// DeleteWhere removes matching documents in scope and returns the indices
// that were searched.
func (s *Store) DeleteWhere(sc Scope, match Matcher) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]bool)
	for key, doc := range s.docs {
		if !sc.Contains(doc) {
			continue
		}
		seen[doc.Index] = true
		if match(*doc) {
			delete(s.docs, key)
		}
	}
	for _, index := range sc.Indices {
		seen[index] = true
	}

	indices := make([]string, 0, len(seen))
	for index := range seen {
		indices = append(indices, index)
	}
	sort.Strings(indices)
	return indices
}

// Len returns the number of stored documents
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

// Reset removes every document
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = make(map[string]*Document)
}

// Scope restricts an operation to indices and types. Empty lists match
// everything.
type Scope struct {
	Indices []string
	Types   []string
}

// ParseScope reads comma-separated index and type path segments. "_all"
// and empty segments select everything.
func ParseScope(indices, types string) Scope {
	return Scope{
		Indices: splitNames(indices),
		Types:   splitNames(types),
	}
}

func splitNames(s string) []string {
	if s == "" || s == "_all" {
		return nil
	}
	var names []string
	for _, n := range strings.Split(s, ",") {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	return names
}

// Contains reports whether doc falls inside the scope
func (sc Scope) Contains(doc *Document) bool {
	return contains(sc.Indices, doc.Index) && contains(sc.Types, doc.Type)
}

func contains(names []string, name string) bool {
	return len(names) == 0 || slices.Contains(names, name)
}
