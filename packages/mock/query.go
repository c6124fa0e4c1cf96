package mock

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/tidwall/gjson"
)

// QueryError reports a query body the mock cannot interpret.
type QueryError struct {
	Reason string
}

func (e *QueryError) Error() string {
	return e.Reason
}

// Matcher accepts or rejects a stored document.
type Matcher func(doc Document) bool

func matchAll(Document) bool { return true }

// ParseQuery builds a matcher from a request body. An empty body, a body
// without "query" and match_all select every document. Supported queries
// are term, match and ids.
func ParseQuery(body []byte) (Matcher, error) {
	if len(body) == 0 {
		return matchAll, nil
	}
	if !gjson.ValidBytes(body) {
		return nil, &QueryError{Reason: "failed to parse search source"}
	}

	q := gjson.GetBytes(body, "query")
	if !q.Exists() {
		return matchAll, nil
	}
	if !q.IsObject() {
		return nil, &QueryError{Reason: "query must be an object"}
	}

	var (
		matcher Matcher
		err     error
		seen    bool
	)
	q.ForEach(func(key, value gjson.Result) bool {
		seen = true
		switch key.String() {
		case "match_all":
			matcher = matchAll
		case "term":
			matcher, err = fieldQuery(value, termMatches)
		case "match":
			matcher, err = fieldQuery(value, textMatches)
		case "ids":
			matcher = idsQuery(value.Get("values"))
		default:
			err = &QueryError{Reason: fmt.Sprintf("no query registered for [%s]", key.String())}
		}
		return false
	})
	if err != nil {
		return nil, err
	}
	if !seen {
		return matchAll, nil
	}
	return matcher, nil
}

// fieldQuery reads {"field": value} or {"field": {"value"|"query": value}}.
func fieldQuery(q gjson.Result, match func(field, value gjson.Result) bool) (Matcher, error) {
	var field string
	var value gjson.Result
	q.ForEach(func(k, v gjson.Result) bool {
		field = k.String()
		value = v
		if v.IsObject() {
			if inner := v.Get("value"); inner.Exists() {
				value = inner
			} else {
				value = v.Get("query")
			}
		}
		return false
	})
	if field == "" || !value.Exists() {
		return nil, &QueryError{Reason: "field query requires a field and a value"}
	}

	return func(doc Document) bool {
		f := gjson.GetBytes(doc.Source, field)
		if !f.Exists() {
			return false
		}
		if f.IsArray() {
			for _, item := range f.Array() {
				if match(item, value) {
					return true
				}
			}
			return false
		}
		return match(f, value)
	}, nil
}

func idsQuery(values gjson.Result) Matcher {
	ids := make(map[string]bool)
	for _, v := range values.Array() {
		ids[v.String()] = true
	}
	return func(doc Document) bool {
		return ids[doc.ID]
	}
}

// termMatches compares an unanalyzed value against a field. String fields
// match on the exact value or on any of their lowercased tokens.
func termMatches(field, value gjson.Result) bool {
	if field.Type != gjson.String {
		return field.String() == value.String()
	}
	if field.String() == value.String() {
		return true
	}
	want := value.String()
	for _, tok := range tokenize(field.String()) {
		if tok == want {
			return true
		}
	}
	return false
}

// textMatches analyzes the value and matches when any token is shared.
func textMatches(field, value gjson.Result) bool {
	if field.Type != gjson.String {
		return field.String() == value.String()
	}
	have := make(map[string]bool)
	for _, tok := range tokenize(field.String()) {
		have[tok] = true
	}
	for _, tok := range tokenize(value.String()) {
		if have[tok] {
			return true
		}
	}
	return false
}

func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

// termsOf collects the tokens of every top-level string field of source,
// or of the listed fields when any are given.
func termsOf(source []byte, fields []string) map[string]bool {
	terms := make(map[string]bool)
	add := func(v gjson.Result) {
		if v.Type == gjson.String {
			for _, tok := range tokenize(v.String()) {
				terms[tok] = true
			}
		}
	}

	if len(fields) > 0 {
		for _, f := range fields {
			add(gjson.GetBytes(source, f))
		}
		return terms
	}

	gjson.ParseBytes(source).ForEach(func(_, v gjson.Result) bool {
		add(v)
		return true
	})
	return terms
}

// sharedTerms counts how many of terms appear in source
func sharedTerms(source []byte, fields []string, terms map[string]bool) int {
	n := 0
	for tok := range termsOf(source, fields) {
		if terms[tok] {
			n++
		}
	}
	return n
}
