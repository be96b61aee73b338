// Package sphinx reads and writes the searchindex.js payload consumed by
// Sphinx-style documentation sites. The payload is a JSON object, usually
// wrapped in a Search.setIndex(...) call so the browser can load it as a
// script.
package sphinx

import (
	"bytes"
	"encoding/json"
	"sort"
	"strconv"

	"github.com/docdex/docdex"
)

const (
	setIndexPrefix = "Search.setIndex("
	setIndexSuffix = ")"
)

// payload mirrors the wire layout of a search index.
type payload struct {
	Docnames   []string             `json:"docnames"`
	Filenames  []string             `json:"filenames"`
	Titles     []string             `json:"titles"`
	Terms      map[string]postings  `json:"terms"`
	TitleTerms map[string]postings  `json:"titleterms"`
	Objects    map[string]objectMap `json:"objects,omitempty"`
	ObjTypes   map[string]string    `json:"objtypes,omitempty"`
	ObjNames   map[string][]string  `json:"objnames,omitempty"`
	EnvVersion json.RawMessage      `json:"envversion,omitempty"`
}

// postings decodes both wire forms of a posting list: a bare document
// index for single-document terms ("word": 3) and an array ("word": [1,4]).
type postings []int

func (p *postings) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var docs []int
		if err := json.Unmarshal(trimmed, &docs); err != nil {
			return err
		}
		*p = docs
		return nil
	}
	var doc int
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return err
	}
	*p = postings{doc}
	return nil
}

// objectMap maps a fully qualified object name to its wire entry:
// [docIndex, typeIndex, priority, anchor].
type objectMap map[string]objectEntry

type objectEntry struct {
	Doc      int
	Type     int
	Priority int
	Anchor   string
}

func (e *objectEntry) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) < 4 {
		return docdex.Errorf(docdex.EINVALID, "object entry has %d fields, want 4", len(raw))
	}
	if err := json.Unmarshal(raw[0], &e.Doc); err != nil {
		return err
	}
	if err := json.Unmarshal(raw[1], &e.Type); err != nil {
		return err
	}
	if err := json.Unmarshal(raw[2], &e.Priority); err != nil {
		return err
	}
	return json.Unmarshal(raw[3], &e.Anchor)
}

func (e objectEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{e.Doc, e.Type, e.Priority, e.Anchor})
}

// Unmarshal parses a search index from its wire form. Both the wrapped
// Search.setIndex(...) form and a bare JSON object are accepted.
func Unmarshal(data []byte) (*docdex.SearchIndex, error) {
	body, err := stripWrapper(data)
	if err != nil {
		return nil, err
	}

	var p payload
	dec := json.NewDecoder(bytes.NewReader(body))
	if err := dec.Decode(&p); err != nil {
		return nil, docdex.Errorf(docdex.EINVALID, "index payload is not valid JSON: %v", err)
	}

	idx := &docdex.SearchIndex{
		Docnames:   p.Docnames,
		Filenames:  p.Filenames,
		Titles:     p.Titles,
		Terms:      toPostingMap(p.Terms),
		TitleTerms: toPostingMap(p.TitleTerms),
		EnvVersion: decodeEnvVersion(p.EnvVersion),
	}

	if len(p.ObjTypes) > 0 {
		idx.ObjectTypes = make([]string, len(p.ObjTypes))
		for key, name := range p.ObjTypes {
			i, err := strconv.Atoi(key)
			if err != nil || i < 0 || i >= len(p.ObjTypes) {
				return nil, docdex.Errorf(docdex.EINVALID, "objtypes key %q is not a valid index", key)
			}
			idx.ObjectTypes[i] = name
		}
	}

	if len(p.ObjNames) > 0 {
		idx.ObjectNames = make([][]string, len(p.ObjNames))
		for key, name := range p.ObjNames {
			i, err := strconv.Atoi(key)
			if err != nil || i < 0 || i >= len(p.ObjNames) {
				return nil, docdex.Errorf(docdex.EINVALID, "objnames key %q is not a valid index", key)
			}
			idx.ObjectNames[i] = name
		}
	}

	if len(p.Objects) > 0 {
		idx.Objects = make(map[string]map[string]docdex.ObjectEntry, len(p.Objects))
		for domain, objects := range p.Objects {
			entries := make(map[string]docdex.ObjectEntry, len(objects))
			for name, obj := range objects {
				entries[name] = docdex.ObjectEntry{
					Doc:      obj.Doc,
					Type:     obj.Type,
					Priority: obj.Priority,
					Anchor:   obj.Anchor,
				}
			}
			idx.Objects[domain] = entries
		}
	}

	return idx, nil
}

// Marshal serializes the index as a bare JSON payload. Map keys are
// emitted in sorted order, so output is deterministic for a valid index.
func Marshal(idx *docdex.SearchIndex) ([]byte, error) {
	p := payload{
		Docnames:   emptyIfNil(idx.Docnames),
		Filenames:  emptyIfNil(idx.Filenames),
		Titles:     emptyIfNil(idx.Titles),
		Terms:      fromPostingMap(idx.Terms),
		TitleTerms: fromPostingMap(idx.TitleTerms),
	}

	if idx.EnvVersion != "" {
		env, err := json.Marshal(idx.EnvVersion)
		if err != nil {
			return nil, err
		}
		p.EnvVersion = env
	}

	if len(idx.ObjectTypes) > 0 {
		p.ObjTypes = make(map[string]string, len(idx.ObjectTypes))
		for i, name := range idx.ObjectTypes {
			p.ObjTypes[strconv.Itoa(i)] = name
		}
	}

	if len(idx.ObjectNames) > 0 {
		p.ObjNames = make(map[string][]string, len(idx.ObjectNames))
		for i, name := range idx.ObjectNames {
			p.ObjNames[strconv.Itoa(i)] = name
		}
	}

	if len(idx.Objects) > 0 {
		p.Objects = make(map[string]objectMap, len(idx.Objects))
		for domain, objects := range idx.Objects {
			entries := make(objectMap, len(objects))
			for name, obj := range objects {
				entries[name] = objectEntry{
					Doc:      obj.Doc,
					Type:     obj.Type,
					Priority: obj.Priority,
					Anchor:   obj.Anchor,
				}
			}
			p.Objects[domain] = entries
		}
	}

	return json.Marshal(p)
}

// MarshalJS serializes the index in the Search.setIndex(...) script form.
func MarshalJS(idx *docdex.SearchIndex) ([]byte, error) {
	body, err := Marshal(idx)
	if err != nil {
		return nil, err
	}
	var b bytes.Buffer
	b.Grow(len(setIndexPrefix) + len(body) + 2)
	b.WriteString(setIndexPrefix)
	b.Write(body)
	b.WriteString(setIndexSuffix)
	b.WriteString("\n")
	return b.Bytes(), nil
}

// stripWrapper removes the Search.setIndex(...) wrapper if present.
func stripWrapper(data []byte) ([]byte, error) {
	body := bytes.TrimSpace(data)
	if !bytes.HasPrefix(body, []byte(setIndexPrefix)) {
		if len(body) == 0 || body[0] != '{' {
			return nil, docdex.Errorf(docdex.EINVALID, "index is neither a Search.setIndex call nor a JSON object")
		}
		return body, nil
	}

	body = bytes.TrimPrefix(body, []byte(setIndexPrefix))
	body = bytes.TrimSpace(body)
	body = bytes.TrimSuffix(body, []byte(";"))
	body = bytes.TrimSpace(body)
	if !bytes.HasSuffix(body, []byte(setIndexSuffix)) {
		return nil, docdex.Errorf(docdex.EINVALID, "Search.setIndex call is not closed")
	}
	return bytes.TrimSuffix(body, []byte(setIndexSuffix)), nil
}

func decodeEnvVersion(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	// Older generators emit a bare number.
	return string(bytes.TrimSpace(raw))
}

func toPostingMap(m map[string]postings) map[string][]int {
	out := make(map[string][]int, len(m))
	for term, docs := range m {
		out[term] = []int(docs)
	}
	return out
}

func fromPostingMap(m map[string][]int) map[string]postings {
	out := make(map[string]postings, len(m))
	for term, docs := range m {
		sorted := make([]int, len(docs))
		copy(sorted, docs)
		sort.Ints(sorted)
		out[term] = postings(sorted)
	}
	return out
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
