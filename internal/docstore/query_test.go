package docstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleDoc() Document {
	return Document{
		FieldID:   "doc_1",
		FieldKind: "post",
		"title":   "Graph algorithms in practice",
		"likes":   3.0,
		"tags":    []interface{}{"algorithms", "go"},
		"author":  map[string]interface{}{"id": "doc_9", "username": "ada"},
	}
}

func TestMatchesKind(t *testing.T) {
	doc := sampleDoc()
	assert.True(t, Query{Kind: "post"}.Matches(doc))
	assert.False(t, Query{Kind: "classroom"}.Matches(doc))
	assert.True(t, Query{}.Matches(doc), "empty kind matches any")
}

func TestMatchesEquals(t *testing.T) {
	doc := sampleDoc()

	assert.True(t, Query{Equals: map[string]interface{}{"title": "Graph algorithms in practice"}}.Matches(doc))
	assert.False(t, Query{Equals: map[string]interface{}{"title": "other"}}.Matches(doc))
	assert.False(t, Query{Equals: map[string]interface{}{"missing": "x"}}.Matches(doc))

	// dotted paths reach into embedded objects
	assert.True(t, Query{Equals: map[string]interface{}{"author.id": "doc_9"}}.Matches(doc))
	assert.False(t, Query{Equals: map[string]interface{}{"author.id": "doc_8"}}.Matches(doc))

	// numeric values compare across int/float representations
	assert.True(t, Query{Equals: map[string]interface{}{"likes": 3}}.Matches(doc))
	assert.True(t, Query{Equals: map[string]interface{}{"likes": 3.0}}.Matches(doc))
}

func TestMatchesArrayContains(t *testing.T) {
	doc := sampleDoc()
	assert.True(t, Query{ArrayContains: map[string]string{"tags": "go"}}.Matches(doc))
	assert.False(t, Query{ArrayContains: map[string]string{"tags": "rust"}}.Matches(doc))
	assert.False(t, Query{ArrayContains: map[string]string{"title": "Graph"}}.Matches(doc), "non-array field")
}

func TestMatchesRegex(t *testing.T) {
	doc := sampleDoc()

	// case-insensitive substring
	assert.True(t, Query{Regex: map[string]string{"title": "GRAPH"}}.Matches(doc))
	assert.False(t, Query{Regex: map[string]string{"title": "zebra"}}.Matches(doc))

	// array fields match when any element matches
	assert.True(t, Query{Regex: map[string]string{"tags": "algo"}}.Matches(doc))

	// broken patterns degrade to a literal substring search
	assert.False(t, Query{Regex: map[string]string{"title": "practice("}}.Matches(doc))
	assert.True(t, Query{Regex: map[string]string{"title": "practice"}}.Matches(doc))
}

func TestMatchesOrBranches(t *testing.T) {
	doc := sampleDoc()

	q := Query{Or: []Query{
		{Regex: map[string]string{"title": "nothing"}},
		{Regex: map[string]string{"tags": "go"}},
	}}
	assert.True(t, q.Matches(doc))

	q = Query{Or: []Query{
		{Equals: map[string]interface{}{"title": "x"}},
		{Equals: map[string]interface{}{"likes": 4}},
	}}
	assert.False(t, q.Matches(doc))

	// top-level clauses AND with the Or block
	q = Query{
		Kind:   "post",
		Equals: map[string]interface{}{"author.id": "doc_9"},
		Or: []Query{
			{Regex: map[string]string{"title": "graph"}},
		},
	}
	assert.True(t, q.Matches(doc))
}

func TestNextRevisionGenerations(t *testing.T) {
	first := NextRevision("")
	assert.Regexp(t, `^1-`, first)

	second := NextRevision(first)
	assert.Regexp(t, `^2-`, second)

	assert.Regexp(t, `^8-`, NextRevision("7-abc"))
	assert.Regexp(t, `^1-`, NextRevision("garbage"))
}
