package parser

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

type Keyword int

const (
	Unmatched Keyword = iota
	Describe
	Before
	After
	It
	Subject
)

var keywords = map[string]Keyword{
	"describe": Describe,
	"context":  Describe,
	"before":   Before,
	"after":    After,
	"it":       It,
	"subject":  Subject,
}

// LookupKeyword maps raw token text to a keyword. describe and context are
// synonyms.
func LookupKeyword(text string) Keyword {
	return keywords[text]
}

func (k Keyword) String() string {
	switch k {
	case Describe:
		return "describe"
	case Before:
		return "before"
	case After:
		return "after"
	case It:
		return "it"
	case Subject:
		return "subject"
	}
	return "unmatched"
}

func (k Keyword) IsHook() bool {
	return k == Before || k == After || k == Subject
}

// KeywordNames returns every spelling the grammar accepts, sorted.
func KeywordNames() []string {
	names := make([]string, 0, len(keywords))
	for name := range keywords {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Suggest returns the keyword closest to an unrecognized word, or "" when
// nothing is close or the word already is a keyword.
func Suggest(word string) string {
	if word == "" || LookupKeyword(word) != Unmatched {
		return ""
	}
	ranks := fuzzy.RankFindFold(word, KeywordNames())
	if len(ranks) == 0 {
		return ""
	}
	sort.Sort(ranks)
	return ranks[0].Target
}
