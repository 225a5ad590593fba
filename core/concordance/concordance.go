// Package concordance builds alphabetical word lists over book texts.
//
// A concordance groups every distinct word of a text under its initial
// letter, with the list of verse addresses the word appears at. The
// Latin ligatures Æ/æ and Œ/œ fold to "a" and "o" for grouping and to
// their spelled-out digraphs for sorting, so "æternum" files under "a"
// between "aeterna" and "aeternus".
package concordance

import (
	"sort"
	"strings"

	"github.com/FocuswithJustin/Lectionarium/core/locator"
	"github.com/FocuswithJustin/Lectionarium/core/text"
)

// Entry is one concordance word with every address it appears at, in
// text order.
type Entry struct {
	Word  string
	Addrs []locator.Addr

	sortKey string
}

// SortKey is the ligature-folded form of the word used for ordering.
func (e *Entry) SortKey() string {
	if e.sortKey == "" {
		e.sortKey = foldLigatures(e.Word)
	}
	return e.sortKey
}

var ligatureFolder = strings.NewReplacer(
	"Æ", "AE",
	"æ", "ae",
	"Œ", "Oe",
	"œ", "oe",
	"ë", "e",
)

func foldLigatures(word string) string {
	return ligatureFolder.Replace(word)
}

// initialOf returns the grouping letter for a word. Ligature initials
// fold to their leading vowel.
func initialOf(word string) string {
	r := []rune(word)[0]
	switch r {
	case 'Æ', 'æ':
		return "a"
	case 'Œ', 'œ':
		return "o"
	}
	return string(r)
}

// Concordance is an in-memory concordance over one or more texts.
type Concordance struct {
	entries map[string][]*Entry
}

// New returns an empty concordance.
func New() *Concordance {
	return &Concordance{entries: make(map[string][]*Entry)}
}

// AddWords indexes a word sequence, typically the output of
// text.Text.Words. Entries stay sorted after each call.
func (c *Concordance) AddWords(words []text.Word) {
	for _, w := range words {
		if len(w.Word) == 0 {
			continue
		}
		e := c.entryFor(w.Word)
		e.Addrs = append(e.Addrs, w.Addr)
	}
	c.sortEntries()
}

func (c *Concordance) entryFor(word string) *Entry {
	initial := initialOf(word)
	for _, e := range c.entries[initial] {
		if e.Word == word {
			return e
		}
	}
	e := &Entry{Word: word}
	c.entries[initial] = append(c.entries[initial], e)
	return e
}

func (c *Concordance) sortEntries() {
	for _, entries := range c.entries {
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].SortKey() < entries[j].SortKey()
		})
	}
}

// Initials returns the grouping letters in sorted order.
func (c *Concordance) Initials() []string {
	initials := make([]string, 0, len(c.entries))
	for initial := range c.entries {
		initials = append(initials, initial)
	}
	sort.Strings(initials)
	return initials
}

// EntriesForInitial returns the sorted entries grouped under one
// initial, or nil when no word with that initial was indexed.
func (c *Concordance) EntriesForInitial(initial string) []*Entry {
	return c.entries[initial]
}

// Lookup returns the entry for a word, or nil when the word does not
// appear in the concordance.
func (c *Concordance) Lookup(word string) *Entry {
	if len(word) == 0 {
		return nil
	}
	for _, e := range c.entries[initialOf(word)] {
		if e.Word == word {
			return e
		}
	}
	return nil
}
