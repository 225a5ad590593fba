// Package text stores the content of one book as ordered chapters of
// ordered verses and resolves address ranges against it.
//
// A Text is built once by a loader and read-only afterwards, so
// concurrent queries need no locking.
package text

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/FocuswithJustin/Lectionarium/core/locator"
)

// Verse is one resolved verse: its address and its raw content.
//
// For a book with chapters the address is two-dimensional. For a
// chapterless book it is the one-dimensional verse number.
type Verse struct {
	Addr locator.Addr
	Text string
}

// Text is the verse store for a single book.
type Text struct {
	book     string
	chapters []*chapter
	byKey    map[int]*chapter
	addr     addressing
}

type chapter struct {
	key    int
	verses []verse
	byKey  map[int]int
}

type verse struct {
	key  int
	text string
}

// New returns an empty Text for the named book. The chaptered/flat
// interpretation of one-dimensional addresses is fixed here, once, and
// never re-tested during resolution.
func New(book string, hasChapters bool) *Text {
	t := &Text{
		book:  book,
		byKey: make(map[int]*chapter),
	}
	if hasChapters {
		t.addr = chaptered{}
	} else {
		t.addr = flat{}
	}
	return t
}

// Book returns the normalized book name this text belongs to.
func (t *Text) Book() string {
	return t.book
}

// HasChapters reports whether the book has true chapter structure.
// Chapterless books store their verses under a single synthetic
// chapter keyed 1.
func (t *Text) HasChapters() bool {
	return t.addr.hasChapters()
}

// ChapterKeys returns the chapter keys in storage order.
func (t *Text) ChapterKeys() []int {
	keys := make([]int, len(t.chapters))
	for i, ch := range t.chapters {
		keys[i] = ch.key
	}
	return keys
}

// LoadFrom reads line-oriented verse content: one verse per line, each
// line "<locatorToken><space><content>". The locator token's first
// address supplies the chapter and verse keys.
func (t *Text) LoadFrom(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if err := t.loadLine(line); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// LoadString loads verse content from a string. (Mostly for tests.)
func (t *Text) LoadString(src string) error {
	return t.LoadFrom(strings.NewReader(src))
}

func (t *Text) loadLine(line string) error {
	token, content, found := strings.Cut(line, " ")
	if !found {
		return fmt.Errorf("book %q: no verse content in line %q", t.book, line)
	}
	locs, err := locator.Parse(token)
	if err != nil {
		return fmt.Errorf("book %q: bad verse locator in line %q: %w", t.book, line, err)
	}
	addr, ok := locs[0].(locator.Addr)
	if !ok {
		return fmt.Errorf("book %q: verse locator %q is a range", t.book, token)
	}
	verseKey, ok := addr.Verse()
	if !ok {
		return fmt.Errorf("book %q: verse locator %q has no verse number", t.book, token)
	}
	t.addVerse(addr.First(), verseKey, strings.TrimSpace(content))
	return nil
}

func (t *Text) addVerse(chapterKey, verseKey int, content string) {
	ch, ok := t.byKey[chapterKey]
	if !ok {
		ch = &chapter{key: chapterKey, byKey: make(map[int]int)}
		t.chapters = append(t.chapters, ch)
		t.byKey[chapterKey] = ch
	}
	ch.byKey[verseKey] = len(ch.verses)
	ch.verses = append(ch.verses, verse{key: verseKey, text: content})
}

// Verse resolves a single address: one verse for a two-dimensional
// address, a whole chapter (or one flat-book verse) for a
// one-dimensional one.
func (t *Text) Verse(a locator.Addr) ([]Verse, error) {
	if verseKey, ok := a.Verse(); ok {
		ch, err := t.chapterAt(a.First())
		if err != nil {
			return nil, err
		}
		v, err := t.verseAt(ch, verseKey)
		if err != nil {
			return nil, err
		}
		return []Verse{{Addr: locator.ChapterVerse(ch.key, v.key), Text: v.text}}, nil
	}
	return t.addr.single(t, a.First())
}

// Verses resolves an inclusive address range to the ordered list of
// verses it denotes. Any reference to a missing chapter or verse fails
// fast; no partial result is returned.
func (t *Text) Verses(r locator.AddrRange) ([]Verse, error) {
	first, last, err := t.addr.endpoints(t, r)
	if err != nil {
		return nil, err
	}

	if first.chapter == last.chapter {
		ch := t.byKey[first.chapter]
		if !first.hasVerse && !last.hasVerse {
			return t.allVersesIn(ch), nil
		}
		return t.versesBetween(ch, first, last), nil
	}

	var out []Verse
	firstCh := t.byKey[first.chapter]
	if first.hasVerse {
		out = append(out, t.versesFrom(firstCh, first.verse)...)
	} else {
		out = append(out, t.allVersesIn(firstCh)...)
	}
	for _, ch := range t.chapters {
		if ch.key > first.chapter && ch.key < last.chapter {
			out = append(out, t.allVersesIn(ch)...)
		}
	}
	lastCh := t.byKey[last.chapter]
	if last.hasVerse {
		out = append(out, t.versesTo(lastCh, last.verse)...)
	} else {
		out = append(out, t.allVersesIn(lastCh)...)
	}
	return out, nil
}

// AllVerses returns every verse in the book, in storage order.
func (t *Text) AllVerses() []Verse {
	var out []Verse
	for _, ch := range t.chapters {
		out = append(out, t.allVersesIn(ch)...)
	}
	return out
}

// Write re-emits the book in its line-oriented source form.
func (t *Text) Write(w io.Writer) error {
	for _, ch := range t.chapters {
		for _, v := range ch.verses {
			addr := locator.ChapterVerse(ch.key, v.key)
			if _, err := fmt.Fprintf(w, "%s %s\n", addr, v.text); err != nil {
				return err
			}
		}
	}
	return nil
}

func (t *Text) allVersesIn(ch *chapter) []Verse {
	out := make([]Verse, 0, len(ch.verses))
	for _, v := range ch.verses {
		out = append(out, Verse{Addr: t.addr.verseAddr(ch.key, v.key), Text: v.text})
	}
	return out
}

// Verse slicing compares keys, not positions, so out-of-order or
// gapped verse keys still slice correctly.

func (t *Text) versesFrom(ch *chapter, firstKey int) []Verse {
	var out []Verse
	for _, v := range ch.verses {
		if v.key >= firstKey {
			out = append(out, Verse{Addr: t.addr.verseAddr(ch.key, v.key), Text: v.text})
		}
	}
	return out
}

func (t *Text) versesTo(ch *chapter, lastKey int) []Verse {
	var out []Verse
	for _, v := range ch.verses {
		if v.key <= lastKey {
			out = append(out, Verse{Addr: t.addr.verseAddr(ch.key, v.key), Text: v.text})
		}
	}
	return out
}

func (t *Text) versesBetween(ch *chapter, first, last endpoint) []Verse {
	var out []Verse
	for _, v := range ch.verses {
		if first.hasVerse && v.key < first.verse {
			continue
		}
		if last.hasVerse && v.key > last.verse {
			continue
		}
		out = append(out, Verse{Addr: t.addr.verseAddr(ch.key, v.key), Text: v.text})
	}
	return out
}

func (t *Text) chapterAt(key int) (*chapter, error) {
	ch, ok := t.byKey[key]
	if !ok {
		return nil, &ChapterNotFoundError{Book: t.book, Chapter: key}
	}
	return ch, nil
}

func (t *Text) verseAt(ch *chapter, key int) (verse, error) {
	i, ok := ch.byKey[key]
	if !ok {
		return verse{}, &VerseNotFoundError{Book: t.book, Chapter: ch.key, Verse: key}
	}
	return ch.verses[i], nil
}
