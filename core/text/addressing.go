package text

import "github.com/FocuswithJustin/Lectionarium/core/locator"

// endpoint is one resolved end of an address range: a chapter key and
// an optional verse key.
type endpoint struct {
	chapter  int
	verse    int
	hasVerse bool
}

// addressing interprets one-dimensional addresses for a Text. The two
// variants, chaptered and flat, are selected once at construction so
// the dimensional-ambiguity rules live in exactly one place.
type addressing interface {
	hasChapters() bool

	// endpoints validates and resolves both ends of r.
	endpoints(t *Text, r locator.AddrRange) (first, last endpoint, err error)

	// single resolves a one-dimensional address on its own.
	single(t *Text, n int) ([]Verse, error)

	// verseAddr is the address form attached to resolved verses.
	verseAddr(chapterKey, verseKey int) locator.Addr
}

// chaptered is the addressing for books with true chapter structure:
// a one-dimensional address names a whole chapter.
type chaptered struct{}

func (chaptered) hasChapters() bool { return true }

func (chaptered) endpoints(t *Text, r locator.AddrRange) (endpoint, endpoint, error) {
	_, firstTwo := r.First.Verse()
	_, lastTwo := r.Last.Verse()
	if !firstTwo && !lastTwo {
		// A range of whole chapters.
		first, err := chapterEndpoint(t, r.First.First())
		if err != nil {
			return endpoint{}, endpoint{}, err
		}
		last, err := chapterEndpoint(t, r.Last.First())
		if err != nil {
			return endpoint{}, endpoint{}, err
		}
		return first, last, nil
	}
	return mixedEndpoints(t, r)
}

func (chaptered) single(t *Text, n int) ([]Verse, error) {
	ch, err := t.chapterAt(n)
	if err != nil {
		return nil, err
	}
	return t.allVersesIn(ch), nil
}

func (chaptered) verseAddr(chapterKey, verseKey int) locator.Addr {
	return locator.ChapterVerse(chapterKey, verseKey)
}

// flat is the addressing for chapterless books: content lives in a
// single synthetic chapter keyed 1, and a one-dimensional address
// names a verse directly.
type flat struct{}

func (flat) hasChapters() bool { return false }

func (flat) endpoints(t *Text, r locator.AddrRange) (endpoint, endpoint, error) {
	_, firstTwo := r.First.Verse()
	_, lastTwo := r.Last.Verse()
	if !firstTwo && !lastTwo {
		// Both ends are verse keys within the synthetic chapter.
		first, err := flatEndpoint(t, r.First.First())
		if err != nil {
			return endpoint{}, endpoint{}, err
		}
		last, err := flatEndpoint(t, r.Last.First())
		if err != nil {
			return endpoint{}, endpoint{}, err
		}
		return first, last, nil
	}
	return mixedEndpoints(t, r)
}

func (flat) single(t *Text, n int) ([]Verse, error) {
	first, err := flatEndpoint(t, n)
	if err != nil {
		return nil, err
	}
	ch := t.byKey[first.chapter]
	v, err := t.verseAt(ch, first.verse)
	if err != nil {
		return nil, err
	}
	return []Verse{{Addr: locator.Chapter(v.key), Text: v.text}}, nil
}

func (flat) verseAddr(chapterKey, verseKey int) locator.Addr {
	return locator.Chapter(verseKey)
}

// mixedEndpoints handles a range with at least one two-dimensional
// end: a one-dimensional end denotes an entire chapter at that
// boundary, a two-dimensional end an exact chapter and verse.
func mixedEndpoints(t *Text, r locator.AddrRange) (endpoint, endpoint, error) {
	first, err := resolveEndpoint(t, r.First)
	if err != nil {
		return endpoint{}, endpoint{}, err
	}
	last, err := resolveEndpoint(t, r.Last)
	if err != nil {
		return endpoint{}, endpoint{}, err
	}
	return first, last, nil
}

func resolveEndpoint(t *Text, a locator.Addr) (endpoint, error) {
	verseKey, ok := a.Verse()
	if !ok {
		return chapterEndpoint(t, a.First())
	}
	ch, err := t.chapterAt(a.First())
	if err != nil {
		return endpoint{}, err
	}
	if _, err := t.verseAt(ch, verseKey); err != nil {
		return endpoint{}, err
	}
	return endpoint{chapter: ch.key, verse: verseKey, hasVerse: true}, nil
}

func chapterEndpoint(t *Text, key int) (endpoint, error) {
	ch, err := t.chapterAt(key)
	if err != nil {
		return endpoint{}, err
	}
	return endpoint{chapter: ch.key}, nil
}

func flatEndpoint(t *Text, verseKey int) (endpoint, error) {
	ch, err := t.chapterAt(1)
	if err != nil {
		return endpoint{}, err
	}
	if _, err := t.verseAt(ch, verseKey); err != nil {
		return endpoint{}, err
	}
	return endpoint{chapter: 1, verse: verseKey, hasVerse: true}, nil
}
