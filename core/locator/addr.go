// Package locator parses the numerical portion of a scripture citation.
//
// A locator token is everything after the book name. For example:
//
//   - "3:16" - a single address
//   - "20:1-10" - an address range
//   - "1:2-3:4,6" - a sequence (an address range followed by an address)
//
// Parsing a full citation including the name of a book is the
// responsibility of the citation package.
package locator

import "fmt"

// Addr is a single location within a book.
//
// An address is either one-dimensional or two-dimensional. A
// two-dimensional address definitely names a chapter and a verse. A
// one-dimensional address is deliberately ambiguous: in a book with
// chapters it names a whole chapter, and in a chapterless book it names
// a verse. Use the Chapter and ChapterVerse constructors; the zero
// value is not a valid address.
type Addr struct {
	first  int
	second int
	two    bool
}

// Chapter returns a one-dimensional address. Whether n denotes a
// chapter or a verse depends on the structure of the book it is
// resolved against.
func Chapter(n int) Addr {
	return Addr{first: n}
}

// ChapterVerse returns a two-dimensional chapter-and-verse address.
func ChapterVerse(chapter, verse int) Addr {
	return Addr{first: chapter, second: verse, two: true}
}

// First returns the first (or only) component of the address.
func (a Addr) First() int {
	return a.first
}

// Verse returns the verse component and true for a two-dimensional
// address, and zero and false otherwise.
func (a Addr) Verse() (int, bool) {
	return a.second, a.two
}

// Dimensionality is 1 for a one-dimensional address and 2 for a
// two-dimensional address.
func (a Addr) Dimensionality() int {
	if a.two {
		return 2
	}
	return 1
}

// String renders the address in locator form: "12" or "3:16".
func (a Addr) String() string {
	if !a.two {
		return fmt.Sprintf("%d", a.first)
	}
	return fmt.Sprintf("%d:%d", a.first, a.second)
}

func (Addr) isLoc() {}

// AddrRange is an inclusive range of addresses.
//
// Nothing enforces First <= Last; a nonsensical range surfaces as a
// resolution error, not a construction error.
type AddrRange struct {
	First Addr
	Last  Addr
}

// Span is shorthand for constructing an AddrRange.
func Span(first, last Addr) AddrRange {
	return AddrRange{First: first, Last: last}
}

// String renders the range in locator form: "1:2-3:4".
func (r AddrRange) String() string {
	return fmt.Sprintf("%s-%s", r.First, r.Last)
}

func (AddrRange) isLoc() {}

// Loc is either an Addr or an AddrRange. It is a closed union; no
// other type satisfies it.
type Loc interface {
	fmt.Stringer
	isLoc()
}
