// Package citation parses a human-readable, single-book scripture
// citation such as "John 3:16" or "Ex 20:1-10" and pairs the resolved
// book with its parsed locations.
package citation

import (
	"fmt"
	"strings"

	"github.com/FocuswithJustin/Lectionarium/core/books"
	"github.com/FocuswithJustin/Lectionarium/core/locator"
)

// Citation is a sequence of one or more verse locations within a
// particular book.
//
// Each location is either a verse address or a verse address range:
//
//   - John 3:16 - verse address
//   - Exodus 20:1-10 - verse address range
//   - Acts 13:16-17,27 - verse address range, then verse address
type Citation struct {
	// Book is the normalized book name.
	Book string

	// Locs holds the locations exactly as parsed, possibly a mix of
	// addresses and ranges. Nil means the whole book.
	Locs []locator.Loc
}

// AddrRanges returns the locations normalized to ranges: each bare
// address becomes the degenerate range of itself, in original order.
func (c Citation) AddrRanges() []locator.AddrRange {
	out := make([]locator.AddrRange, len(c.Locs))
	for i, loc := range c.Locs {
		switch l := loc.(type) {
		case locator.AddrRange:
			out[i] = l
		case locator.Addr:
			out[i] = locator.Span(l, l)
		}
	}
	return out
}

func (c Citation) String() string {
	if c.Locs == nil {
		return c.Book
	}
	tokens := make([]string, len(c.Locs))
	for i, loc := range c.Locs {
		tokens[i] = loc.String()
	}
	return c.Book + " " + strings.Join(tokens, ",")
}

// Parse parses a citation string against the canon. The string is
// "<book tokens> <locator token>?"; without a locator token the
// citation denotes the whole book.
func Parse(canon *books.Canon, s string) (Citation, error) {
	tokens := strings.Fields(s)
	if len(tokens) == 0 {
		return Citation{}, fmt.Errorf("no non-white characters in citation %q", s)
	}

	book, consumed := canon.ParseBookTokens(tokens)
	if book == nil {
		return Citation{}, fmt.Errorf("unable to identify the book in citation %q", s)
	}

	remaining := tokens[consumed:]
	if len(remaining) > 1 {
		return Citation{}, fmt.Errorf("extra tokens %v in citation %q", remaining[1:], s)
	}

	var locs []locator.Loc
	if len(remaining) == 1 {
		var err error
		locs, err = locator.Parse(remaining[0])
		if err != nil {
			return Citation{}, fmt.Errorf("citation %q: %w", s, err)
		}
	}

	return Citation{Book: book.NormalName(), Locs: locs}, nil
}
