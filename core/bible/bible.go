// Package bible glues citation parsing, book lookup, and range
// resolution into one query surface.
package bible

import (
	"github.com/FocuswithJustin/Lectionarium/core/books"
	"github.com/FocuswithJustin/Lectionarium/core/citation"
	"github.com/FocuswithJustin/Lectionarium/core/text"
)

// Verses resolves a citation query like "john 3:16-17" to the ordered
// list of verses it denotes. A citation with no locator token denotes
// the whole book.
func Verses(canon *books.Canon, query string) ([]text.Verse, error) {
	cit, err := citation.Parse(canon, query)
	if err != nil {
		return nil, err
	}

	book := canon.Find(cit.Book)
	if cit.Locs == nil {
		return book.Text().AllVerses(), nil
	}

	var out []text.Verse
	for _, r := range cit.AddrRanges() {
		verses, err := book.Text().Verses(r)
		if err != nil {
			return nil, err
		}
		out = append(out, verses...)
	}
	return out, nil
}
