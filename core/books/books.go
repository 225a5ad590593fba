// Package books holds the canon of scripture and resolves book-name
// tokens against it.
package books

import (
	"strings"

	"github.com/FocuswithJustin/Lectionarium/core/text"
)

// Book is a single scriptural book: its name, its accepted
// abbreviations, and its text.
type Book struct {
	Name          string
	Abbreviations []string
	hasChapters   bool
	text          *text.Text
}

func newBook(name string, abbreviations ...string) *Book {
	b := &Book{Name: name, Abbreviations: abbreviations, hasChapters: true}
	b.text = text.New(b.NormalName(), true)
	return b
}

func newFlatBook(name string, abbreviations ...string) *Book {
	b := &Book{Name: name, Abbreviations: abbreviations, hasChapters: false}
	b.text = text.New(b.NormalName(), false)
	return b
}

// NormalName is the normalized form of the book name: the full name,
// all lowercase, with interior whitespace removed.
func (b *Book) NormalName() string {
	return normalize(b.Name)
}

// HasChapters reports whether the book has true chapter structure.
func (b *Book) HasChapters() bool {
	return b.hasChapters
}

// Text returns the text content of the book.
func (b *Book) Text() *text.Text {
	return b.text
}

// MatchesToken reports whether token can refer to this book.
func (b *Book) MatchesToken(token string) bool {
	token = normalize(token)
	if token == b.NormalName() {
		return true
	}
	for _, abbreviation := range b.Abbreviations {
		if token == normalize(abbreviation) {
			return true
		}
	}
	return false
}

func (b *Book) String() string {
	return b.Name + " (" + strings.Join(b.Abbreviations, ", ") + ")"
}

func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "")
}

// Canon is the whole canon of scripture. Texts start empty; a corpus
// loader fills them.
type Canon struct {
	ot  []*Book
	nt  []*Book
	all []*Book
}

// NewCanon returns the canon with every book's text still empty.
func NewCanon() *Canon {
	c := &Canon{
		ot: []*Book{
			newBook("Genesis", "Gn"),
			newBook("Exodus", "Ex"),
			newBook("Leviticus", "Lv"),
			newBook("Numbers", "Nm"),
			newBook("Deuteronomy", "Dt"),
			newBook("Joshua", "Jos"),
			newBook("Judges", "Jgs"),
			newBook("Ruth", "Ru"),
			newBook("1 Samuel", "1 Sm"),
			newBook("2 Samuel", "2 Sm"),
			newBook("1 Kings", "1 Kgs"),
			newBook("2 Kings", "2 Kgs"),
			newBook("1 Chronicles", "1 Chr"),
			newBook("2 Chronicles", "2 Chr"),
			newBook("Ezra", "Ezr"),
			newBook("Nehemiah", "Neh"),
			newBook("Tobit", "Tb"),
			newBook("Judith", "Jdt"),
			newBook("Esther", "Est"),
			newBook("1 Maccabees", "1 Mc"),
			newBook("2 Maccabees", "2 Mc"),
			newBook("Job", "Jb"),
			newBook("Psalms", "Ps", "Pss"),
			newBook("Proverbs", "Prv"),
			newBook("Ecclesiastes", "Eccl"),
			newBook("Song of Songs", "Song", "Sg"),
			newBook("Wisdom", "Wis"),
			newBook("Sirach", "Sir"),
			newBook("Isaiah", "Is"),
			newBook("Jeremiah", "Jer"),
			newBook("Lamentations", "Lam"),
			newBook("Baruch", "Bar"),
			newBook("Ezekiel", "Ez"),
			newBook("Daniel", "Dn"),
			newBook("Hosea", "Hos"),
			newBook("Joel", "Jl"),
			newBook("Amos", "Am"),
			newFlatBook("Obadiah", "Ob"),
			newBook("Jonah", "Jon"),
			newBook("Micah", "Mi"),
			newBook("Nahum", "Na"),
			newBook("Habakkuk", "Hb"),
			newBook("Zephaniah", "Zep"),
			newBook("Haggai", "Hg"),
			newBook("Zechariah", "Zec"),
			newBook("Malachi", "Mal"),
		},
		nt: []*Book{
			newBook("Matthew", "Mt"),
			newBook("Mark", "Mk"),
			newBook("Luke", "Lk"),
			newBook("John", "Jn"),
			newBook("Acts", "Acts"),
			newBook("Romans", "Rom"),
			newBook("1 Corinthians", "1 Cor"),
			newBook("2 Corinthians", "2 Cor"),
			newBook("Galatians", "Gal"),
			newBook("Ephesians", "Eph"),
			newBook("Philippians", "Phil"),
			newBook("Colossians", "Col"),
			newBook("1 Thessalonians", "1 Thes"),
			newBook("2 Thessalonians", "2 Thes"),
			newBook("1 Timothy", "1 Tm"),
			newBook("2 Timothy", "2 Tm"),
			newBook("Titus", "Ti"),
			newFlatBook("Philemon", "Phlm"),
			newBook("Hebrews", "Heb"),
			newBook("James", "Jas"),
			newBook("1 Peter", "1 Pt"),
			newBook("2 Peter", "2 Pt"),
			newBook("1 John", "1 Jn"),
			newFlatBook("2 John", "2 Jn"),
			newFlatBook("3 John", "3 Jn"),
			newFlatBook("Jude", "Jude"),
			newBook("Revelation", "Rv"),
		},
	}
	c.all = append(append([]*Book{}, c.ot...), c.nt...)
	return c
}

// Books returns every book in canonical order.
func (c *Canon) Books() []*Book {
	return c.all
}

// OldTestament returns the Old Testament books.
func (c *Canon) OldTestament() []*Book {
	return c.ot
}

// NewTestament returns the New Testament books.
func (c *Canon) NewTestament() []*Book {
	return c.nt
}

// Find returns the book that goes with token, or nil.
func (c *Canon) Find(token string) *Book {
	for _, b := range c.all {
		if b.MatchesToken(token) {
			return b
		}
	}
	return nil
}

// ParseBookTokens returns the book named by the leading tokens and the
// number of tokens consumed, or (nil, 0).
//
// Matching is greedy, longest supertoken first. This is what makes
// "Song of Songs" parse as the book rather than stopping at its
// abbreviation "Song".
func (c *Canon) ParseBookTokens(tokens []string) (*Book, int) {
	for count := len(tokens); count > 0; count-- {
		supertoken := strings.Join(tokens[:count], "")
		if b := c.Find(supertoken); b != nil {
			return b, count
		}
	}
	return nil, 0
}
