package text

import (
	"regexp"
	"strings"

	"github.com/FocuswithJustin/Lectionarium/core/locator"
)

// Everything that is not a word character or a space is stripped
// before word extraction. The corpus is Latin, so the ligatures and
// the diaeresis count as word characters.
var nonWordPattern = regexp.MustCompile(`[^A-Za-zÆŒæœë ]`)

// Word is one occurrence of a word in the text.
type Word struct {
	Addr locator.Addr
	Word string
}

// Words returns each word of the book in lowercase, with no
// punctuation and no formatting marks, together with its address.
func (t *Text) Words() []Word {
	var out []Word
	for _, v := range t.AllVerses() {
		clean := nonWordPattern.ReplaceAllString(v.Text, "")
		for _, w := range strings.Fields(clean) {
			out = append(out, Word{Addr: v.Addr, Word: strings.ToLower(w)})
		}
	}
	return out
}
