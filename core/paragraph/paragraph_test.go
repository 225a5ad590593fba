package paragraph

import (
	"errors"
	"testing"

	"github.com/FocuswithJustin/Lectionarium/core/locator"
	"github.com/FocuswithJustin/Lectionarium/core/text"
)

func verse(chapter, number int, content string) text.Verse {
	return text.Verse{Addr: locator.ChapterVerse(chapter, number), Text: content}
}

func TestFormatSingleProseVerse(t *testing.T) {
	got, err := Format([]text.Verse{verse(3, 16, "Sic enim Deus dilexit mundum.")})
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d paragraphs, want 1", len(got))
	}
	p := got[0]
	if p.Mode != Prose {
		t.Errorf("mode = %v, want prose", p.Mode)
	}
	if len(p.Lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(p.Lines))
	}
	line := p.Lines[0]
	if line.Addr == nil || *line.Addr != locator.ChapterVerse(3, 16) {
		t.Errorf("line addr = %v, want 3:16", line.Addr)
	}
	if line.Text != "Sic enim Deus dilexit mundum." {
		t.Errorf("line text = %q", line.Text)
	}
}

func TestFormatEmptyInput(t *testing.T) {
	got, err := Format(nil)
	if err != nil {
		t.Fatalf("Format(nil) failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Format(nil) = %v, want no paragraphs", got)
	}
}

func TestFormatPoetry(t *testing.T) {
	got, err := Format([]text.Verse{
		verse(1, 1, "intro [ first line / second line"),
		verse(1, 2, "third line ] after"),
	})
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d paragraphs (%+v), want 3", len(got), got)
	}
	if got[0].Mode != Prose || len(got[0].Lines) != 1 || got[0].Lines[0].Text != "intro" {
		t.Errorf("paragraph 0 = %+v, want prose [intro]", got[0])
	}
	poem := got[1]
	if poem.Mode != Poetry {
		t.Errorf("paragraph 1 mode = %v, want poetry", poem.Mode)
	}
	if len(poem.Lines) != 3 {
		t.Fatalf("poetry has %d lines (%+v), want 3", len(poem.Lines), poem.Lines)
	}
	if poem.Lines[0].Text != "first line" || poem.Lines[1].Text != "second line" ||
		poem.Lines[2].Text != "third line" {
		t.Errorf("poetry lines = %+v", poem.Lines)
	}
	// Only the first chunk of each verse carries its address.
	if poem.Lines[1].Addr != nil {
		t.Errorf("continuation line carries address %v", poem.Lines[1].Addr)
	}
	if poem.Lines[2].Addr == nil || *poem.Lines[2].Addr != locator.ChapterVerse(1, 2) {
		t.Errorf("verse 2 first line addr = %v, want 1:2", poem.Lines[2].Addr)
	}
	if got[2].Mode != Prose || got[2].Lines[0].Text != "after" {
		t.Errorf("paragraph 2 = %+v, want prose [after]", got[2])
	}
}

// Poetry that ends in one verse and resumes in the next must not leave
// an empty prose paragraph in between.
func TestFormatAdjacentPoetryParagraphs(t *testing.T) {
	got, err := Format([]text.Verse{
		verse(3, 38, "[ first poem ]"),
		verse(4, 1, "[ second poem ]"),
		verse(4, 2, "closing prose"),
	})
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d paragraphs (%+v), want 3", len(got), got)
	}
	if got[0].Mode != Poetry || got[1].Mode != Poetry || got[2].Mode != Prose {
		t.Errorf("modes = %v %v %v, want poetry poetry prose",
			got[0].Mode, got[1].Mode, got[2].Mode)
	}
	for i, p := range got {
		if p.IsEmpty() {
			t.Errorf("paragraph %d is empty", i)
		}
	}
}

func TestFormatParagraphBreak(t *testing.T) {
	got, err := Format([]text.Verse{
		verse(1, 1, "first paragraph \\ second paragraph"),
	})
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d paragraphs, want 2", len(got))
	}
	if got[0].Lines[0].Text != "first paragraph" || got[1].Lines[0].Text != "second paragraph" {
		t.Errorf("paragraphs = %+v", got)
	}
}

// A paragraph break at the end of a verse must not leave a trailing
// empty paragraph.
func TestFormatNoTrailingEmptyParagraph(t *testing.T) {
	inputs := [][]text.Verse{
		{verse(1, 1, "text \\")},
		{verse(1, 1, "[ poem ]")},
		{verse(1, 1, "[ poem ]\\")},
	}
	for _, verses := range inputs {
		got, err := Format(verses)
		if err != nil {
			t.Fatalf("Format(%q) failed: %v", verses[0].Text, err)
		}
		if len(got) == 0 {
			t.Fatalf("Format(%q) returned no paragraphs", verses[0].Text)
		}
		if got[len(got)-1].IsEmpty() {
			t.Errorf("Format(%q) ends with an empty paragraph", verses[0].Text)
		}
	}
}

// "/" outside of poetry is tolerated and opens a poetry paragraph; the
// chunk before it belongs to the new poetry paragraph.
func TestFormatPoetryBreakInProse(t *testing.T) {
	got, err := Format([]text.Verse{
		verse(19, 1, "line one / line two"),
	})
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d paragraphs (%+v), want 1", len(got), got)
	}
	if got[0].Mode != Poetry {
		t.Errorf("mode = %v, want poetry", got[0].Mode)
	}
	if len(got[0].Lines) != 2 {
		t.Errorf("lines = %+v, want 2 lines", got[0].Lines)
	}
}

// "\" inside poetry is tolerated: the chunk commits to the current
// poetry paragraph with no mode change.
func TestFormatParagraphBreakInPoetry(t *testing.T) {
	got, err := Format([]text.Verse{
		verse(1, 16, "[ line one \\ line two ]"),
	})
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d paragraphs (%+v), want 1", len(got), got)
	}
	if got[0].Mode != Poetry || len(got[0].Lines) != 2 {
		t.Errorf("paragraph = %+v, want poetry with 2 lines", got[0])
	}
}

func TestFormatErrors(t *testing.T) {
	var formattingErr *FormattingError

	_, err := Format([]text.Verse{verse(1, 1, "[ one [ two ]")})
	if !errors.As(err, &formattingErr) {
		t.Errorf("nested '[' gave %v, want *FormattingError", err)
	}

	_, err = Format([]text.Verse{
		verse(1, 1, "intro"),
		verse(1, 2, "more ] after"),
	})
	if !errors.As(err, &formattingErr) {
		t.Errorf("']' in prose gave %v, want *FormattingError", err)
	}
}

func TestFormatCloseBeforeAnyParagraph(t *testing.T) {
	// A ']' with no open paragraph has nothing to close; the chunk
	// before it starts an ordinary prose paragraph.
	got, err := Format([]text.Verse{verse(1, 1, "prose ] more")})
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d paragraphs (%+v), want 2", len(got), got)
	}
	for i, p := range got {
		if p.Mode != Prose {
			t.Errorf("paragraph %d mode = %v, want prose", i, p.Mode)
		}
	}
}

func TestFormatEmptyChunkKeepsPendingAddress(t *testing.T) {
	// The verse opens with a mark, so its first committed chunk comes
	// after the mark and must still carry the verse's address.
	got, err := Format([]text.Verse{verse(2, 5, "[ opening line ]")})
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if len(got) != 1 || len(got[0].Lines) != 1 {
		t.Fatalf("paragraphs = %+v", got)
	}
	line := got[0].Lines[0]
	if line.Addr == nil || *line.Addr != locator.ChapterVerse(2, 5) {
		t.Errorf("line addr = %v, want 2:5", line.Addr)
	}
}

func TestTokenize(t *testing.T) {
	events := tokenize("a [ b / c ] d")
	kinds := []eventKind{beginPoetryEvent, poetryBreakEvent, endPoetryEvent, chunkEvent}
	chunks := []string{"a", "b", "c", "d"}
	if len(events) != len(kinds) {
		t.Fatalf("got %d events (%+v), want %d", len(events), events, len(kinds))
	}
	for i, ev := range events {
		if ev.kind != kinds[i] || ev.chunk != chunks[i] {
			t.Errorf("event %d = {%d %q}, want {%d %q}",
				i, ev.kind, ev.chunk, kinds[i], chunks[i])
		}
	}
}
