// Package paragraph partitions a stream of verses into prose and
// poetry paragraphs.
//
// Raw verse text carries four inline control marks:
//
//	[  begin poetry
//	]  end poetry
//	/  poetry line break
//	\  prose paragraph break
//
// Each verse's text is tokenized into an event stream and the events
// drive a small state machine over a stack of paragraphs.
package paragraph

import (
	"fmt"

	"github.com/FocuswithJustin/Lectionarium/core/locator"
	"github.com/FocuswithJustin/Lectionarium/core/text"
)

// Mode is the formatting mode of a paragraph.
type Mode int

const (
	// Prose paragraphs flow their lines together.
	Prose Mode = iota
	// Poetry paragraphs keep one line per poetry line.
	Poetry
)

func (m Mode) String() string {
	if m == Poetry {
		return "poetry"
	}
	return "prose"
}

// Line is one line of a paragraph. Addr is set only on the first chunk
// of each verse.
type Line struct {
	Addr *locator.Addr
	Text string
}

// Paragraph is a maximal run of verse-derived lines sharing one
// formatting mode.
type Paragraph struct {
	Mode  Mode
	Lines []Line
}

// IsEmpty reports whether the paragraph holds no lines.
func (p *Paragraph) IsEmpty() bool {
	return len(p.Lines) == 0
}

// FormattingError reports a control mark that appeared in a context
// inconsistent with the current formatting mode.
type FormattingError struct {
	Mark rune
	Mode Mode
}

func (e *FormattingError) Error() string {
	return fmt.Sprintf("saw %q inside of %s", e.Mark, e.Mode)
}

// Format partitions verses into paragraphs. The result is non-empty
// whenever the input produced any text, and never ends with an empty
// paragraph.
func Format(verses []text.Verse) ([]*Paragraph, error) {
	f := &formatter{}
	for _, v := range verses {
		addr := v.Addr
		f.pending = &addr
		for _, ev := range tokenize(v.Text) {
			if err := f.handle(ev); err != nil {
				return nil, err
			}
		}
	}
	f.trimTrailingEmpty()
	return f.paragraphs, nil
}

// formatter is the per-call state: the paragraph stack and the address
// waiting to be attached to the next committed chunk.
type formatter struct {
	paragraphs []*Paragraph
	pending    *locator.Addr
}

func (f *formatter) handle(ev event) error {
	switch ev.kind {
	case chunkEvent:
		f.commit(ev.chunk)
	case beginPoetryEvent:
		if f.topMode() == Poetry {
			return &FormattingError{Mark: '[', Mode: Poetry}
		}
		f.commit(ev.chunk)
		// A poetry paragraph that closed in the previous verse left an
		// empty prose paragraph behind; reuse its slot instead of
		// interleaving it between two runs of poetry.
		f.dropEmptyTop()
		f.push(Poetry)
	case endPoetryEvent:
		if f.topMode() == Prose {
			return &FormattingError{Mark: ']', Mode: Prose}
		}
		f.commit(ev.chunk)
		f.push(Prose)
	case poetryBreakEvent:
		// A "/" in prose is irregular but present in legitimate source
		// markup; it opens a poetry paragraph for its chunk.
		if f.topMode() != Poetry {
			f.push(Poetry)
		}
		f.commit(ev.chunk)
	case paragraphBreakEvent:
		if f.topMode() == Poetry {
			// Irregular but legitimate: commit without a mode change.
			f.commit(ev.chunk)
			return nil
		}
		f.commit(ev.chunk)
		// Suppress the push when the current paragraph is still empty
		// so "]\" does not leave two empty paragraphs behind.
		if top := f.top(); top != nil && !top.IsEmpty() {
			f.push(Prose)
		}
	}
	return nil
}

// commit appends a chunk as a line of the current paragraph, creating
// a prose paragraph when none exists. Empty chunks commit nothing and
// leave the pending address in place.
func (f *formatter) commit(chunk string) {
	if len(chunk) == 0 {
		return
	}
	if len(f.paragraphs) == 0 {
		f.push(Prose)
	}
	top := f.top()
	top.Lines = append(top.Lines, Line{Addr: f.pending, Text: chunk})
	f.pending = nil
}

func (f *formatter) push(mode Mode) {
	f.paragraphs = append(f.paragraphs, &Paragraph{Mode: mode})
}

func (f *formatter) top() *Paragraph {
	if len(f.paragraphs) == 0 {
		return nil
	}
	return f.paragraphs[len(f.paragraphs)-1]
}

// topMode is the mode of the current paragraph, or -1 when no
// paragraph exists yet.
func (f *formatter) topMode() Mode {
	top := f.top()
	if top == nil {
		return Mode(-1)
	}
	return top.Mode
}

func (f *formatter) dropEmptyTop() {
	if top := f.top(); top != nil && top.IsEmpty() {
		f.paragraphs = f.paragraphs[:len(f.paragraphs)-1]
	}
}

func (f *formatter) trimTrailingEmpty() {
	f.dropEmptyTop()
}
