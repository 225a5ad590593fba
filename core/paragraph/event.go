package paragraph

import "strings"

// eventKind tags one tokenized event of a verse's text.
type eventKind int

const (
	// chunkEvent is plain text with no mark after it (the verse tail).
	chunkEvent eventKind = iota
	beginPoetryEvent
	endPoetryEvent
	poetryBreakEvent
	paragraphBreakEvent
)

// event is one step of the verse-text scan. Mark events carry the text
// chunk they terminate, since where that chunk lands depends on the
// mark (a "/" met in prose puts its chunk into the new poetry
// paragraph, not the old prose one).
type event struct {
	kind  eventKind
	chunk string
}

var markKinds = map[rune]eventKind{
	'[':  beginPoetryEvent,
	']':  endPoetryEvent,
	'/':  poetryBreakEvent,
	'\\': paragraphBreakEvent,
}

// tokenize splits verse text at the four control marks. Chunks are
// whitespace-trimmed; the trailing chunk becomes a plain chunkEvent.
func tokenize(verseText string) []event {
	var events []event
	start := 0
	for i, r := range verseText {
		kind, ok := markKinds[r]
		if !ok {
			continue
		}
		events = append(events, event{
			kind:  kind,
			chunk: strings.TrimSpace(verseText[start:i]),
		})
		start = i + 1
	}
	events = append(events, event{
		kind:  chunkEvent,
		chunk: strings.TrimSpace(verseText[start:]),
	})
	return events
}
