package text

import (
	"errors"
	"fmt"
)

// ErrNotFound is the sentinel underneath both not-found error types.
var ErrNotFound = errors.New("not found")

// ChapterNotFoundError reports a reference to a chapter that does not
// exist in a book.
type ChapterNotFoundError struct {
	Book    string
	Chapter int
}

func (e *ChapterNotFoundError) Error() string {
	return fmt.Sprintf("there is no chapter %d in book %q", e.Chapter, e.Book)
}

func (e *ChapterNotFoundError) Unwrap() error {
	return ErrNotFound
}

// VerseNotFoundError reports a reference to a verse that does not
// exist in a chapter.
type VerseNotFoundError struct {
	Book    string
	Chapter int
	Verse   int
}

func (e *VerseNotFoundError) Error() string {
	return fmt.Sprintf("there is no verse %d in chapter %d of book %q",
		e.Verse, e.Chapter, e.Book)
}

func (e *VerseNotFoundError) Unwrap() error {
	return ErrNotFound
}
