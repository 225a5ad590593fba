// Package corpus loads book texts from an on-disk corpus directory.
//
// A corpus directory holds one file per book, named by the book's
// normalized name with a .txt extension, optionally xz-compressed as
// .txt.xz. Each file is line oriented: a verse locator token, one
// space, and the verse text.
package corpus

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"

	"github.com/FocuswithJustin/Lectionarium/core/books"
	"github.com/FocuswithJustin/Lectionarium/internal/logging"
)

// BookFileError reports a corpus file that could not be read or parsed.
type BookFileError struct {
	Book string
	Path string
	Err  error
}

func (e *BookFileError) Error() string {
	return fmt.Sprintf("corpus file %s for book %q: %v", e.Path, e.Book, e.Err)
}

func (e *BookFileError) Unwrap() error {
	return e.Err
}

// Load reads every available book file in dir into the canon's texts.
// Books with no file in the corpus are skipped. It returns the number
// of books loaded.
func Load(dir string, canon *books.Canon) (int, error) {
	loaded := 0
	for _, book := range canon.Books() {
		path, ok := findBookFile(dir, book)
		if !ok {
			continue
		}
		if err := loadBookFile(path, book); err != nil {
			logging.CorpusError(book.NormalName(), path, err)
			return loaded, err
		}
		loaded++
		logging.BookLoaded(book.NormalName(), path, len(book.Text().AllVerses()))
	}
	return loaded, nil
}

// LoadBook reads one book's file from dir. A book absent from the
// corpus is an error here, unlike in Load.
func LoadBook(dir string, book *books.Book) error {
	path, ok := findBookFile(dir, book)
	if !ok {
		return &BookFileError{
			Book: book.NormalName(),
			Path: filepath.Join(dir, book.NormalName()+".txt"),
			Err:  os.ErrNotExist,
		}
	}
	return loadBookFile(path, book)
}

func findBookFile(dir string, book *books.Book) (string, bool) {
	for _, ext := range []string{".txt", ".txt.xz"} {
		path := filepath.Join(dir, book.NormalName()+ext)
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}
	return "", false
}

func loadBookFile(path string, book *books.Book) error {
	f, err := os.Open(path)
	if err != nil {
		return &BookFileError{Book: book.NormalName(), Path: path, Err: err}
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".xz") {
		xzr, err := xz.NewReader(f)
		if err != nil {
			return &BookFileError{Book: book.NormalName(), Path: path, Err: fmt.Errorf("xz reader: %w", err)}
		}
		r = xzr
	}

	if err := book.Text().LoadFrom(r); err != nil {
		return &BookFileError{Book: book.NormalName(), Path: path, Err: err}
	}
	return nil
}
