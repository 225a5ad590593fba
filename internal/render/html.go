package render

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/FocuswithJustin/Lectionarium/core/books"
	"github.com/FocuswithJustin/Lectionarium/core/concordance"
	"github.com/FocuswithJustin/Lectionarium/core/locator"
	"github.com/FocuswithJustin/Lectionarium/core/paragraph"
	"github.com/FocuswithJustin/Lectionarium/core/text"
)

const stylesheet = `.index-table-data {
  vertical-align: top;
}

.first-verse-of-poetry {
  padding-left: 60px;
  text-indent: -30px;
}

.non-first-verse-of-poetry {
  padding-left: 60px;
  text-indent: -30px;
  margin-top: -15px;
}

.prose-verse-number {
  color: red;
}

.poetry-verse-number {
  position: absolute;
  color: red;
}
`

const pageFoot = `    <hr/>
    Text by <a href="http://vulsearch.sourceforge.net/index.html">The Clementine Vulgate Project</a> |
    Formatting by <a href="https://github.com/FocuswithJustin/Lectionarium">Lectionarium</a>
  </body>
</html>
`

// HTMLExporter writes a whole canon as a static HTML site: an index
// page, one page per book, one concordance page per book, and the
// shared stylesheet.
type HTMLExporter struct {
	Dir string
}

// Export writes every page of the site to the exporter's directory.
func (e *HTMLExporter) Export(canon *books.Canon) error {
	if err := os.MkdirAll(e.Dir, 0755); err != nil {
		return fmt.Errorf("creating export directory: %w", err)
	}
	if err := e.exportIndex(canon); err != nil {
		return err
	}
	for _, book := range canon.Books() {
		if err := e.exportBook(book); err != nil {
			return err
		}
		if err := e.exportConcordance(book); err != nil {
			return err
		}
	}
	cssPath := filepath.Join(e.Dir, "bible.css")
	if err := os.WriteFile(cssPath, []byte(stylesheet), 0644); err != nil {
		return fmt.Errorf("writing stylesheet: %w", err)
	}
	return nil
}

func (e *HTMLExporter) writePage(name string, write func(io.Writer) error) error {
	f, err := os.Create(filepath.Join(e.Dir, name))
	if err != nil {
		return fmt.Errorf("creating %s: %w", name, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return f.Close()
}

func writePageHead(w io.Writer, title string) {
	fmt.Fprintf(w, `<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8"/>
    <meta name="description" content="The Clementine Vulgate Bible"/>
    <meta name="keywords" content="Catholic,Bible,Latin"/>
    <title>%s</title>
    <link rel="stylesheet" href="bible.css"/>
  </head>
  <body>
`, title)
}

func (e *HTMLExporter) exportIndex(canon *books.Canon) error {
	return e.writePage("index.html", func(w io.Writer) error {
		writePageHead(w, "Vulgata Clementina")
		fmt.Fprintf(w, "    <h1>Vulgata Clementina</h1>\n")
		writeTestamentIndex(w, canon.OldTestament(), "Vetus Testamentum")
		writeTestamentIndex(w, canon.NewTestament(), "Novum Testamentum")
		_, err := io.WriteString(w, pageFoot)
		return err
	})
}

func writeTestamentIndex(w io.Writer, testament []*books.Book, title string) {
	fmt.Fprintf(w, "    <h2>%s</h2>\n", title)
	io.WriteString(w, "    <table>\n      <tr>\n")
	for _, column := range columnize(testament, 2) {
		io.WriteString(w, "        <td class=\"index-table-data\">\n          <ul>\n")
		for _, book := range column {
			fmt.Fprintf(w, "            <li><a href=\"%s.html\">%s</a></li>\n",
				book.NormalName(), book.Name)
		}
		io.WriteString(w, "          </ul>\n        </td>\n")
	}
	io.WriteString(w, "      </tr>\n    </table>\n")
}

// columnize splits books into count columns of nearly equal height,
// earlier columns taking the extra entries.
func columnize(items []*books.Book, count int) [][]*books.Book {
	q, r := len(items)/count, len(items)%count
	columns := make([][]*books.Book, 0, count)
	begin := 0
	for i := 0; i < count; i++ {
		size := q
		if i < r {
			size++
		}
		columns = append(columns, items[begin:begin+size])
		begin += size
	}
	return columns
}

func (e *HTMLExporter) exportBook(book *books.Book) error {
	return e.writePage(book.NormalName()+".html", func(w io.Writer) error {
		writePageHead(w, book.Name)
		fmt.Fprintf(w, "    <h1>%s</h1>\n    <a href=\"index.html\">Index</a>\n", book.Name)

		if book.HasChapters() {
			links := make([]string, 0, len(book.Text().ChapterKeys()))
			for _, key := range book.Text().ChapterKeys() {
				links = append(links, fmt.Sprintf("<a href=\"#chapter-%d\">%d</a>", key, key))
			}
			fmt.Fprintf(w, "    |\n    %s\n", strings.Join(links, " | "))
		}
		fmt.Fprintf(w, "    | <a href=\"%s-concordance.html\">Concordance</a>\n", book.NormalName())

		if err := writeBookBody(w, book); err != nil {
			return err
		}
		_, err := io.WriteString(w, pageFoot)
		return err
	})
}

func writeBookBody(w io.Writer, book *books.Book) error {
	if !book.HasChapters() {
		return writeVersesHTML(w, book.Text().AllVerses())
	}
	for _, key := range book.Text().ChapterKeys() {
		fmt.Fprintf(w, "    <h2><a name=\"chapter-%d\">%d</a></h2>\n", key, key)
		verses, err := book.Text().Verse(locator.Chapter(key))
		if err != nil {
			return err
		}
		if err := writeVersesHTML(w, verses); err != nil {
			return err
		}
	}
	return nil
}

func writeVersesHTML(w io.Writer, verses []text.Verse) error {
	paragraphs, err := paragraph.Format(verses)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, HTML(paragraphs))
	return err
}

// HTML renders paragraphs as HTML fragments: one <p> per prose
// paragraph, poetry paragraphs split at addressed lines with <br/>
// line breaks.
func HTML(paragraphs []*paragraph.Paragraph) string {
	rendered := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		if p.Mode == paragraph.Poetry {
			rendered = append(rendered, poetryForBrowser(p))
		} else {
			if html := proseForBrowser(p); html != "" {
				rendered = append(rendered, html)
			}
		}
	}
	return strings.Join(rendered, "\n")
}

func verseNumber(addr locator.Addr) int {
	if v, ok := addr.Verse(); ok {
		return v
	}
	return addr.First()
}

func proseForBrowser(p *paragraph.Paragraph) string {
	if p.IsEmpty() {
		return ""
	}
	lines := make([]string, 0, len(p.Lines))
	for _, line := range p.Lines {
		token := ""
		if line.Addr != nil {
			token = fmt.Sprintf("<a name=\"%s\"><sup class=\"prose-verse-number\">%d</sup></a>",
				line.Addr, verseNumber(*line.Addr))
		}
		lines = append(lines, token+" "+line.Text)
	}
	return "<p>" + strings.Join(lines, "\n") + "</p>"
}

func poetryForBrowser(p *paragraph.Paragraph) string {
	var lines []string
	for i, line := range p.Lines {
		if i == 0 {
			lines = append(lines, "<p class=\"first-verse-of-poetry\">")
		} else if line.Addr != nil {
			lines = append(lines, "</p>")
			lines = append(lines, "<p class=\"non-first-verse-of-poetry\">")
		}
		if line.Addr != nil {
			lines = append(lines, fmt.Sprintf(
				"  <a name=\"%s\"><sup class=\"poetry-verse-number\">%d</sup></a>",
				line.Addr, verseNumber(*line.Addr)))
		}
		lines = append(lines, "  "+line.Text+"<br/>")
	}
	lines = append(lines, "</p>\n")
	return strings.Join(lines, "\n")
}

func (e *HTMLExporter) exportConcordance(book *books.Book) error {
	c := concordance.New()
	c.AddWords(book.Text().Words())

	return e.writePage(book.NormalName()+"-concordance.html", func(w io.Writer) error {
		writePageHead(w, "Concordance of "+book.Name)
		fmt.Fprintf(w, "    <h1>Concordance of %s</h1>\n", book.Name)
		io.WriteString(w, "    <a href=\"index.html\">Index</a>\n")
		fmt.Fprintf(w, "    | <a href=\"%s.html\">Text</a>\n", book.NormalName())

		letters := make([]string, 0, 26)
		for letter := 'A'; letter <= 'Z'; letter++ {
			letters = append(letters, fmt.Sprintf("<a href=\"#%c\">%c</a>", letter, letter))
		}
		fmt.Fprintf(w, "    | %s\n", strings.Join(letters, " | "))

		for letter := 'A'; letter <= 'Z'; letter++ {
			fmt.Fprintf(w, "    <a name=\"%c\"><h2>%c</h2></a>\n", letter, letter)
			io.WriteString(w, "      <ul>\n")
			for _, entry := range c.EntriesForInitial(strings.ToLower(string(letter))) {
				writeConcordanceEntry(w, book, entry)
			}
			io.WriteString(w, "      </ul>\n")
		}

		_, err := io.WriteString(w, pageFoot)
		return err
	})
}

func writeConcordanceEntry(w io.Writer, book *books.Book, entry *concordance.Entry) {
	addrs := make([]string, 0, len(entry.Addrs))
	for _, addr := range entry.Addrs {
		addrs = append(addrs, fmt.Sprintf("<a href=\"%s.html#%s\">%s</a>",
			book.NormalName(), addr, addr))
	}
	dictionary := fmt.Sprintf(
		"<a target=\"_blank\" href=\"http://en.wiktionary.org/wiki/%s#Latin\">Wiktionary</a>",
		entry.Word)
	fmt.Fprintf(w, "<li>%s - %s - %s</li>\n",
		entry.Word, strings.Join(addrs, ", "), dictionary)
}
