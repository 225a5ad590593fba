// Command lectio is the CLI tool for Lectionarium.
// It resolves scripture citations, formats passages for the console,
// exports the corpus as HTML, and answers lectionary queries.
package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/FocuswithJustin/Lectionarium/core/bible"
	"github.com/FocuswithJustin/Lectionarium/core/books"
	"github.com/FocuswithJustin/Lectionarium/core/concordance"
	"github.com/FocuswithJustin/Lectionarium/core/paragraph"
	"github.com/FocuswithJustin/Lectionarium/core/sqlite"
	"github.com/FocuswithJustin/Lectionarium/internal/api"
	"github.com/FocuswithJustin/Lectionarium/internal/corpus"
	"github.com/FocuswithJustin/Lectionarium/internal/lectionary"
	"github.com/FocuswithJustin/Lectionarium/internal/logging"
	"github.com/FocuswithJustin/Lectionarium/internal/render"
)

const version = "0.1.0"

// CLI defines the command-line interface for lectio.
type CLI struct {
	// Global flags
	Corpus        string `help:"Corpus directory path" env:"LECTIO_CORPUS" default:"./corpus" type:"path"`
	LectionaryDir string `name:"lectionary-dir" help:"Lectionary directory path" env:"LECTIO_LECTIONARY" default:"./lectionary" type:"path"`
	LogLevel      string `help:"Log level (debug, info, warn, error)" enum:"debug,info,warn,error" default:"info"`
	LogFormat     string `help:"Log format (json, text)" enum:"json,text" default:"text"`

	Cite        CiteCmd        `cmd:"" help:"Resolve a citation and print the passage"`
	Export      ExportCmd      `cmd:"" help:"Export the corpus as static HTML"`
	Concordance ConcordanceCmd `cmd:"" help:"Concordance index operations"`
	Lectionary  LectionaryCmd  `cmd:"" help:"Lectionary mass operations"`
	Verify      VerifyCmd      `cmd:"" help:"Verify corpus integrity against its manifest"`
	Manifest    ManifestCmd    `cmd:"" help:"Write the corpus integrity manifest"`
	Serve       ServeCmd       `cmd:"" help:"Start the REST API server"`
	Version     VersionCmd     `cmd:"" help:"Print version information"`
}

func (c *CLI) initLogging() {
	level := map[string]logging.Level{
		"debug": logging.LevelDebug,
		"info":  logging.LevelInfo,
		"warn":  logging.LevelWarn,
		"error": logging.LevelError,
	}[c.LogLevel]
	format := logging.FormatText
	if c.LogFormat == "json" {
		format = logging.FormatJSON
	}
	logging.InitLogger(level, format)
}

func (c *CLI) loadCanon() (*books.Canon, error) {
	canon := books.NewCanon()
	loaded, err := corpus.Load(c.Corpus, canon)
	if err != nil {
		return nil, err
	}
	if loaded == 0 {
		return nil, fmt.Errorf("no book files found in corpus directory %s", c.Corpus)
	}
	return canon, nil
}

// CiteCmd resolves a citation and prints the formatted passage.
type CiteCmd struct {
	Citation []string `arg:"" help:"Scripture citation, e.g. 'john 3:16-17'"`
	NoColor  bool     `help:"Disable ANSI color in output"`
}

func (c *CiteCmd) Run(root *CLI) error {
	canon, err := root.loadCanon()
	if err != nil {
		return err
	}

	verses, err := bible.Verses(canon, strings.Join(c.Citation, " "))
	if err != nil {
		return err
	}
	paragraphs, err := paragraph.Format(verses)
	if err != nil {
		return err
	}

	fmt.Print(render.Console(paragraphs, !c.NoColor))
	return nil
}

// ExportCmd exports the whole corpus as a static HTML site.
type ExportCmd struct {
	Out string `required:"" help:"Output directory" type:"path"`
}

func (c *ExportCmd) Run(root *CLI) error {
	canon, err := root.loadCanon()
	if err != nil {
		return err
	}

	exporter := &render.HTMLExporter{Dir: c.Out}
	if err := exporter.Export(canon); err != nil {
		return err
	}
	logging.Info("corpus exported", "dir", c.Out)
	return nil
}

// ConcordanceCmd groups concordance index operations.
type ConcordanceCmd struct {
	Build  ConcordanceBuildCmd  `cmd:"" help:"Build the concordance index from the corpus"`
	Lookup ConcordanceLookupCmd `cmd:"" help:"Look up a word in the concordance index"`
}

// ConcordanceBuildCmd indexes every loaded book into a SQLite database.
type ConcordanceBuildCmd struct {
	DB string `help:"Index database path" default:"./concordance.db" type:"path"`
}

func (c *ConcordanceBuildCmd) Run(root *CLI) error {
	canon, err := root.loadCanon()
	if err != nil {
		return err
	}

	ix, err := concordance.OpenIndex(c.DB)
	if err != nil {
		return err
	}
	defer ix.Close()

	ctx := context.Background()
	for _, book := range canon.Books() {
		if len(book.Text().ChapterKeys()) == 0 {
			continue
		}
		if err := ix.IndexText(ctx, book.NormalName(), book.Text()); err != nil {
			return err
		}
		logging.Debug("book indexed", "book", book.NormalName())
	}
	logging.Info("concordance index built", "path", c.DB)
	return nil
}

// ConcordanceLookupCmd prints the addresses a word appears at.
type ConcordanceLookupCmd struct {
	Book string `arg:"" help:"Book to search, e.g. 'genesis'"`
	Word string `arg:"" help:"Word to look up"`
	DB   string `help:"Index database path" default:"./concordance.db" type:"path"`
}

func (c *ConcordanceLookupCmd) Run(root *CLI) error {
	ix, err := concordance.OpenIndexReadOnly(c.DB)
	if err != nil {
		return err
	}
	defer ix.Close()

	addrs, err := ix.Lookup(context.Background(), c.Book, strings.ToLower(c.Word))
	if err != nil {
		return err
	}
	if len(addrs) == 0 {
		return fmt.Errorf("word %q does not appear in %s", c.Word, c.Book)
	}

	tokens := make([]string, 0, len(addrs))
	for _, addr := range addrs {
		tokens = append(tokens, addr.String())
	}
	fmt.Printf("%s - %s\n", strings.ToLower(c.Word), strings.Join(tokens, ", "))
	return nil
}

// LectionaryCmd groups lectionary operations.
type LectionaryCmd struct {
	List     MassListCmd     `cmd:"" help:"List every mass ID"`
	Readings MassReadingsCmd `cmd:"" help:"Print the readings for one mass"`
}

// MassListCmd prints all mass IDs.
type MassListCmd struct{}

func (c *MassListCmd) Run(root *CLI) error {
	lect, err := lectionary.Load(root.LectionaryDir)
	if err != nil {
		return err
	}
	fmt.Println(lect.FormattedIDs())
	return nil
}

// MassReadingsCmd resolves a mass query and prints its readings.
type MassReadingsCmd struct {
	Query   []string `arg:"" help:"Mass query, e.g. 'a/4th-sunday-of-advent'"`
	NoColor bool     `help:"Disable ANSI color in output"`
}

func (c *MassReadingsCmd) Run(root *CLI) error {
	lect, err := lectionary.Load(root.LectionaryDir)
	if err != nil {
		return err
	}
	canon, err := root.loadCanon()
	if err != nil {
		return err
	}

	name, readings, err := lect.Readings(canon, strings.Join(c.Query, " "))
	if err != nil {
		return err
	}

	fmt.Printf("%s\n\n", name)
	for _, reading := range readings {
		fmt.Printf("%s\n\n", reading.Citation)
		paragraphs, err := paragraph.Format(reading.Verses)
		if err != nil {
			return err
		}
		fmt.Print(render.Console(paragraphs, !c.NoColor))
		fmt.Println()
	}
	return nil
}

// VerifyCmd checks the corpus against its integrity manifest.
type VerifyCmd struct{}

func (c *VerifyCmd) Run(root *CLI) error {
	if err := corpus.Verify(root.Corpus); err != nil {
		return err
	}
	fmt.Println("corpus OK")
	return nil
}

// ManifestCmd writes the corpus integrity manifest.
type ManifestCmd struct{}

func (c *ManifestCmd) Run(root *CLI) error {
	m, err := corpus.WriteManifest(root.Corpus)
	if err != nil {
		return err
	}
	logging.Info("manifest written", "files", len(m.Files))
	return nil
}

// ServeCmd starts the REST API server.
type ServeCmd struct {
	Addr string `help:"Listen address" default:":8508"`
}

func (c *ServeCmd) Run(root *CLI) error {
	canon, err := root.loadCanon()
	if err != nil {
		return err
	}

	// A missing lectionary is tolerated; the server answers 404 for
	// lectionary endpoints.
	lect, err := lectionary.Load(root.LectionaryDir)
	if err != nil {
		logging.Warn("lectionary not loaded", "dir", root.LectionaryDir, "error", err.Error())
		lect = nil
	}

	return api.NewServer(canon, lect).Start(c.Addr)
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run(root *CLI) error {
	info := sqlite.GetInfo()
	fmt.Printf("lectio %s (sqlite: %s, %s)\n", version, info.Package, info.DriverType)
	return nil
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("lectio"),
		kong.Description("Lectionarium - scripture citations, passages, and mass readings"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	cli.initLogging()
	err := ctx.Run(&cli)
	ctx.FatalIfErrorf(err)
}
