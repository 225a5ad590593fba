package locator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// EmptyInputError reports an empty or whitespace-only locator token.
type EmptyInputError struct{}

func (e *EmptyInputError) Error() string {
	return "empty/whitespace-only locator token"
}

// MalformedLocatorError reports a locator token that does not conform
// to the locator grammar.
type MalformedLocatorError struct {
	Token   string
	Message string
	Err     error
}

func (e *MalformedLocatorError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("malformed locator %q: %s", e.Token, e.Message)
	}
	return fmt.Sprintf("malformed locator %q: %v", e.Token, e.Err)
}

func (e *MalformedLocatorError) Unwrap() error {
	return e.Err
}

// The grammar:
//
//	locs    := segment ( ',' segment )*
//	segment := ref ( '-' ref )?
//	ref     := Number ( ':' Number )?
//
// A Number is digits optionally followed by trailing lowercase letters
// (verse subdivisions like "7a"); the letters are stripped before
// conversion and the remainder must be purely numeric.
type locsNode struct {
	Segments []*segmentNode `parser:"@@ ( \",\" @@ )*"`
}

type segmentNode struct {
	First *refNode `parser:"@@"`
	Last  *refNode `parser:"( \"-\" @@ )?"`
}

type refNode struct {
	First  numberValue  `parser:"@Number"`
	Second *numberValue `parser:"( \":\" @Number )?"`
}

// numberValue captures a Number token, discarding any trailing
// lowercase letters.
type numberValue int

func (n *numberValue) Capture(values []string) error {
	token := strings.TrimRight(values[0], "abcdefghijklmnopqrstuvwxyz")
	v, err := strconv.Atoi(token)
	if err != nil {
		return fmt.Errorf("non-numeric token %q", values[0])
	}
	*n = numberValue(v)
	return nil
}

var locatorLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Number", Pattern: `\d+[a-z]*`},
	{Name: "Colon", Pattern: `:`},
	{Name: "Hyphen", Pattern: `-`},
	{Name: "Comma", Pattern: `,`},
})

var locatorParser = participle.MustBuild[locsNode](
	participle.Lexer(locatorLexer),
)

// chapterContext carries the most recently seen chapter number across
// one parse. It is threaded explicitly so the parser holds no state
// between calls.
type chapterContext struct {
	chapter int
	ok      bool
}

// Parse parses a locator token into its ordered sequence of addresses
// and address ranges.
//
// A bare number inherits the chapter of the most recently seen
// chapter:verse pair, so "1:2-3:4,6" parses to the range 1:2-3:4
// followed by the single address 3:6. The carry-over applies strictly
// left to right across both ',' and '-' boundaries; only an explicit
// chapter:verse pair updates it.
//
// Parse fails with *EmptyInputError when token is empty after
// trimming, and with *MalformedLocatorError for any grammar violation.
func Parse(token string) ([]Loc, error) {
	token = strings.TrimSpace(token)
	if len(token) == 0 {
		return nil, &EmptyInputError{}
	}
	if err := checkSeparators(token); err != nil {
		return nil, err
	}

	node, err := locatorParser.ParseString("", token)
	if err != nil {
		return nil, &MalformedLocatorError{Token: token, Err: err}
	}

	var ctx chapterContext
	locs := make([]Loc, 0, len(node.Segments))
	for _, segment := range node.Segments {
		first := resolveRef(segment.First, &ctx)
		if segment.Last == nil {
			locs = append(locs, first)
			continue
		}
		last := resolveRef(segment.Last, &ctx)
		locs = append(locs, Span(first, last))
	}
	return locs, nil
}

// checkSeparators rejects tokens with too many hyphens per segment or
// too many colons per address before the grammar sees them, so the
// diagnostics name the actual problem.
func checkSeparators(token string) error {
	for _, segment := range strings.Split(token, ",") {
		refs := strings.Split(segment, "-")
		if len(refs) > 2 {
			return &MalformedLocatorError{
				Token:   segment,
				Message: "too many hyphens",
			}
		}
		for _, ref := range refs {
			if strings.Count(ref, ":") > 1 {
				return &MalformedLocatorError{
					Token:   ref,
					Message: "too many colons",
				}
			}
		}
	}
	return nil
}

// resolveRef converts one parsed ref to an Addr, updating or consuming
// the chapter context.
func resolveRef(ref *refNode, ctx *chapterContext) Addr {
	if ref.Second != nil {
		ctx.chapter = int(ref.First)
		ctx.ok = true
		return ChapterVerse(int(ref.First), int(*ref.Second))
	}
	if ctx.ok {
		return ChapterVerse(ctx.chapter, int(ref.First))
	}
	return Chapter(int(ref.First))
}
