package lectionary

import (
	"fmt"
	"strings"

	"github.com/FocuswithJustin/Lectionarium/core/bible"
	"github.com/FocuswithJustin/Lectionarium/core/books"
	"github.com/FocuswithJustin/Lectionarium/core/text"
)

// MalformedQueryError reports a mass query that could not be parsed.
type MalformedQueryError struct {
	Query   string
	Message string
}

func (e *MalformedQueryError) Error() string {
	return fmt.Sprintf("malformed query %q: %s", e.Query, e.Message)
}

// NonSingularResultsError reports a query that matched either no mass
// or more than one, when exactly one was wanted.
type NonSingularResultsError struct {
	Query string
	IDs   []string
}

func (e *NonSingularResultsError) Error() string {
	if len(e.IDs) == 0 {
		return fmt.Sprintf("query %q doesn't match anything", e.Query)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "query %q matches multiple masses. Did you mean?\n\n", e.Query)
	for _, id := range e.IDs {
		fmt.Fprintf(&b, "* %s\n", id)
	}
	b.WriteString("\nProvide additional query text to disambiguate.")
	return b.String()
}

// Parse evaluates a mass query against the lectionary and returns the
// unique IDs of every matching mass. A query is a substring of a
// mass's normal name, optionally preceded by a cycle letter and a
// slash ("a/4th-sunday-of-advent").
func (l *Lectionary) Parse(query string) ([]string, error) {
	query = strings.TrimSpace(query)
	if len(query) == 0 {
		return nil, &MalformedQueryError{Query: query, Message: "query is empty"}
	}

	tokens := strings.Split(query, "/")
	if len(tokens) > 2 {
		return nil, &MalformedQueryError{Query: query, Message: "too many slashes"}
	}

	cycle := ""
	substring := tokens[0]
	if len(tokens) == 2 {
		cycle = strings.ToLower(tokens[0])
		substring = tokens[1]
		if cycle != "a" && cycle != "b" && cycle != "c" {
			return nil, &MalformedQueryError{
				Query:   query,
				Message: fmt.Sprintf("cycle is %q, but must be one of a, b, or c", tokens[0]),
			}
		}
	}

	var ids []string
	for _, m := range l.masses {
		if cycle != "" && m.cycle != cycle {
			continue
		}
		if strings.Contains(m.NormalName(), substring) {
			ids = append(ids, m.UniqueID())
		}
	}
	return ids, nil
}

// Reading is one reading of a mass: the citation as written in the
// lectionary and the verses it resolves to.
type Reading struct {
	Citation string
	Verses   []text.Verse
}

// Readings resolves a query to a single mass and returns its name and
// its readings' verses.
func (l *Lectionary) Readings(canon *books.Canon, query string) (string, []Reading, error) {
	ids, err := l.Parse(query)
	if err != nil {
		return "", nil, err
	}
	if len(ids) != 1 {
		return "", nil, &NonSingularResultsError{Query: query, IDs: ids}
	}

	mass := l.FindMass(ids[0])
	readings := make([]Reading, 0, len(mass.readings))
	for _, citation := range mass.readings {
		verses, err := bible.Verses(canon, citation)
		if err != nil {
			return "", nil, fmt.Errorf("reading %q of mass %q: %w", citation, mass.name, err)
		}
		readings = append(readings, Reading{Citation: citation, Verses: verses})
	}
	return mass.name, readings, nil
}

// FormattedIDs returns every mass ID as one formatted string suitable
// for printing to the console.
func (l *Lectionary) FormattedIDs() string {
	var lines []string
	rule := strings.Repeat("=", 80)

	center := func(s string) string {
		pad := (80 - len(s)) / 2
		if pad < 0 {
			return s
		}
		return strings.Repeat(" ", pad) + s
	}
	truncate := func(token string, length int) string {
		if len(token) <= length {
			return token
		}
		return token[:length-3] + "..."
	}

	lines = append(lines, rule)
	lines = append(lines, center("The Three Year Cycle of Sunday Mass Readings"))
	lines = append(lines, rule)
	a := l.SundayMassesInCycle("a")
	b := l.SundayMassesInCycle("b")
	c := l.SundayMassesInCycle("c")
	for i := 0; i < len(a) && i < len(b) && i < len(c); i++ {
		lines = append(lines, fmt.Sprintf("* %-24s * %-24s * %-24s",
			truncate(a[i].UniqueID(), 24),
			truncate(b[i].UniqueID(), 24),
			truncate(c[i].UniqueID(), 24)))
	}

	lines = append(lines, rule)
	lines = append(lines, center("Mass Readings for Certain Special Feasts"))
	lines = append(lines, rule)
	fixed := l.fixedDateMasses
	for i := 0; i < len(fixed); i += 2 {
		first := "* " + fixed[i].UniqueID()
		second := ""
		if i+1 < len(fixed) {
			second = "* " + fixed[i+1].UniqueID()
		}
		lines = append(lines, fmt.Sprintf("     %-28s          %-28s", first, second))
	}

	return strings.Join(lines, "\n")
}
