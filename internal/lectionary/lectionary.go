// Package lectionary loads the Sunday, weekday, and special-feast
// mass lectionaries from their XML sources and answers queries for a
// mass's readings.
//
// Three files make up a lectionary directory:
//
//	sunday-lectionary.xml   cycle -> season -> mass
//	weekday-lectionary.xml  season -> week -> mass
//	special-lectionary.xml  mass (with fixed dates)
//
// Each mass holds its readings as scripture citation strings.
package lectionary

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
)

// Mass is a single mass and its readings. Good Friday is included
// even though it technically is not a mass.
type Mass struct {
	name     string
	readings []string

	// Exactly one of these identifies the mass beyond its name: a
	// fixed date, a weekday week key, or a Sunday cycle.
	fixedMonth int
	fixedDay   int
	weekKey    string
	cycle      string
}

// Name is the human-friendly name of the mass.
func (m *Mass) Name() string {
	return m.name
}

// Readings returns the mass's readings as scripture citation strings.
func (m *Mass) Readings() []string {
	return m.readings
}

// Cycle is the Sunday cycle ("a", "b", or "c") for cycle-specific
// masses, otherwise empty.
func (m *Mass) Cycle() string {
	return m.cycle
}

// WeekKey identifies the week of a weekday mass, otherwise empty.
func (m *Mass) WeekKey() string {
	return m.weekKey
}

// FixedDate returns the month and day of a fixed-date mass. ok is
// false for movable masses.
func (m *Mass) FixedDate() (month, day int, ok bool) {
	if m.fixedDay == 0 {
		return 0, 0, false
	}
	return m.fixedMonth, m.fixedDay, true
}

var nonNameChars = regexp.MustCompile(`[^A-Za-z0-9 ]`)

// NormalName is a computer-friendly name for the mass, but not
// necessarily a unique identifier: lowercase, spaces converted to
// hyphens, all other non-alphanumerics removed.
func (m *Mass) NormalName() string {
	clean := nonNameChars.ReplaceAllString(m.name, "")
	return strings.Join(strings.Fields(strings.ToLower(clean)), "-")
}

// UniqueID builds on NormalName, adding the context that makes it
// unique: the week key for weekday masses, the cycle for Sunday
// masses, nothing for fixed-date masses.
func (m *Mass) UniqueID() string {
	switch {
	case m.fixedDay != 0:
		return m.NormalName()
	case m.weekKey != "":
		return m.weekKey + "-" + m.NormalName()
	default:
		return m.cycle + "/" + m.NormalName()
	}
}

var ordinarySundayPattern = regexp.MustCompile(`^[0-9][0-9]?..-sunday$`)

// IsSundayInOrdinaryTime reports whether the mass is a Sunday in
// Ordinary Time.
func (m *Mass) IsSundayInOrdinaryTime() bool {
	name := m.NormalName()
	if strings.Contains(name, "christ-the-king") {
		return true
	}
	return ordinarySundayPattern.MatchString(name)
}

func (m *Mass) String() string {
	return m.name
}

// Lectionary holds every mass of the Sunday, weekday, and special
// lectionaries.
type Lectionary struct {
	masses          []*Mass
	weekdayMasses   []*Mass
	fixedDateMasses []*Mass
}

// Masses returns the Sunday and fixed-date masses, the ones
// addressable by UniqueID queries.
func (l *Lectionary) Masses() []*Mass {
	return l.masses
}

// WeekdayMasses returns every mass of the weekday lectionary.
func (l *Lectionary) WeekdayMasses() []*Mass {
	return l.weekdayMasses
}

// FixedDateMasses returns the masses of the special lectionary.
func (l *Lectionary) FixedDateMasses() []*Mass {
	return l.fixedDateMasses
}

// SundayMassesInCycle returns the Sunday masses of one cycle ("a",
// "b", or "c").
func (l *Lectionary) SundayMassesInCycle(cycle string) []*Mass {
	var out []*Mass
	for _, m := range l.masses {
		if m.cycle == cycle {
			out = append(out, m)
		}
	}
	return out
}

// SundaysInOrdinaryTime returns every Sunday-in-Ordinary-Time mass.
func (l *Lectionary) SundaysInOrdinaryTime() []*Mass {
	var out []*Mass
	for _, m := range l.masses {
		if m.IsSundayInOrdinaryTime() {
			out = append(out, m)
		}
	}
	return out
}

// WeekdayMassesInWeek returns the weekday masses having the given
// week key.
func (l *Lectionary) WeekdayMassesInWeek(weekKey string) []*Mass {
	var out []*Mass
	for _, m := range l.weekdayMasses {
		if m.weekKey == weekKey {
			out = append(out, m)
		}
	}
	return out
}

// FindMass returns the mass having uniqueID, or nil.
func (l *Lectionary) FindMass(uniqueID string) *Mass {
	for _, m := range l.masses {
		if m.UniqueID() == uniqueID {
			return m
		}
	}
	return nil
}

var cycleSelector = xpath.MustCompile("/lectionary/cycle")
var seasonSelector = xpath.MustCompile("/lectionary/season")
var massSelector = xpath.MustCompile("/lectionary/mass")

// Load reads the three lectionary XML files from dir.
func Load(dir string) (*Lectionary, error) {
	l := &Lectionary{}

	sunday, err := parseFile(filepath.Join(dir, "sunday-lectionary.xml"))
	if err != nil {
		return nil, err
	}
	for _, cycleNode := range xmlquery.QuerySelectorAll(sunday, cycleSelector) {
		cycleID := strings.ToLower(cycleNode.SelectAttr("id"))
		for _, seasonNode := range childElements(cycleNode, "season") {
			masses, err := decodeSeason(seasonNode)
			if err != nil {
				return nil, err
			}
			for _, m := range masses {
				m.cycle = cycleID
				l.masses = append(l.masses, m)
			}
		}
	}

	weekday, err := parseFile(filepath.Join(dir, "weekday-lectionary.xml"))
	if err != nil {
		return nil, err
	}
	for _, seasonNode := range xmlquery.QuerySelectorAll(weekday, seasonSelector) {
		masses, err := decodeSeason(seasonNode)
		if err != nil {
			return nil, err
		}
		l.weekdayMasses = append(l.weekdayMasses, masses...)
	}

	special, err := parseFile(filepath.Join(dir, "special-lectionary.xml"))
	if err != nil {
		return nil, err
	}
	for _, massNode := range xmlquery.QuerySelectorAll(special, massSelector) {
		m, err := decodeMass(massNode)
		if err != nil {
			return nil, err
		}
		l.fixedDateMasses = append(l.fixedDateMasses, m)
	}
	l.masses = append(l.masses, l.fixedDateMasses...)

	return l, nil
}

func parseFile(path string) (*xmlquery.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening lectionary file: %w", err)
	}
	defer f.Close()

	doc, err := xmlquery.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return doc, nil
}

// childElements returns the direct element children of node having
// one of the given names, in document order.
func childElements(node *xmlquery.Node, names ...string) []*xmlquery.Node {
	var out []*xmlquery.Node
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != xmlquery.ElementNode {
			continue
		}
		for _, name := range names {
			if child.Data == name {
				out = append(out, child)
				break
			}
		}
	}
	return out
}

// decodeSeason decodes a <season> element. Masses appear either
// directly or grouped under <week> elements that carry the week key.
func decodeSeason(seasonNode *xmlquery.Node) ([]*Mass, error) {
	var out []*Mass
	for _, child := range childElements(seasonNode, "mass", "week") {
		switch child.Data {
		case "mass":
			m, err := decodeMass(child)
			if err != nil {
				return nil, err
			}
			out = append(out, m)
		case "week":
			weekKey := child.SelectAttr("key")
			for _, massNode := range childElements(child, "mass") {
				m, err := decodeMass(massNode)
				if err != nil {
					return nil, err
				}
				m.weekKey = weekKey
				out = append(out, m)
			}
		}
	}
	return out, nil
}

func decodeMass(massNode *xmlquery.Node) (*Mass, error) {
	m := &Mass{name: massNode.SelectAttr("name")}

	if date := massNode.SelectAttr("date"); date != "" {
		month, day, found := strings.Cut(date, "-")
		if !found {
			return nil, fmt.Errorf("mass %q: fixed date %q is not month-day", m.name, date)
		}
		var err error
		if m.fixedMonth, err = strconv.Atoi(month); err != nil {
			return nil, fmt.Errorf("mass %q: bad fixed month in %q", m.name, date)
		}
		if m.fixedDay, err = strconv.Atoi(day); err != nil {
			return nil, fmt.Errorf("mass %q: bad fixed day in %q", m.name, date)
		}
	}

	// A <choice> groups alternative readings; they are flattened into
	// the reading list.
	for _, child := range childElements(massNode, "reading", "choice") {
		switch child.Data {
		case "reading":
			m.readings = append(m.readings, strings.TrimSpace(child.InnerText()))
		case "choice":
			for _, readingNode := range childElements(child, "reading") {
				m.readings = append(m.readings, strings.TrimSpace(readingNode.InnerText()))
			}
		}
	}
	return m, nil
}
