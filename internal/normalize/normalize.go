package normalize

import (
	"fmt"
	"strings"
)

// Hansard fragment markup is class-driven: headings, speaker names,
// timestamps and body paragraphs are all <p> or inline elements
// distinguished only by these classes.
const (
	classTitle    = "SubDebate-H"
	classSubtitle = "SubSubDebate-H"
	classTime     = "Time-H"

	classNormal  = "Normal-P"
	classItalics = "NormalItalics-P"
	classBold    = "NormalBold-P"
)

// speakerClasses in precedence order: when a paragraph carries more than
// one speaker element, the class decides, not document position.
var speakerClasses = []string{"MemberSpeech-H", "MemberUpper-H", "OfficeUpper-H"}

// Engine selects a normalization implementation.
type Engine string

const (
	// EngineXPath queries the parse tree with compiled XPath expressions.
	// It is the default.
	EngineXPath Engine = "xpath"
	// EngineGoquery queries the parse tree with CSS selectors.
	EngineGoquery Engine = "goquery"
	// EngineDOM walks the parse tree directly with no query layer.
	EngineDOM Engine = "dom"
)

// Engines lists every selectable engine.
func Engines() []Engine {
	return []Engine{EngineXPath, EngineGoquery, EngineDOM}
}

// ParseEngine validates a user-supplied engine name. The empty string
// selects the default engine.
func ParseEngine(name string) (Engine, error) {
	switch engine := Engine(strings.ToLower(strings.TrimSpace(name))); engine {
	case "":
		return EngineXPath, nil
	case EngineXPath, EngineGoquery, EngineDOM:
		return engine, nil
	default:
		return "", fmt.Errorf("unknown parse engine %q (choose from xpath, goquery, dom)", name)
	}
}

// Parse normalizes fragment HTML with the selected engine. The engines
// are interchangeable: each returns an identical Document for the same
// input. An empty engine falls back to EngineXPath.
func Parse(fragment string, engine Engine) (*Document, error) {
	switch engine {
	case EngineXPath, "":
		return parseXPath(fragment)
	case EngineGoquery:
		return parseGoquery(fragment)
	case EngineDOM:
		return parseDOM(fragment)
	default:
		return nil, fmt.Errorf("unknown parse engine %q", engine)
	}
}
