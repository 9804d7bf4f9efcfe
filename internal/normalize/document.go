package normalize

import (
	"encoding/json"
	"fmt"
)

// Style labels a plain paragraph block with its source class.
type Style string

const (
	StyleNormal  Style = "Normal"
	StyleItalics Style = "NormalItalics"
	StyleBold    Style = "NormalBold"
)

// Document is the normalized form of one transcript fragment. Title and
// Subtitle are nil when the fragment carries no heading of that level,
// which is distinct from a heading that is present but empty.
type Document struct {
	Title    *string `json:"title"`
	Subtitle *string `json:"subtitle"`
	Blocks   []Block `json:"blocks"`
}

// Block is one unit of transcript content, either a Speech or a
// Paragraph. The JSON form carries a "type" discriminator.
type Block interface {
	blockType() string
}

// Speech is a paragraph opened by a recognized speaker element. Time is
// nil when the paragraph has no timestamp element at all; a timestamp
// element with no text yields an empty, non-nil Time.
type Speech struct {
	Speaker string  `json:"speaker"`
	Time    *string `json:"time"`
	Text    string  `json:"text"`
}

func (Speech) blockType() string { return "speech" }

func (s Speech) MarshalJSON() ([]byte, error) {
	type alias Speech
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{Type: s.blockType(), alias: alias(s)})
}

// Paragraph is a styled body paragraph with no speaker.
type Paragraph struct {
	Style Style  `json:"style"`
	Text  string `json:"text"`
}

func (Paragraph) blockType() string { return "paragraph" }

func (p Paragraph) MarshalJSON() ([]byte, error) {
	type alias Paragraph
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{Type: p.blockType(), alias: alias(p)})
}

// UnmarshalJSON restores blocks from their type tags, so persisted
// documents read back into the same shape they were written from.
func (d *Document) UnmarshalJSON(data []byte) error {
	var wire struct {
		Title    *string           `json:"title"`
		Subtitle *string           `json:"subtitle"`
		Blocks   []json.RawMessage `json:"blocks"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	d.Title = wire.Title
	d.Subtitle = wire.Subtitle
	if wire.Blocks == nil {
		d.Blocks = nil
		return nil
	}
	d.Blocks = make([]Block, 0, len(wire.Blocks))
	for i, raw := range wire.Blocks {
		var tag struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(raw, &tag); err != nil {
			return fmt.Errorf("block %d: %w", i, err)
		}
		switch tag.Type {
		case Speech{}.blockType():
			var s Speech
			if err := json.Unmarshal(raw, &s); err != nil {
				return fmt.Errorf("block %d: %w", i, err)
			}
			d.Blocks = append(d.Blocks, s)
		case Paragraph{}.blockType():
			var p Paragraph
			if err := json.Unmarshal(raw, &p); err != nil {
				return fmt.Errorf("block %d: %w", i, err)
			}
			d.Blocks = append(d.Blocks, p)
		default:
			return fmt.Errorf("block %d: unrecognized type %q", i, tag.Type)
		}
	}
	return nil
}

// Clone returns a copy of d sharing no mutable state with the original.
// Block values are copied by value; the strings they hold are immutable.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	out := &Document{
		Title:    cloneString(d.Title),
		Subtitle: cloneString(d.Subtitle),
	}
	if d.Blocks != nil {
		out.Blocks = make([]Block, len(d.Blocks))
		for i, block := range d.Blocks {
			switch b := block.(type) {
			case Speech:
				b.Time = cloneString(b.Time)
				out.Blocks[i] = b
			default:
				out.Blocks[i] = block
			}
		}
	}
	return out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
