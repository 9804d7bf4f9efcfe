package hansard

import (
	"encoding/json"
	"fmt"

	"github.com/hbur845/nsw-parliament-scrapper-fawwaz/internal/normalize"
)

// Node type tags used on the wire by the table of contents tree.
const (
	TypeRoot          = "Root"
	TypeProceeding    = "Proceeding"
	TypeSubproceeding = "Subproceeding"
	TypeTopic         = "Topic"
	TypeMember        = "Member"
)

// Item is a node below the root of the table of contents tree. The concrete
// kinds are Proceeding, Topic and Member, discriminated on the wire by the
// "type" field.
type Item interface {
	itemKind() string
}

// Root is the top of a sitting day's table of contents.
type Root struct {
	PdfID    string   `json:"pdfid"`
	Type     string   `json:"type"`
	Expanded bool     `json:"expanded"`
	Date     string   `json:"date"`
	Chamber  string   `json:"chamber"`
	Draft    bool     `json:"draft"`
	Items    ItemList `json:"item"`
}

// Proceeding groups the topics of one stage of the sitting day. The
// "Subproceeding" tag shares this shape.
type Proceeding struct {
	ID       string   `json:"id,omitempty"`
	Name     string   `json:"name"`
	Type     string   `json:"type"`
	Expanded bool     `json:"expanded"`
	Items    ItemList `json:"item,omitempty"`
}

func (*Proceeding) itemKind() string { return TypeProceeding }

// Topic is a single debate with a fetchable transcript fragment. Data stays
// nil until the fragment has been fetched and normalized; it is omitted
// from JSON rather than serialized as null.
type Topic struct {
	ID       string     `json:"id,omitempty"`
	Name     string     `json:"name"`
	DocID    string     `json:"docid,omitempty"`
	Type     string     `json:"type"`
	Expanded bool       `json:"expanded"`
	Items    ItemList   `json:"item,omitempty"`
	Data     *TopicData `json:"data,omitempty"`
}

func (*Topic) itemKind() string { return TypeTopic }

// Member is a speaker cross-reference nested under a topic.
type Member struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
	Type string `json:"type"`
	XRef string `json:"xref,omitempty"`
}

func (*Member) itemKind() string { return TypeMember }

// TopicData is the augmentation attached to a topic: the fragment HTML
// exactly as served plus its normalized document.
type TopicData struct {
	RawHTML string              `json:"rawHTML"`
	Parsed  *normalize.Document `json:"parsed"`
}

// DocTitle pairs a fragment document id with a display title.
type DocTitle struct {
	DocID string `json:"docid"`
	Title string `json:"title"`
}

// ItemList decodes heterogeneous "item" arrays, dispatching on the "type"
// tag and rejecting tags outside the known set.
type ItemList []Item

func (l *ItemList) UnmarshalJSON(data []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return err
	}

	items := make(ItemList, 0, len(raws))
	for i, raw := range raws {
		var tag struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(raw, &tag); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}

		var item Item
		switch tag.Type {
		case TypeProceeding, TypeSubproceeding:
			item = &Proceeding{}
		case TypeTopic:
			item = &Topic{}
		case TypeMember:
			item = &Member{}
		default:
			return fmt.Errorf("item %d: unrecognized type %q", i, tag.Type)
		}
		if err := json.Unmarshal(raw, item); err != nil {
			return fmt.Errorf("item %d (%s): %w", i, tag.Type, err)
		}
		items = append(items, item)
	}

	*l = items
	return nil
}
