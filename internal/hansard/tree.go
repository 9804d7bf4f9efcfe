package hansard

import "iter"

// Topics yields each (proceeding, topic) pair of the tree in document
// order: top-level Proceeding nodes and their direct Topic children. The
// sequence is restartable; ranging twice walks the tree twice.
func (r *Root) Topics() iter.Seq2[*Proceeding, *Topic] {
	return func(yield func(*Proceeding, *Topic) bool) {
		if r == nil {
			return
		}
		for _, item := range r.Items {
			proc, ok := item.(*Proceeding)
			if !ok || proc.Type != TypeProceeding {
				continue
			}
			for _, child := range proc.Items {
				topic, ok := child.(*Topic)
				if !ok {
					continue
				}
				if !yield(proc, topic) {
					return
				}
			}
		}
	}
}

// FindTopicBranch builds the smallest tree that still carries the topic
// with the given document id: a fresh root holding a copy of the owning
// proceeding holding a deep copy of the topic. The branch shares no mutable
// state with the receiver, so augmenting it never touches the full tree.
// The second return is false when no topic carries docID.
func (r *Root) FindTopicBranch(docID string) (*Root, bool) {
	for proc, topic := range r.Topics() {
		if topic.DocID != docID {
			continue
		}
		branch := &Root{
			PdfID:    r.PdfID,
			Type:     r.Type,
			Expanded: r.Expanded,
			Date:     r.Date,
			Chamber:  r.Chamber,
			Draft:    r.Draft,
			Items: ItemList{&Proceeding{
				Name:     proc.Name,
				Type:     proc.Type,
				Expanded: proc.Expanded,
				Items:    ItemList{topic.clone()},
			}},
		}
		return branch, true
	}
	return nil, false
}

// IndexPairs summarizes the day: for each top-level proceeding, the docid
// of its first child paired with the proceeding name. Proceedings whose
// first child carries no docid are skipped.
func (r *Root) IndexPairs() []DocTitle {
	var pairs []DocTitle
	for _, item := range r.Items {
		proc, ok := item.(*Proceeding)
		if !ok || len(proc.Items) == 0 {
			continue
		}
		first, ok := proc.Items[0].(*Topic)
		if !ok || first.DocID == "" {
			continue
		}
		pairs = append(pairs, DocTitle{DocID: first.DocID, Title: proc.Name})
	}
	return pairs
}

func (t *Topic) clone() *Topic {
	if t == nil {
		return nil
	}
	out := *t
	out.Items = t.Items.clone()
	if t.Data != nil {
		out.Data = &TopicData{
			RawHTML: t.Data.RawHTML,
			Parsed:  t.Data.Parsed.Clone(),
		}
	}
	return &out
}

func (l ItemList) clone() ItemList {
	if l == nil {
		return nil
	}
	out := make(ItemList, 0, len(l))
	for _, item := range l {
		switch v := item.(type) {
		case *Proceeding:
			p := *v
			p.Items = v.Items.clone()
			out = append(out, &p)
		case *Topic:
			out = append(out, v.clone())
		case *Member:
			m := *v
			out = append(out, &m)
		}
	}
	return out
}
