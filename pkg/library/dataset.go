package library

import "slices"

// Dataset is the canonical document holding every listing and author.
type Dataset struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Authors     *Registry `json:"authors"`
	Libraries   []Library `json:"libraries"`
}

// NewDataset returns an empty dataset ready for use.
func NewDataset(title, description string) *Dataset {
	return &Dataset{
		Title:       title,
		Description: description,
		Authors:     NewRegistry(),
		Libraries:   []Library{},
	}
}

// Normalize replaces nil collections with empty ones so the document always
// serializes with an authors object and a libraries array.
func (d *Dataset) Normalize() {
	if d.Authors == nil {
		d.Authors = NewRegistry()
	}
	if d.Libraries == nil {
		d.Libraries = []Library{}
	}
}

// Clone returns a deep copy of the dataset.
func (d *Dataset) Clone() *Dataset {
	c := &Dataset{
		Title:       d.Title,
		Description: d.Description,
		Libraries:   make([]Library, len(d.Libraries)),
	}
	if d.Authors != nil {
		c.Authors = d.Authors.Clone()
	}
	for i, l := range d.Libraries {
		cl := l
		cl.Tags = slices.Clone(l.Tags)
		cl.Compatibility = slices.Clone(l.Compatibility)
		cl.Authors = make([]AuthorRef, len(l.Authors))
		for j, ref := range l.Authors {
			cl.Authors[j] = AuthorRef{Key: ref.Key, Inline: ref.Inline.Clone()}
		}
		if l.Authors == nil {
			cl.Authors = nil
		}
		c.Libraries[i] = cl
	}
	return c
}

// DanglingReference is a key reference with no registry entry.
type DanglingReference struct {
	Listing string
	Key     AuthorKey
}

// DanglingReferences lists every key reference that does not resolve, in
// listing order.
func (d *Dataset) DanglingReferences() []DanglingReference {
	var out []DanglingReference
	for _, lib := range d.Libraries {
		for _, key := range lib.AuthorKeys() {
			if d.Authors == nil || !d.Authors.Has(key) {
				out = append(out, DanglingReference{Listing: lib.Title, Key: key})
			}
		}
	}
	return out
}
