package domain

import "strings"

// File types assigned by the library resolver
const (
	FileTypePresentation = "pptx"
	FileTypeDocument     = "docx"
	FileTypeSpreadsheet  = "xlsx"
	FileTypePDF          = "pdf"
	FileTypeGeneric      = "file"
)

// Item represents a single file reference placed inside a section.
// Items are immutable once created; they are only ever moved or removed.
type Item struct {
	ID       string `json:"id"`             // Unique for the lifetime of the model
	Name     string `json:"name"`           // Display name (file name)
	Path     string `json:"path,omitempty"` // Absolute path on disk, empty for placeholders
	FileType string `json:"fileType"`       // One of the FileType* constants
}

// Section represents a named, ordered group of items
type Section struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Locked bool   `json:"locked"` // Sentinel sections are locked
	Items  []Item `json:"items"`
}

// Clone returns a copy of the section that shares no backing arrays with s
func (s Section) Clone() Section {
	out := s
	out.Items = make([]Item, len(s.Items))
	copy(out.Items, s.Items)
	return out
}

// IndexOf returns the index of the item with the given ID, or -1
func (s Section) IndexOf(itemID string) int {
	for i, item := range s.Items {
		if item.ID == itemID {
			return i
		}
	}
	return -1
}

// Playlist is the canonical ordered session data.
// Position 0 and the last position conventionally hold locked sentinels.
type Playlist struct {
	Sections []Section `json:"sections"`
}

// Clone returns a deep copy of the playlist
func (p Playlist) Clone() Playlist {
	out := Playlist{Sections: make([]Section, len(p.Sections))}
	for i, s := range p.Sections {
		out.Sections[i] = s.Clone()
	}
	return out
}

// IndexOf returns the position of the section with the given ID, or -1
func (p Playlist) IndexOf(sectionID string) int {
	for i, s := range p.Sections {
		if s.ID == sectionID {
			return i
		}
	}
	return -1
}

// Section returns the section with the given ID
func (p Playlist) Section(sectionID string) (Section, bool) {
	if i := p.IndexOf(sectionID); i >= 0 {
		return p.Sections[i], true
	}
	return Section{}, false
}

// HasLeadSentinel reports whether position 0 holds a locked section
func (p Playlist) HasLeadSentinel() bool {
	return len(p.Sections) > 0 && p.Sections[0].Locked
}

// HasTrailSentinel reports whether the last position holds a locked section
func (p Playlist) HasTrailSentinel() bool {
	return len(p.Sections) > 1 && p.Sections[len(p.Sections)-1].Locked
}

// ItemCount returns the total number of items across all sections
func (p Playlist) ItemCount() int {
	n := 0
	for _, s := range p.Sections {
		n += len(s.Items)
	}
	return n
}

// FileDescriptor is a single file returned by a DropResolver
type FileDescriptor struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Type string `json:"type"`
}

// LibraryNode is a node of the content library tree.
// Data carries the opaque value that becomes the payload of a drag.
type LibraryNode struct {
	Key      string        `json:"key"`
	Label    string        `json:"label"`
	Data     string        `json:"data"`
	Type     string        `json:"type,omitempty"` // Empty for folders
	Children []LibraryNode `json:"children,omitempty"`
}

// IsFolder returns true if the node groups other nodes
func (n LibraryNode) IsFolder() bool {
	return n.Type == ""
}

// FileCount returns the number of file leaves below (and including) the node
func (n LibraryNode) FileCount() int {
	if !n.IsFolder() {
		return 1
	}
	total := 0
	for _, c := range n.Children {
		total += c.FileCount()
	}
	return total
}

// DisplayType returns an uppercase label for the node type (e.g. "PPTX")
func (n LibraryNode) DisplayType() string {
	if n.IsFolder() {
		return "DIR"
	}
	return strings.ToUpper(n.Type)
}
