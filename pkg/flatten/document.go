package flatten

import "strings"

// Entry is one matched file in a Document: its path relative to the root
// (slash-separated) and its raw content, or the inline read-error text when
// the file could not be read.
type Entry struct {
	Path    string
	Content string
}

// Document is the ordered text artifact produced by one flatten call. It is
// not modified after FlattenFS returns.
type Document struct {
	Root    string // absolute path label of the flattened root
	Entries []Entry
}

// String renders the document: the root header, then one block per entry
// with a [relative/path] header line and a blank-line separator. The header
// is present even when no files matched.
func (d *Document) String() string {
	var b strings.Builder
	b.WriteString("Root folder: ")
	b.WriteString(d.Root)
	b.WriteString("\n\n")
	for _, e := range d.Entries {
		b.WriteString("[")
		b.WriteString(e.Path)
		b.WriteString("]\n")
		b.WriteString(e.Content)
		b.WriteString("\n\n")
	}
	return b.String()
}
