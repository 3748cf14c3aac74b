package xbrl

import (
	"errors"
	"strings"
	"time"
)

// ErrNoValidContext indicates the document contains no context element with
// a parsable period end date. Without one, no financial fact can be anchored
// to a reporting period, so the whole extraction fails.
var ErrNoValidContext = errors.New("no context with a valid period end date")

// dateLayout is the ISO calendar date format XBRL uses for period boundaries.
const dateLayout = "2006-01-02"

// Context is one temporal context of the instance document: an identifier
// that fact elements reference, and the end date of the period it covers.
type Context struct {
	ID        string
	PeriodEnd time.Time
}

// ContextIndex holds the valid temporal contexts of one document, in
// document order, and the authoritative (most recent) one among them.
type ContextIndex struct {
	contexts      []Context
	authoritative Context
}

// BuildContextIndex scans the document for context elements carrying an id
// attribute and a nested endDate element. Contexts with a missing or
// unparsable end date are skipped silently; they cannot anchor facts but do
// not invalidate the rest of the document. Returns ErrNoValidContext when
// no usable context remains.
func BuildContextIndex(doc *Document) (*ContextIndex, error) {
	idx := &ContextIndex{}

	doc.walk(func(n *Node) bool {
		if n.Local != "context" {
			return true
		}
		id := n.Attr("id")
		if id == "" {
			return true
		}
		end := descendant(n, "endDate")
		if end == nil {
			return true
		}
		when, err := time.Parse(dateLayout, strings.TrimSpace(end.Text))
		if err != nil {
			return true
		}
		idx.contexts = append(idx.contexts, Context{ID: id, PeriodEnd: when})
		return true
	})

	if len(idx.contexts) == 0 {
		return nil, ErrNoValidContext
	}

	// Latest end date wins; on a shared maximal date the context seen first
	// in document order is kept (strict After never replaces an equal date).
	idx.authoritative = idx.contexts[0]
	for _, c := range idx.contexts[1:] {
		if c.PeriodEnd.After(idx.authoritative.PeriodEnd) {
			idx.authoritative = c
		}
	}
	return idx, nil
}

// Authoritative returns the selected reporting context: the one whose period
// end date is the latest in the document.
func (idx *ContextIndex) Authoritative() Context {
	return idx.authoritative
}

// Len reports how many valid contexts the document declared.
func (idx *ContextIndex) Len() int {
	return len(idx.contexts)
}
