// Package ndl looks up bibliographic metadata for an ISBN from the
// National Diet Library OpenSearch API.
package ndl

import (
	"fmt"
	"sort"
	"strings"

	"github.com/beevik/etree"
)

// Record is the flat field map for one catalog item, always containing
// "isbn". Field sets vary between books; the store tolerates that.
type Record map[string]string

// Title returns the record's title field, if present.
func (r Record) Title() string {
	return r["title"]
}

// ISBN returns the record's isbn field.
func (r Record) ISBN() string {
	return r["isbn"]
}

// FieldKey identifies one child element of a catalog item by tag name and
// attribute set. Repeated tags with different attributes (e.g. several
// dc:subject elements with different xsi:type values) map to distinct keys.
type FieldKey struct {
	Tag   string
	Attrs map[string]string
}

// NewFieldKey builds a FieldKey from an etree element.
func NewFieldKey(el *etree.Element) FieldKey {
	key := FieldKey{Tag: el.FullTag()}
	if len(el.Attr) > 0 {
		key.Attrs = make(map[string]string, len(el.Attr))
		for _, attr := range el.Attr {
			key.Attrs[attr.FullKey()] = attr.Value
		}
	}
	return key
}

// String renders the key canonically: the bare tag when the element has
// no attributes, otherwise `tag[k=v ...]` with attributes sorted by name.
func (k FieldKey) String() string {
	if len(k.Attrs) == 0 {
		return k.Tag
	}

	names := make([]string, 0, len(k.Attrs))
	for name := range k.Attrs {
		names = append(names, name)
	}
	sort.Strings(names)

	pairs := make([]string, 0, len(names))
	for _, name := range names {
		pairs = append(pairs, fmt.Sprintf("%s=%s", name, k.Attrs[name]))
	}
	return fmt.Sprintf("%s[%s]", k.Tag, strings.Join(pairs, " "))
}

// parseRecord extracts the first item element from an OpenSearch response
// and flattens its children into a Record. A nil return means the feed
// contained no item (ISBN unknown to the catalog).
func parseRecord(body []byte, isbn string) (Record, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(body); err != nil {
		return nil, fmt.Errorf("failed to parse catalog XML: %w", err)
	}

	// The feed may list several editions; take the first item.
	item := doc.FindElement("//item")
	if item == nil {
		return nil, nil
	}

	record := Record{"isbn": isbn}
	for _, child := range item.ChildElements() {
		record[NewFieldKey(child).String()] = strings.TrimSpace(child.Text())
	}
	return record, nil
}
