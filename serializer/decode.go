package serializer

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"

	"github.com/malgo-cli/malgo/entry"
	"github.com/malgo-cli/malgo/log"
	"golang.org/x/net/html"
)

// Decode reconstructs item records from an XML document in a single forward
// pass. The service emits two nesting conventions without telling us which:
//
//	list results:   <myanimelist><myinfo/><anime>...</anime><anime>...</anime></myanimelist>
//	search results: <anime><entry>...</entry><entry>...</entry></anime>
//
// The pass watches for an <entry> opening after an <anime>/<manga> while no
// entry has been seen yet; when that happens the outer element is the
// container and </entry> commits each record, otherwise </anime> (or </manga>)
// does. Decoding is best effort: unknown names, stray text and malformed
// fields are logged and skipped, and a document the tokenizer cannot read at
// all yields an empty result.
func Decode(data []byte, kind entry.Kind) []entry.Item {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Strict = false

	var items []entry.Item
	cur := entry.Item{Kind: kind}

	field := fieldNone
	entryAfterItem := false
	seenItem := false
	seenEntry := false
	readAny := false

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			if !readAny {
				log.Errorf("serializer: unreadable document: %v", err)
				return nil
			}
			log.Warnf("serializer: decode stopped early: %v", err)
			break
		}
		readAny = true

		switch t := tok.(type) {
		case xml.StartElement:
			code := codeOf(t.Name.Local)
			if code == fieldUnknown {
				log.Warnf("serializer: unexpected field %s", t.Name.Local)
			}

			entryAfterItem = entryAfterItem || (code == fieldEntry && seenItem && !seenEntry)
			seenEntry = seenEntry || code == fieldEntry
			seenItem = seenItem || code == fieldItem
			field = code

		case xml.EndElement:
			code := codeOf(t.Name.Local)
			if (entryAfterItem && code == fieldEntry) ||
				(!entryAfterItem && code == fieldItem) {
				items = append(items, cur)
				cur = entry.Item{Kind: kind}
			}
			field = fieldNone

		case xml.CharData:
			text := string(t)
			if strings.TrimSpace(text) == "" {
				break
			}
			text = html.UnescapeString(text)
			if set := setters[field]; set != nil {
				set(&cur, text)
			} else if field != fieldNone {
				log.Warnf("serializer: stray text in %s element: %q", field, strings.TrimSpace(text))
			}

		case xml.Comment, xml.ProcInst, xml.Directive:
			// not part of the record stream

		default:
			log.Warnf("serializer: unexpected token %T", tok)
		}
	}

	return items
}
