package serializer

import (
	"encoding/xml"
	"strconv"
	"strings"
	"time"

	"github.com/malgo-cli/malgo/entry"
)

// wireDateLayouts are the input shapes accepted for the user's start/finish
// dates. Anything else serializes as an empty element.
var wireDateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"2006.01.02",
	"Jan 2, 2006",
	"January 2, 2006",
}

// Encode serializes one record into the fixed-order update/add document. The
// service's wire contract has seventeen elements; the ones this client never
// populates are still emitted empty so the shape stays stable.
func Encode(it entry.Item) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?><entry>`)

	elem(&b, "episode", strconv.Itoa(it.Progress))
	elem(&b, "status", strconv.Itoa(it.MyStatus))
	elem(&b, "score", strconv.Itoa(it.Score))
	elem(&b, "downloaded_episodes", strconv.Itoa(it.Downloaded))
	elem(&b, "storage_type", "")
	elem(&b, "storage_value", "")
	elem(&b, "times_rewatched", "")
	elem(&b, "rewatch_value", "")
	elem(&b, "date_start", wireDate(it.MyBegin))
	elem(&b, "date_finish", wireDate(it.MyEnd))
	elem(&b, "priority", "")
	elem(&b, "enable_discussion", "")
	if it.Reconsuming {
		elem(&b, "enable_rewatching", "1")
	} else {
		elem(&b, "enable_rewatching", "0")
	}
	elem(&b, "comments", "")
	elem(&b, "fansub_group", "")
	elem(&b, "tags", strings.Join(it.Tags, "; "))
	elem(&b, "rewatch_episode", strconv.Itoa(it.ReconsumeEpisode))

	b.WriteString("</entry>")
	return b.String()
}

// elem writes one escaped element.
func elem(b *strings.Builder, name, value string) {
	b.WriteString("<")
	b.WriteString(name)
	b.WriteString(">")
	if value != "" {
		_ = xml.EscapeText(b, []byte(value))
	}
	b.WriteString("</")
	b.WriteString(name)
	b.WriteString(">")
}

// wireDate reformats a free-form date into the service's compact MMDDYYYY
// form, or empty when the input does not parse as a calendar date.
func wireDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	for _, layout := range wireDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("01022006")
		}
	}
	return ""
}
