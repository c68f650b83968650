// Package serializer converts between the catalog service's XML documents and
// entry.Item records. Decoding is a single streaming pass driven by a field
// lookup table and a setter dispatch table; encoding emits the fixed-order
// update document the service expects.
package serializer

import (
	"strconv"
	"strings"

	"github.com/malgo-cli/malgo/entry"
	"github.com/malgo-cli/malgo/log"
)

// fieldCode identifies which item attribute a wire element corresponds to.
// It is a closed enumeration; every wire name maps to exactly one code or to
// fieldUnknown.
type fieldCode uint8

const (
	fieldNone fieldCode = iota // recognized but deliberately ignored
	fieldUnknown
	fieldEntry // structural marker: <entry>
	fieldItem  // structural marker: <anime> / <manga>
	fieldSeriesID
	fieldTitle
	fieldType
	fieldEpisodes
	fieldChapters
	fieldSeriesStatus
	fieldSeriesBegin
	fieldSeriesEnd
	fieldImageURL
	fieldSynonyms
	fieldSynopsis
	fieldMyID
	fieldProgress
	fieldMyBegin
	fieldMyEnd
	fieldMyStatus
	fieldScore
	fieldReconsuming
	fieldReconsumeEp
	fieldLastUpdated
	fieldTags

	fieldMax
)

func (f fieldCode) String() string {
	names := [...]string{
		"none", "unknown", "entry", "item", "series-id", "title", "type",
		"episodes", "chapters", "series-status", "series-begin", "series-end",
		"image-url", "synonyms", "synopsis", "my-id", "progress", "my-begin",
		"my-end", "my-status", "score", "reconsuming", "reconsume-ep",
		"last-updated", "tags",
	}
	if int(f) < len(names) {
		return names[f]
	}
	return "invalid"
}

// fieldNames maps every known wire element name to its field code. Both the
// list convention and the search convention names are present; names listed
// with fieldNone are recognized and skipped rather than warned about.
var fieldNames = map[string]fieldCode{
	"entry": fieldEntry,
	"anime": fieldItem,
	"manga": fieldItem,

	"my_id":             fieldMyID,
	"series_animedb_id": fieldSeriesID,
	"series_mangadb_id": fieldSeriesID,
	"id":                fieldSeriesID,
	"series_title":      fieldTitle,
	"title":             fieldTitle,
	"series_type":       fieldType,
	"type":              fieldType,
	"series_episodes":   fieldEpisodes,
	"episodes":          fieldEpisodes,
	"series_chapters":   fieldChapters,
	"chapters":          fieldChapters,
	"series_status":     fieldSeriesStatus,
	"status":            fieldSeriesStatus,
	"series_start":      fieldSeriesBegin,
	"start_date":        fieldSeriesBegin,
	"series_end":        fieldSeriesEnd,
	"end_date":          fieldSeriesEnd,
	"series_image":      fieldImageURL,
	"image":             fieldImageURL,
	"series_synonyms":   fieldSynonyms,
	"synonyms":          fieldSynonyms,
	"english":           fieldSynonyms,
	"synopsis":          fieldSynopsis,

	"my_watched_episodes": fieldProgress,
	"my_read_chapters":    fieldProgress,
	"my_start_date":       fieldMyBegin,
	"my_finish_date":      fieldMyEnd,
	"my_status":           fieldMyStatus,
	"my_score":            fieldScore,
	"score":               fieldScore,
	"my_rewatching":       fieldReconsuming,
	"my_rereading":        fieldReconsuming,
	"my_rewatching_ep":    fieldReconsumeEp,
	"my_rereading_chap":   fieldReconsumeEp,
	"my_last_updated":     fieldLastUpdated,
	"my_tags":             fieldTags,

	"myanimelist":             fieldNone,
	"myinfo":                  fieldNone,
	"user_id":                 fieldNone,
	"user_name":               fieldNone,
	"user_watching":           fieldNone,
	"user_reading":            fieldNone,
	"user_completed":          fieldNone,
	"user_onhold":             fieldNone,
	"user_dropped":            fieldNone,
	"user_plantowatch":        fieldNone,
	"user_plantoread":         fieldNone,
	"user_days_spent_watching": fieldNone,
	"series_volumes":          fieldNone,
	"volumes":                 fieldNone,
	"my_read_volumes":         fieldNone,
}

// codeOf resolves a wire element name, returning fieldUnknown rather than
// failing for names outside the table.
func codeOf(name string) fieldCode {
	if code, ok := fieldNames[name]; ok {
		return code
	}
	return fieldUnknown
}

// setters dispatches a decoded text value onto the in-progress record,
// indexed by field code. Structural and ignored codes carry no setter.
var setters = [fieldMax]func(*entry.Item, string){
	fieldSeriesID:     func(it *entry.Item, v string) { it.SeriesID = parseInt(v, "series id") },
	fieldTitle:        func(it *entry.Item, v string) { it.Title = v },
	fieldType:         func(it *entry.Item, v string) { it.SeriesType = v },
	fieldEpisodes:     func(it *entry.Item, v string) { it.SeriesEpisodes = parseInt(v, "episodes") },
	fieldChapters:     func(it *entry.Item, v string) { it.SeriesChapters = parseInt(v, "chapters") },
	fieldSeriesStatus: func(it *entry.Item, v string) { it.SeriesStatus = v },
	fieldSeriesBegin:  func(it *entry.Item, v string) { it.SeriesBegin = v },
	fieldSeriesEnd:    func(it *entry.Item, v string) { it.SeriesEnd = v },
	fieldImageURL:     func(it *entry.Item, v string) { it.ImageURL = v },
	fieldSynonyms: func(it *entry.Item, v string) {
		for _, syn := range strings.Split(v, "; ") {
			if syn = strings.TrimSpace(syn); syn != "" {
				it.Synonyms = append(it.Synonyms, syn)
			}
		}
	},
	fieldSynopsis:    func(it *entry.Item, v string) { it.Synopsis = v },
	fieldMyID:        func(it *entry.Item, v string) { it.ID = parseInt(v, "my id") },
	fieldProgress:    func(it *entry.Item, v string) { it.Progress = parseInt(v, "progress") },
	fieldMyBegin:     func(it *entry.Item, v string) { it.MyBegin = v },
	fieldMyEnd:       func(it *entry.Item, v string) { it.MyEnd = v },
	fieldMyStatus:    func(it *entry.Item, v string) { it.MyStatus = parseInt(v, "my status") },
	fieldScore:       func(it *entry.Item, v string) { it.Score = parseInt(v, "score") },
	fieldReconsuming: func(it *entry.Item, v string) { it.Reconsuming = v == "1" },
	fieldReconsumeEp: func(it *entry.Item, v string) { it.ReconsumeEpisode = parseInt(v, "reconsume episode") },
	fieldLastUpdated: func(it *entry.Item, v string) { it.LastUpdated = v },
	fieldTags: func(it *entry.Item, v string) {
		for _, tag := range strings.Split(v, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				it.Tags = append(it.Tags, tag)
			}
		}
	},
}

// parseInt converts a numeric wire value, logging and zeroing on malformed
// input so one bad field never aborts the record.
func parseInt(v, what string) int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		log.Warnf("serializer: malformed %s value %q", what, v)
		return 0
	}
	return n
}
