package entities

import (
	"encoding/json"
	"sort"
	"strings"
)

// BlobKind tags the parsed form of an embedded structured field. Source rows
// carry working hours and amenities as free text or JSON; a failed parse
// degrades to the raw text, never to an error (the page renders "not
// specified" instead of failing).
type BlobKind int

const (
	// BlobUnset means the field was empty on the record
	BlobUnset BlobKind = iota
	// BlobRawText means the field held text that is not structured JSON
	BlobRawText
	// BlobStructured means the field parsed into its structured form
	BlobStructured
)

// Weekday names as they appear in imported working-hours blobs.
var weekdayOrder = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// OpeningHours is the tagged variant for a venue's weekly schedule. Weekly
// maps weekday name to a free-text hour range (or "closed"); it is only set
// when Kind is BlobStructured.
type OpeningHours struct {
	Kind   BlobKind
	Raw    string
	Weekly map[string]string
}

// ParseOpeningHours parses a raw working-hours blob. An empty blob is Unset;
// a JSON object of weekday to hour-range strings is Structured; anything
// else, including malformed JSON, is RawText.
func ParseOpeningHours(raw string) OpeningHours {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return OpeningHours{Kind: BlobUnset}
	}

	var weekly map[string]string
	if err := json.Unmarshal([]byte(trimmed), &weekly); err != nil || len(weekly) == 0 {
		return OpeningHours{Kind: BlobRawText, Raw: trimmed}
	}

	return OpeningHours{Kind: BlobStructured, Raw: trimmed, Weekly: weekly}
}

// Ordered returns the schedule as (weekday, hours) pairs in calendar order,
// skipping weekdays absent from the blob. Empty unless Structured.
func (h OpeningHours) Ordered() [][2]string {
	if h.Kind != BlobStructured {
		return nil
	}

	var out [][2]string
	for _, day := range weekdayOrder {
		if hours, ok := h.Weekly[day]; ok {
			out = append(out, [2]string{day, hours})
		}
	}
	return out
}

// Amenities is the tagged variant for the "about" blob: groups of feature
// labels that are enabled for the venue.
type Amenities struct {
	Kind   BlobKind
	Raw    string
	Groups map[string][]string
}

// ParseAmenities parses a raw amenities blob. The structured form is a JSON
// object of group name to {feature: bool}; only enabled features are kept.
// Malformed JSON degrades to RawText.
func ParseAmenities(raw string) Amenities {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Amenities{Kind: BlobUnset}
	}

	var groups map[string]map[string]bool
	if err := json.Unmarshal([]byte(trimmed), &groups); err != nil || len(groups) == 0 {
		return Amenities{Kind: BlobRawText, Raw: trimmed}
	}

	parsed := make(map[string][]string, len(groups))
	for group, features := range groups {
		var enabled []string
		for feature, on := range features {
			if on {
				enabled = append(enabled, feature)
			}
		}
		if len(enabled) > 0 {
			sort.Strings(enabled)
			parsed[group] = enabled
		}
	}

	if len(parsed) == 0 {
		return Amenities{Kind: BlobRawText, Raw: trimmed}
	}

	return Amenities{Kind: BlobStructured, Raw: trimmed, Groups: parsed}
}
