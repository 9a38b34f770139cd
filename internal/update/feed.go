package update

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	appErrors "imagetoolbox/internal/errors"

	"golang.org/x/net/html/charset"
)

var (
	ErrMalformedFeed = appErrors.New(appErrors.CodeFeedParseFailed, "malformed feed", nil)
	ErrNoEntries     = appErrors.New(appErrors.CodeFeedParseFailed, "feed has no entries", nil)
	ErrEmptyTitle    = appErrors.New(appErrors.CodeFeedParseFailed, "latest feed entry has no title", nil)
)

// maxFeedBytes bounds how much of a response body is handed to the decoder.
const maxFeedBytes = 4 << 20

// Feed is the part of an Atom document the checker reads: the feed title
// and, at most, its first entry.
type Feed struct {
	XMLName xml.Name
	Title   string
	Entries []Entry
}

// Entry is a single release in the feed.
type Entry struct {
	ID    string
	Title string
	// Updated is zero when the feed's timestamp cannot be parsed.
	Updated time.Time
	Links   []Link
	Content string
}

// Link is an Atom link element.
type Link struct {
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr"`
	Href string `xml:"href,attr"`
}

type rawEntry struct {
	ID        string `xml:"id"`
	Title     string `xml:"title"`
	Updated   string `xml:"updated"`
	Published string `xml:"published"`
	Links     []Link `xml:"link"`
	Content   string `xml:"content"`
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	time.RFC1123Z,
	time.RFC1123,
}

func parseTimestamp(values ...string) time.Time {
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		for _, layout := range timestampLayouts {
			if t, err := time.Parse(layout, value); err == nil {
				return t
			}
		}
	}
	return time.Time{}
}

func (r rawEntry) entry() Entry {
	return Entry{
		ID:      strings.TrimSpace(r.ID),
		Title:   r.Title,
		Updated: parseTimestamp(r.Updated, r.Published),
		Links:   r.Links,
		Content: r.Content,
	}
}

// ParseFeed reads an Atom document up to its first entry. Anything after
// that entry is never decoded, so later entries cannot fail the parse.
// Non-UTF-8 documents are transcoded according to their XML declaration.
func ParseFeed(r io.Reader) (*Feed, error) {
	dec := xml.NewDecoder(io.LimitReader(r, maxFeedBytes))
	dec.CharsetReader = charset.NewReaderLabel

	var feed Feed
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			if feed.XMLName.Local == "" {
				return nil, fmt.Errorf("%w: no feed element", ErrMalformedFeed)
			}
			return &feed, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedFeed, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if feed.XMLName.Local == "" {
				if t.Name.Local != "feed" {
					return nil, fmt.Errorf("%w: unexpected root element <%s>", ErrMalformedFeed, t.Name.Local)
				}
				feed.XMLName = t.Name
				continue
			}
			switch t.Name.Local {
			case "title":
				if err := dec.DecodeElement(&feed.Title, &t); err != nil {
					return nil, fmt.Errorf("%w: %v", ErrMalformedFeed, err)
				}
			case "entry":
				var raw rawEntry
				if err := dec.DecodeElement(&raw, &t); err != nil {
					return nil, fmt.Errorf("%w: %v", ErrMalformedFeed, err)
				}
				feed.Entries = append(feed.Entries, raw.entry())
				return &feed, nil
			default:
				if err := dec.Skip(); err != nil {
					return nil, fmt.Errorf("%w: %v", ErrMalformedFeed, err)
				}
			}
		case xml.EndElement:
			// Children are consumed whole, so this closes the feed.
			return &feed, nil
		}
	}
}

// Latest returns the first entry, which release feeds list newest-first.
func (f *Feed) Latest() (Entry, error) {
	if f == nil || len(f.Entries) == 0 {
		return Entry{}, ErrNoEntries
	}
	entry := f.Entries[0]
	if strings.TrimSpace(entry.Title) == "" {
		return Entry{}, ErrEmptyTitle
	}
	return entry, nil
}

// Tag is the entry title with surrounding whitespace removed.
func (e Entry) Tag() string {
	return strings.TrimSpace(e.Title)
}

// AlternateURL returns the entry's HTML page, falling back to the first link.
func (e Entry) AlternateURL() string {
	for _, l := range e.Links {
		if l.Rel == "" || l.Rel == "alternate" {
			return l.Href
		}
	}
	if len(e.Links) > 0 {
		return e.Links[0].Href
	}
	return ""
}
