package update

import (
	"errors"
	"strings"
	"testing"
	"time"

	appErrors "imagetoolbox/internal/errors"
)

func TestParseFeedStopsAtFirstEntry(t *testing.T) {
	feed, err := ParseFeed(strings.NewReader(atomFeed("3.0.0-alpha01", "2.9.0")))
	if err != nil {
		t.Fatalf("ParseFeed() error: %v", err)
	}
	if feed.Title != "Release notes from ImageResizer" {
		t.Errorf("Title = %q", feed.Title)
	}
	if len(feed.Entries) != 1 {
		t.Fatalf("len(Entries) = %d, want 1", len(feed.Entries))
	}
	latest, err := feed.Latest()
	if err != nil {
		t.Fatalf("Latest() error: %v", err)
	}
	if latest.Tag() != "3.0.0-alpha01" {
		t.Errorf("Tag() = %q, want 3.0.0-alpha01", latest.Tag())
	}
	if latest.Updated.IsZero() {
		t.Error("Updated should be parsed")
	}
}

func TestParseFeedIgnoresLaterEntries(t *testing.T) {
	body := `<feed xmlns="http://www.w3.org/2005/Atom">
  <entry><updated>2024-05-02T10:00:00Z</updated><title>2.7.0</title></entry>
  <entry><updated>yesterday</updated><title>2.6.0</title></entry>
  <entry><title>unterminated`

	feed, err := ParseFeed(strings.NewReader(body))
	if err != nil {
		t.Fatalf("ParseFeed() error: %v", err)
	}
	latest, err := feed.Latest()
	if err != nil || latest.Tag() != "2.7.0" {
		t.Fatalf("Latest() = %q, %v; want 2.7.0", latest.Tag(), err)
	}
}

func TestParseFeedLenientTimestamps(t *testing.T) {
	tests := []struct {
		name  string
		entry string
		want  time.Time
	}{
		{"rfc3339", `<updated>2024-05-02T10:00:00Z</updated>`, time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC)},
		{"date only", `<updated>2024-05-02</updated>`, time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)},
		{"published fallback", `<updated>soon</updated><published>2024-05-01T00:00:00Z</published>`, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
		{"unparseable", `<updated>yesterday</updated>`, time.Time{}},
		{"missing", ``, time.Time{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := `<feed><entry><title>2.7.0</title>` + tt.entry + `</entry></feed>`
			feed, err := ParseFeed(strings.NewReader(body))
			if err != nil {
				t.Fatalf("ParseFeed() error: %v", err)
			}
			if got := feed.Entries[0].Updated; !got.Equal(tt.want) {
				t.Errorf("Updated = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseFeedDeclaredCharset(t *testing.T) {
	body := "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?>\n" +
		"<feed><entry><title>2.7.0</title><content>Caf\xe9 filter</content></entry></feed>"

	feed, err := ParseFeed(strings.NewReader(body))
	if err != nil {
		t.Fatalf("ParseFeed() error: %v", err)
	}
	if got := feed.Entries[0].Content; got != "Café filter" {
		t.Errorf("Content = %q, want %q", got, "Café filter")
	}
}

func TestParseFeedWithoutRoot(t *testing.T) {
	_, err := ParseFeed(strings.NewReader(""))
	if !errors.Is(err, ErrMalformedFeed) {
		t.Errorf("ParseFeed() error = %v, want ErrMalformedFeed", err)
	}
}

func TestFeedLatestNil(t *testing.T) {
	var feed *Feed
	if _, err := feed.Latest(); !errors.Is(err, ErrNoEntries) {
		t.Errorf("Latest() on nil feed = %v, want ErrNoEntries", err)
	}
}

func TestParseFeedRejectsOtherRoot(t *testing.T) {
	_, err := ParseFeed(strings.NewReader(`<rss><channel><title>x</title></channel></rss>`))
	if !errors.Is(err, ErrMalformedFeed) {
		t.Errorf("ParseFeed() error = %v, want ErrMalformedFeed", err)
	}
}

func TestFeedErrorsCarryParseCode(t *testing.T) {
	for _, err := range []error{ErrMalformedFeed, ErrNoEntries, ErrEmptyTitle} {
		if !appErrors.IsCode(err, appErrors.CodeFeedParseFailed) {
			t.Errorf("%v should carry %s", err, appErrors.CodeFeedParseFailed)
		}
	}
	if !appErrors.IsCode(ErrRateLimited, appErrors.CodeNetworkFailure) {
		t.Error("ErrRateLimited should carry the network failure code")
	}
	if errors.Is(ErrRateLimited, ErrNetworkFailure) {
		t.Error("rate limiting should be distinguishable from other network failures")
	}
}

func TestEntryAlternateURL(t *testing.T) {
	tests := []struct {
		name  string
		links []Link
		want  string
	}{
		{"none", nil, ""},
		{"alternate wins", []Link{{Rel: "enclosure", Href: "a"}, {Rel: "alternate", Href: "b"}}, "b"},
		{"implicit rel", []Link{{Href: "c"}}, "c"},
		{"fallback first", []Link{{Rel: "related", Href: "d"}, {Rel: "self", Href: "e"}}, "d"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := (Entry{Links: tt.links}).AlternateURL(); got != tt.want {
				t.Errorf("AlternateURL() = %q, want %q", got, tt.want)
			}
		})
	}
}
