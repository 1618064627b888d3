package sources

import (
	"encoding/json"
	"html"
	"strconv"
	"strings"
	"time"

	"devscout/pkg/config"
	"devscout/pkg/httpclient"
	"devscout/pkg/logger"
	"devscout/pkg/scoring"

	"github.com/microcosm-cc/bluemonday"
)

// stripPolicy removes every tag and keeps the text content
var stripPolicy = bluemonday.StrictPolicy()

// Base carries what every adapter needs: the shared HTTP client, the scan
// filters, a logger and a clock.
type Base struct {
	Client *httpclient.Client
	Scan   config.ScanConfig
	Logger logger.Logger
	// Now is the clock used for age filtering and scoring. Tests pin it.
	Now func() time.Time
}

// NewBase creates a Base using the wall clock
func NewBase(client *httpclient.Client, scan config.ScanConfig, log logger.Logger) Base {
	if log == nil {
		log = logger.GetLogger()
	}
	return Base{Client: client, Scan: scan, Logger: log, Now: time.Now}
}

func (b Base) now() time.Time {
	if b.Now == nil {
		return time.Now()
	}
	return b.Now()
}

// fresh applies the post age window
func (b Base) fresh(created, now time.Time) bool {
	return scoring.WithinWindow(created, now, b.Scan.PostMaxAge)
}

// excerpt truncates plain text to the configured excerpt length
func (b Base) excerpt(s string) string {
	return truncate(s, b.Scan.ExcerptLength)
}

// htmlExcerpt strips markup, then truncates
func (b Base) htmlExcerpt(s string) string {
	return b.excerpt(stripHTML(s))
}

func (b Base) relevance(title string, comments int, created, now time.Time, matched []string) float64 {
	return scoring.Relevance(scoring.RelevanceInput{
		Title:           title,
		CommentCount:    comments,
		CreatedAt:       created,
		MatchedKeywords: matched,
	}, now)
}

func (b Base) skipItem(source, id string, err error) {
	b.Logger.WithError(err).WarnWithFields("Skipping item", map[string]interface{}{
		"source": source,
		"item":   id,
	})
}

// truncate cuts s to at most n runes. n <= 0 disables truncation.
func truncate(s string, n int) string {
	if n <= 0 {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

func stripHTML(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(stripPolicy.Sanitize(s)))
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func unixSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / 1e9
}

// flexID accepts an id encoded either as a JSON string or a JSON number
type flexID string

func (f *flexID) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexID(s)
		return nil
	}
	if string(data) == "null" {
		*f = ""
		return nil
	}
	*f = flexID(data)
	return nil
}

// flexTime accepts RFC 3339 strings as well as Unix timestamps in seconds or
// milliseconds
type flexTime struct {
	time.Time
}

func (f *flexTime) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			return nil
		}
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return err
		}
		f.Time = t
		return nil
	}
	n, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return err
	}
	// anything past year 33658 in seconds is really milliseconds
	if n > 1e12 {
		n /= 1000
	}
	whole := int64(n)
	f.Time = time.Unix(whole, int64((n-float64(whole))*1e9))
	return nil
}
