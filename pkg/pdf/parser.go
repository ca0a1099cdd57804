package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ledongthuc/pdf"
)

// ErrSourceNotFound reports that the document URL no longer resolves.
var ErrSourceNotFound = errors.New("document source not found")

// ParsedDocument is the plain-text view of a binary document plus the
// metadata the ingestion pipeline attaches to embedding records.
type ParsedDocument struct {
	Text     string
	NumPages int
	Title    string
	Author   string
	Subject  string
}

var httpClient = &http.Client{Timeout: 60 * time.Second}

// Parse extracts plain text and metadata from a PDF held in memory.
func Parse(data []byte) (*ParsedDocument, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}

	var buf bytes.Buffer
	b, err := reader.GetPlainText()
	if err != nil {
		return nil, fmt.Errorf("extract pdf text: %w", err)
	}
	if _, err := buf.ReadFrom(b); err != nil {
		return nil, fmt.Errorf("read pdf text: %w", err)
	}

	parsed := &ParsedDocument{
		Text:     buf.String(),
		NumPages: reader.NumPage(),
	}

	if trailer := reader.Trailer(); !trailer.IsNull() {
		if info := trailer.Key("Info"); !info.IsNull() {
			parsed.Title = info.Key("Title").Text()
			parsed.Author = info.Key("Author").Text()
			parsed.Subject = info.Key("Subject").Text()
		}
	}

	return parsed, nil
}

// ParseFromURL downloads a PDF and extracts its text.
func ParseFromURL(url string) (*ParsedDocument, error) {
	res, err := httpClient.Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetch pdf: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound || res.StatusCode == http.StatusGone {
		return nil, ErrSourceNotFound
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch pdf: status %d", res.StatusCode)
	}

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read pdf body: %w", err)
	}

	return Parse(data)
}
