// file: internal/sources/bnf.go
// version: 1.1.0
// guid: a9e3c5f1-8d27-4b64-9c0e-3f6a1d8b5e27

package sources

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/lmorel/bibsearch/internal/isbn"
)

// BnFClient queries the Bibliothèque nationale de France through its
// public SRU endpoint. Responses are Intermarc records wrapped in the
// SRU searchRetrieve envelope.
type BnFClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewBnFClient creates a new BnF SRU client.
func NewBnFClient() *BnFClient {
	baseURL := os.Getenv("BIBSEARCH_BNF_URL")
	if baseURL == "" {
		baseURL = "https://catalogue.bnf.fr/api/SRU"
	}
	return NewBnFClientWithBaseURL(baseURL)
}

// NewBnFClientWithBaseURL creates a client with a custom base URL (for testing).
func NewBnFClientWithBaseURL(baseURL string) *BnFClient {
	return &BnFClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// Name returns the stable identifier for this source.
func (c *BnFClient) Name() string {
	return NameBnF
}

// SRU envelope. Struct tags match local names only, the decoder accepts
// the srw/mxc namespace prefixes the endpoint actually emits.
type sruResponse struct {
	XMLName         xml.Name    `xml:"searchRetrieveResponse"`
	NumberOfRecords int         `xml:"numberOfRecords"`
	Records         []sruRecord `xml:"records>record"`
}

type sruRecord struct {
	Data sruRecordData `xml:"recordData"`
}

type sruRecordData struct {
	Record marcRecord `xml:"record"`
}

type marcRecord struct {
	Datafields []marcDatafield `xml:"datafield"`
}

type marcDatafield struct {
	Tag       string         `xml:"tag,attr"`
	Subfields []marcSubfield `xml:"subfield"`
}

type marcSubfield struct {
	Code  string `xml:"code,attr"`
	Value string `xml:",chardata"`
}

// FetchByISBN queries bib.isbn_any, which matches both ISBN-10 and
// ISBN-13 forms of the same publication.
func (c *BnFClient) FetchByISBN(ctx context.Context, isbnNumber string) (*Record, error) {
	n := isbn.Normalize(isbnNumber)
	query := fmt.Sprintf(`(bib.isbn_any all "%s")`, n)
	recs, err := c.search(ctx, query, 1)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("bnf: isbn %s: %w", n, ErrNotFound)
	}
	return &recs[0], nil
}

// FetchByTitleAuthor queries bib.title, narrowed by bib.author when given.
func (c *BnFClient) FetchByTitleAuthor(ctx context.Context, title, author string) ([]Record, error) {
	query := fmt.Sprintf(`(bib.title all "%s")`, cqlEscape(title))
	if author != "" {
		query += fmt.Sprintf(` and (bib.author all "%s")`, cqlEscape(author))
	}
	recs, err := c.search(ctx, query, 10)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("bnf: title %q: %w", title, ErrNotFound)
	}
	return recs, nil
}

func (c *BnFClient) search(ctx context.Context, cqlQuery string, maxRecords int) ([]Record, error) {
	params := url.Values{}
	params.Set("version", "1.2")
	params.Set("operation", "searchRetrieve")
	params.Set("query", cqlQuery)
	params.Set("recordSchema", "intermarcXchange")
	params.Set("maximumRecords", strconv.Itoa(maxRecords))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("bnf: build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("bnf: %w: %v", ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bnf: status %d: %w", resp.StatusCode, ErrSourceUnavailable)
	}

	var sr sruResponse
	if err := xml.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("bnf: decode: %w", ErrMalformed)
	}

	results := make([]Record, 0, len(sr.Records))
	for _, r := range sr.Records {
		rec := recordFromIntermarc(r.Data.Record)
		if rec.Title == "" {
			continue
		}
		results = append(results, rec)
	}
	return results, nil
}

// recordFromIntermarc maps the Intermarc zones the catalog uses for
// printed books: 245 title, 100/700 authors, 020 ISBN, 260 imprint.
func recordFromIntermarc(m marcRecord) Record {
	rec := Record{Source: NameBnF}
	rec.Title = m.subfield("245", "a")
	rec.Subtitle = m.subfield("245", "e")
	if rec.Subtitle == "" {
		rec.Subtitle = m.subfield("245", "b")
	}

	seen := map[string]bool{}
	for _, a := range append(m.subfields("100", "a"), m.subfields("700", "a")...) {
		a = strings.TrimSpace(a)
		if a == "" || seen[a] {
			continue
		}
		seen[a] = true
		rec.Authors = append(rec.Authors, a)
	}

	rawISBN := m.subfield("020", "a")
	if rawISBN == "" {
		rawISBN = m.subfield("021", "a")
	}
	rec.ISBN = isbn.Normalize(rawISBN)

	// Older notices use zone 260, RDA ones use 264.
	rec.Publisher = strings.Trim(m.subfield("260", "c"), " ,;:")
	if rec.Publisher == "" {
		rec.Publisher = strings.Trim(m.subfield("264", "b"), " ,;:")
	}
	rec.Year = extractYear(m.subfield("260", "d"))
	if rec.Year == "" {
		rec.Year = extractYear(m.subfield("264", "c"))
	}
	return rec
}

func (m marcRecord) subfield(tag, code string) string {
	for _, df := range m.Datafields {
		if df.Tag != tag {
			continue
		}
		for _, sf := range df.Subfields {
			if sf.Code == code {
				return strings.TrimSpace(sf.Value)
			}
		}
	}
	return ""
}

func (m marcRecord) subfields(tag, code string) []string {
	var out []string
	for _, df := range m.Datafields {
		if df.Tag != tag {
			continue
		}
		for _, sf := range df.Subfields {
			if sf.Code == code {
				out = append(out, sf.Value)
			}
		}
	}
	return out
}

// cqlEscape strips the quote characters that would break out of a CQL
// quoted term.
func cqlEscape(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '"' {
			return ' '
		}
		return r
	}, s)
}
