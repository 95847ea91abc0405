// file: internal/testutil/mock_sources.go
// version: 1.1.0
// guid: c3d4e5f6-a7b8-9012-cdef-345678901abc

package testutil

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

// MockSourceServer creates an httptest.Server that mimics a catalog API.
// The responses map keys are matched against the request URL (raw and
// percent-decoded) using Contains; the content type is derived from the
// body.
func MockSourceServer(t *testing.T, responses map[string]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.URL.String()
		decoded, err := url.QueryUnescape(raw)
		if err != nil {
			decoded = raw
		}
		for pattern, body := range responses {
			if strings.Contains(raw, pattern) || strings.Contains(decoded, pattern) {
				if strings.HasPrefix(strings.TrimSpace(body), "<") {
					w.Header().Set("Content-Type", "application/xml")
				} else {
					w.Header().Set("Content-Type", "application/json")
				}
				_, _ = w.Write([]byte(body))
				return
			}
		}
		http.NotFound(w, r)
	}))
}

// BnFPetitPrinceResponse is an SRU searchRetrieve envelope holding one
// Intermarc record, trimmed to the zones the adapter reads.
const BnFPetitPrinceResponse = `<?xml version="1.0" encoding="UTF-8"?>
<srw:searchRetrieveResponse xmlns:srw="http://www.loc.gov/zing/srw/" xmlns:mxc="info:lc/xmlns/marcxchange-v2">
  <srw:version>1.2</srw:version>
  <srw:numberOfRecords>1</srw:numberOfRecords>
  <srw:records>
    <srw:record>
      <srw:recordSchema>intermarcXchange</srw:recordSchema>
      <srw:recordData>
        <mxc:record>
          <mxc:datafield tag="020" ind1=" " ind2=" ">
            <mxc:subfield code="a">9782070612758 (br.)</mxc:subfield>
          </mxc:datafield>
          <mxc:datafield tag="100" ind1=" " ind2=" ">
            <mxc:subfield code="a">Saint-Exupéry, Antoine de</mxc:subfield>
          </mxc:datafield>
          <mxc:datafield tag="245" ind1=" " ind2=" ">
            <mxc:subfield code="a">Le petit prince</mxc:subfield>
            <mxc:subfield code="e">avec des aquarelles de l'auteur</mxc:subfield>
          </mxc:datafield>
          <mxc:datafield tag="260" ind1=" " ind2=" ">
            <mxc:subfield code="a">Paris</mxc:subfield>
            <mxc:subfield code="c">Gallimard</mxc:subfield>
            <mxc:subfield code="d">DL 2007</mxc:subfield>
          </mxc:datafield>
        </mxc:record>
      </srw:recordData>
    </srw:record>
  </srw:records>
</srw:searchRetrieveResponse>`

// BnFEmptyResponse is an SRU envelope with no records.
const BnFEmptyResponse = `<?xml version="1.0" encoding="UTF-8"?>
<srw:searchRetrieveResponse xmlns:srw="http://www.loc.gov/zing/srw/">
  <srw:version>1.2</srw:version>
  <srw:numberOfRecords>0</srw:numberOfRecords>
  <srw:records/>
</srw:searchRetrieveResponse>`

// GoogleBooksHobbitResponse is a volumes answer with a single item.
const GoogleBooksHobbitResponse = `{
	"totalItems": 1,
	"items": [{
		"volumeInfo": {
			"title": "The Hobbit",
			"subtitle": "Or There and Back Again",
			"authors": ["J.R.R. Tolkien"],
			"publisher": "Houghton Mifflin",
			"publishedDate": "1937-09-21",
			"description": "Bilbo Baggins is a hobbit who enjoys a comfortable life.",
			"industryIdentifiers": [
				{"type": "ISBN_10", "identifier": "0618260307"},
				{"type": "ISBN_13", "identifier": "9780618260300"}
			],
			"imageLinks": {"thumbnail": "http://books.google.com/books/content?id=hobbit"},
			"language": "en"
		}
	}]
}`

// GoogleBooksEmptyResponse returns no volumes.
const GoogleBooksEmptyResponse = `{"totalItems":0}`

// OpenLibraryEditionResponse is an edition document as served by
// /isbn/{isbn}.json, with the author behind a key reference.
const OpenLibraryEditionResponse = `{
	"title": "The Hobbit",
	"publishers": ["Houghton Mifflin"],
	"publish_date": "1937",
	"isbn_13": ["9780618260300"],
	"isbn_10": ["0618260307"],
	"covers": [6549871],
	"description": {"type": "/type/text", "value": "Bilbo Baggins is a hobbit."},
	"authors": [{"key": "/authors/OL26320A"}],
	"languages": [{"key": "/languages/eng"}]
}`

// OpenLibraryAuthorResponse resolves the author key above.
const OpenLibraryAuthorResponse = `{"name": "J.R.R. Tolkien"}`

// OpenLibraryHobbitSearchResponse is a standard search answer.
const OpenLibraryHobbitSearchResponse = `{
	"numFound": 1,
	"start": 0,
	"docs": [{
		"title": "The Hobbit",
		"author_name": ["J.R.R. Tolkien"],
		"first_publish_year": 1937,
		"publisher": ["Houghton Mifflin"],
		"language": ["eng"],
		"isbn": ["0618260307", "9780618260300"],
		"cover_i": 6549871
	}]
}`

// OpenLibraryEmptySearchResponse returns no docs.
const OpenLibraryEmptySearchResponse = `{"numFound":0,"start":0,"docs":[]}`
