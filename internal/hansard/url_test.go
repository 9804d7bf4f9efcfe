package hansard

import (
	"errors"
	"strings"
	"testing"
)

func TestParseIDs(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		url       string
		wantPdfID string
		wantDocID string
		wantErr   error
	}{
		{
			name:      "permalink with pdfid and docid",
			url:       "https://www.parliament.nsw.gov.au/Hansard/Pages/HansardResult.aspx#/DateDisplay/HANSARD-1323879322-87037/HANSARD-1323879322-87031",
			wantPdfID: "HANSARD-1323879322-87037",
			wantDocID: "HANSARD-1323879322-87031",
		},
		{
			name:      "permalink with pdfid only",
			url:       "https://www.parliament.nsw.gov.au/Hansard/Pages/HansardResult.aspx#/DateDisplay/HANSARD-1323879322-87037",
			wantPdfID: "HANSARD-1323879322-87037",
		},
		{
			name:      "permalink with trailing slash",
			url:       "https://www.parliament.nsw.gov.au/x#/DateDisplay/HANSARD-1323879322-87037/",
			wantPdfID: "HANSARD-1323879322-87037",
		},
		{
			name:      "permalink with doubled slashes",
			url:       "https://www.parliament.nsw.gov.au/x#/DateDisplay//HANSARD-1323879322-87037//HANSARD-1323879322-87031",
			wantPdfID: "HANSARD-1323879322-87037",
			wantDocID: "HANSARD-1323879322-87031",
		},
		{
			name:      "bare share link without marker",
			url:       "https://www.parliament.nsw.gov.au/Hansard/HANSARD-1323879322-159901/view",
			wantPdfID: "HANSARD-1323879322-159901",
		},
		{
			name:      "fallback picks last hansard segment",
			url:       "https://host/HANSARD-1-1/HANSARD-2-2/page",
			wantPdfID: "HANSARD-2-2",
		},
		{
			name:      "marker empty falls back to segments",
			url:       "https://host/HANSARD-9-9/page#/DateDisplay/",
			wantPdfID: "HANSARD-9-9",
		},
		{
			name:    "no identifier anywhere",
			url:     "https://www.parliament.nsw.gov.au/Hansard/Pages/home.aspx",
			wantErr: ErrInvalidURL,
		},
		{
			name:    "empty url",
			url:     "",
			wantErr: ErrInvalidURL,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			pdfID, docID, err := ParseIDs(tc.url)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("ParseIDs(%q) error = %v, want %v", tc.url, err, tc.wantErr)
				}
				if !strings.Contains(err.Error(), tc.url) && tc.url != "" {
					t.Errorf("error %q does not name the offending url", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseIDs(%q) error = %v", tc.url, err)
			}
			if pdfID != tc.wantPdfID {
				t.Errorf("pdfid = %q, want %q", pdfID, tc.wantPdfID)
			}
			if docID != tc.wantDocID {
				t.Errorf("docid = %q, want %q", docID, tc.wantDocID)
			}
		})
	}
}

func TestExtractPdfID(t *testing.T) {
	t.Parallel()

	got, err := ExtractPdfID("https://host/x#/DateDisplay/HANSARD-1-2/HANSARD-1-3")
	if err != nil {
		t.Fatalf("ExtractPdfID() error = %v", err)
	}
	if got != "HANSARD-1-2" {
		t.Errorf("ExtractPdfID() = %q, want %q", got, "HANSARD-1-2")
	}

	if _, err := ExtractPdfID("https://host/nothing"); !errors.Is(err, ErrInvalidURL) {
		t.Errorf("expected ErrInvalidURL, got %v", err)
	}
}

// Fuzz test for ParseIDs.
func FuzzParseIDs(f *testing.F) {
	testcases := []string{
		"https://www.parliament.nsw.gov.au/x#/DateDisplay/HANSARD-1-2/HANSARD-1-3",
		"https://host/HANSARD-1-1",
		"#/DateDisplay/",
		"",
		"////",
	}
	for _, tc := range testcases {
		f.Add(tc)
	}
	f.Fuzz(func(t *testing.T, orig string) {
		pdfID, docID, err := ParseIDs(orig)
		if err != nil {
			if pdfID != "" || docID != "" {
				t.Errorf("ParseIDs(%q) returned ids alongside error", orig)
			}
			return
		}
		if pdfID == "" {
			t.Errorf("ParseIDs(%q) returned empty pdfid without error", orig)
		}
	})
}
