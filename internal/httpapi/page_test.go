package httpapi

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func submitForm(t *testing.T, h http.Handler, vals url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(vals.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestPageShowsDefaults(t *testing.T) {
	w := httptest.NewRecorder()
	NewMux(&mockService{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("content-type=%s", ct)
	}
	body := w.Body.String()
	for _, want := range []string{
		"Federal Bid Prediction Tool",
		"Estimate winning bid amounts for Civilian Federal Health IT contracts",
		`<option value="HHS" selected>HHS</option>`,
		`<option value="541511" selected>541511</option>`,
		`<option value="None" selected>None</option>`,
		`<option value="NIH">NIH</option>`,
		`min="1" max="10" step="1" value="3"`,
		"Predict Bid Range",
		"Built by Casey Ortiz",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("page missing %q", want)
		}
	}
	if strings.Contains(body, "Estimated Winning Bid Amount") {
		t.Fatalf("estimate shown before the button was pressed")
	}
}

func TestPageSubmitShowsEstimate(t *testing.T) {
	w := submitForm(t, NewMux(&mockService{}), url.Values{
		"agency": {"VA"}, "naics": {"541519"}, "set_aside": {"SDVOSB"}, "num_bidders": {"7"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	body := w.Body.String()
	for _, want := range []string{
		"Estimated Winning Bid Amount: $1,234,567.89",
		"Note: This is a placeholder prediction. Model integration coming soon.",
		`<option value="VA" selected>VA</option>`,
		`<option value="SDVOSB" selected>SDVOSB</option>`,
		`value="7"`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("page missing %q", want)
		}
	}
}

func TestPageSubmitRejectsOutOfRange(t *testing.T) {
	h := NewMux(&mockService{})
	for _, n := range []string{"0", "11", "three"} {
		w := submitForm(t, h, url.Values{
			"agency": {"HHS"}, "naics": {"541511"}, "set_aside": {"None"}, "num_bidders": {n},
		})
		if w.Code != http.StatusBadRequest {
			t.Fatalf("bidders=%s: status=%d", n, w.Code)
		}
		if strings.Contains(w.Body.String(), "Estimated Winning Bid Amount") {
			t.Fatalf("bidders=%s: estimate shown for invalid input", n)
		}
		if !strings.Contains(w.Body.String(), "num_bidders") {
			t.Fatalf("bidders=%s: error not shown", n)
		}
	}
}

func TestPageSubmitRejectsUnknownAgency(t *testing.T) {
	w := submitForm(t, NewMux(&mockService{}), url.Values{
		"agency": {"<script>"}, "naics": {"541511"}, "set_aside": {"None"},
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", w.Code)
	}
	if strings.Contains(w.Body.String(), "<script>") {
		t.Fatalf("submitted value rendered unescaped")
	}
}
