package httpapi

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func requests(route, method, status, outcome string) float64 {
	return testutil.ToFloat64(requestsTotal.WithLabelValues(route, method, status, outcome))
}

func rejections(reason string) float64 {
	return testutil.ToFloat64(rejectionsTotal.WithLabelValues(reason))
}

func TestMetricsOutcomes(t *testing.T) {
	h := NewMux(&mockService{})
	badMedia := func() {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/predict", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "text/plain")
		h.ServeHTTP(httptest.NewRecorder(), req)
	}

	cases := []struct {
		name    string
		do      func()
		route   string
		method  string
		status  string
		outcome string
		reason  string
	}{
		{"api estimate", func() { postJSON(t, h, `{"agency":"VA","naics":"541511","set_aside":"None"}`) },
			"/api/v1/predict", "POST", "200", outcomeEstimate, ""},
		{"api field", func() { postJSON(t, h, `{"agency":"DoD","naics":"541511","set_aside":"None"}`) },
			"/api/v1/predict", "POST", "400", outcomeRejected, "agency"},
		{"api body", func() { postJSON(t, h, `{"agency":`) },
			"/api/v1/predict", "POST", "400", outcomeRejected, "body"},
		{"api media type", badMedia,
			"/api/v1/predict", "POST", "415", outcomeRejected, "media_type"},
		{"page estimate", func() { submitForm(t, h, url.Values{"agency": {"HHS"}, "naics": {"541512"}, "set_aside": {"WOSB"}, "num_bidders": {"2"}}) },
			"/", "POST", "200", outcomeEstimate, ""},
		{"page bidders", func() { submitForm(t, h, url.Values{"agency": {"HHS"}, "naics": {"541512"}, "set_aside": {"WOSB"}, "num_bidders": {"many"}}) },
			"/", "POST", "400", outcomeRejected, "num_bidders"},
		{"page show", func() { h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil)) },
			"/", "GET", "200", outcomeNone, ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			before := requests(c.route, c.method, c.status, c.outcome)
			var rejBefore float64
			if c.reason != "" {
				rejBefore = rejections(c.reason)
			}
			c.do()
			if got := requests(c.route, c.method, c.status, c.outcome); got != before+1 {
				t.Fatalf("requests_total{%s %s %s %s}=%v want %v", c.route, c.method, c.status, c.outcome, got, before+1)
			}
			if c.reason != "" {
				if got := rejections(c.reason); got != rejBefore+1 {
					t.Fatalf("rejections_total{%s}=%v want %v", c.reason, got, rejBefore+1)
				}
			}
		})
	}
}

func TestMetricsFailedEstimate(t *testing.T) {
	h := NewMux(&mockService{predictErr: errors.New("model unavailable")})
	before := requests("/api/v1/predict", "POST", "500", outcomeFailed)
	postJSON(t, h, `{"agency":"VA","naics":"541511","set_aside":"None"}`)
	if got := requests("/api/v1/predict", "POST", "500", outcomeFailed); got != before+1 {
		t.Fatalf("failed estimate counted %v, want %v", got, before+1)
	}
}

func TestMetricsExposeRoutePatterns(t *testing.T) {
	h := NewMux(&mockService{})
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	postJSON(t, h, `{"agency":"CMS","naics":"541519","set_aside":"8(a)"}`)
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/no/such/page-91", nil))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("/metrics status=%d", w.Code)
	}
	var counters []string
	for _, line := range strings.Split(w.Body.String(), "\n") {
		if strings.HasPrefix(line, "bidpredict_http_requests_total{") {
			counters = append(counters, line)
		}
	}
	body := []byte(strings.Join(counters, "\n"))
	for _, want := range []string{`route="/"`, `route="/api/v1/predict"`, `outcome="estimate"`, `outcome="none"`, `route="unmatched"`} {
		if !bytes.Contains(body, []byte(want)) {
			t.Fatalf("bidpredict_http_requests_total missing %s:\n%s", want, body)
		}
	}
	if bytes.Contains(body, []byte("page-91")) {
		t.Fatalf("raw path leaked into route label:\n%s", body)
	}
}

func TestSetOutcomeOutsideMiddleware(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/api/v1/predict", nil)
	setOutcome(r, outcomeEstimate)
	before := rejections("unspecified")
	reject(r, "")
	if got := rejections("unspecified"); got != before+1 {
		t.Fatalf("empty reason counted %v, want %v", got, before+1)
	}
}
