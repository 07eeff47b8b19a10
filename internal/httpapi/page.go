package httpapi

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/Caseyio/federal-bid-prediction/internal/form"
	"github.com/Caseyio/federal-bid-prediction/pkg/types"
)

//go:embed templates/index.html
var templateFS embed.FS

var indexTmpl = template.Must(template.ParseFS(templateFS, "templates/index.html"))

const (
	pageTitle    = "Federal Bid Prediction Tool"
	pageSubtitle = "Estimate winning bid amounts for Civilian Federal Health IT contracts"
	pageFooter   = "Built by Casey Ortiz | Powered by Go"
)

type pageData struct {
	Title    string
	Subtitle string
	Footer   string
	Options  types.OptionsResponse

	Agency   string
	NAICS    string
	SetAside string
	Bidders  int

	Result *types.PredictResponse
	Error  string
}

type pageHandler struct {
	svc Service
}

func newPageHandler(svc Service) *pageHandler { return &pageHandler{svc: svc} }

func (h *pageHandler) data(in form.InputRecord) pageData {
	return pageData{
		Title:    pageTitle,
		Subtitle: pageSubtitle,
		Footer:   pageFooter,
		Options:  h.svc.Options(),
		Agency:   in.Agency,
		NAICS:    in.NAICS,
		SetAside: in.SetAside,
		Bidders:  in.Bidders,
	}
}

// show renders the form with the default selection and no estimate.
func (h *pageHandler) show(w http.ResponseWriter, r *http.Request) {
	render(w, http.StatusOK, h.data(form.DefaultRecord()))
}

// submit handles the predict button: the selection is echoed back with
// either an estimate or the reason it was refused.
func (h *pageHandler) submit(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	lvl := requestLogLevel(r)
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		reject(r, "form")
		d := h.data(form.DefaultRecord())
		d.Error = "could not read the submitted form"
		render(w, http.StatusBadRequest, d)
		return
	}

	in := form.InputRecord{
		Agency:   r.PostForm.Get("agency"),
		NAICS:    r.PostForm.Get("naics"),
		SetAside: r.PostForm.Get("set_aside"),
		Bidders:  form.DefaultBidders,
	}
	d := h.data(in)
	n, err := form.ParseBidders(r.PostForm.Get("num_bidders"))
	if err != nil {
		recordResult(r, err)
		d.Error = err.Error()
		render(w, http.StatusBadRequest, d)
		logOutcome(r, lvl, "page", http.StatusBadRequest, start, err)
		return
	}
	d.Bidders = n

	resp, err := predict(r, h.svc, types.PredictRequest{Agency: in.Agency, NAICS: in.NAICS, SetAside: in.SetAside, Bidders: &n})
	recordResult(r, err)
	if err != nil {
		status := statusFor(err)
		d.Error = err.Error()
		render(w, status, d)
		logOutcome(r, lvl, "page", status, start, err)
		return
	}
	d.Result = &resp
	render(w, http.StatusOK, d)
	logOutcome(r, lvl, "page", http.StatusOK, start, nil)
}

func render(w http.ResponseWriter, status int, d pageData) {
	var buf bytes.Buffer
	if err := indexTmpl.Execute(&buf, d); err != nil {
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
