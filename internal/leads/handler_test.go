package leads

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/blckops/agency-site/internal/pagination"
	"github.com/blckops/agency-site/pkg/logging"
)

type stubSubmitter struct {
	got *SubmitLeadRequest
	err error
}

func (s *stubSubmitter) Submit(_ context.Context, req *SubmitLeadRequest) (*Receipt, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return &Receipt{Lead: Lead{ID: "ld_test"}, Sink: "sheets"}, nil
}

func TestSubmitLead_Success(t *testing.T) {
	submitter := &stubSubmitter{}
	handler := NewHandler(submitter, nil, logging.Discard())

	body, _ := json.Marshal(map[string]any{
		"name":    gofakeit.Name(),
		"email":   gofakeit.Email(),
		"phone":   gofakeit.Phone(),
		"budget":  "$5k",
		"message": gofakeit.Sentence(8),
	})
	req := httptest.NewRequest(http.MethodPost, "/api/lead", bytes.NewReader(body))
	req.Header.Set("User-Agent", "lead-test/1.0")
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	w := httptest.NewRecorder()

	handler.SubmitLead(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if strings.TrimSpace(w.Body.String()) != `{"ok":true}` {
		t.Fatalf("response must not reveal the sink, got %s", w.Body.String())
	}
	if submitter.got.SourceIP != "203.0.113.7, 10.0.0.1" {
		t.Errorf("unexpected source ip %q", submitter.got.SourceIP)
	}
	if submitter.got.UserAgent != "lead-test/1.0" {
		t.Errorf("unexpected user agent %q", submitter.got.UserAgent)
	}
}

func TestSubmitLead_RemoteAddrFallback(t *testing.T) {
	submitter := &stubSubmitter{}
	handler := NewHandler(submitter, nil, logging.Discard())

	req := httptest.NewRequest(http.MethodPost, "/api/lead", strings.NewReader(`{"name":"A","email":"a@b.co"}`))
	req.RemoteAddr = "192.0.2.10:52311"
	handler.SubmitLead(httptest.NewRecorder(), req)

	if submitter.got.SourceIP != "192.0.2.10" {
		t.Fatalf("expected peer host, got %q", submitter.got.SourceIP)
	}
}

func TestSubmitLead_NumericFieldsAccepted(t *testing.T) {
	submitter := &stubSubmitter{}
	handler := NewHandler(submitter, nil, logging.Discard())

	body := `{"name":"Ada","email":"ada@example.com","phone":5550100,"budget":10000}`
	w := httptest.NewRecorder()
	handler.SubmitLead(w, httptest.NewRequest(http.MethodPost, "/api/lead", strings.NewReader(body)))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if submitter.got.Phone.Trimmed() != "5550100" || submitter.got.Budget.Trimmed() != "10000" {
		t.Fatalf("unexpected fields %+v", submitter.got)
	}
}

func TestTextDecodesFalsyAsEmpty(t *testing.T) {
	cases := map[string]string{
		`false`:  "",
		`0`:      "",
		`null`:   "",
		`true`:   "true",
		`42`:     "42",
		`"  x "`: "  x ",
	}
	for in, want := range cases {
		var got Text
		if err := json.Unmarshal([]byte(in), &got); err != nil {
			t.Fatalf("%s: %v", in, err)
		}
		if string(got) != want {
			t.Errorf("%s: expected %q, got %q", in, want, got)
		}
	}
}

func TestSubmitLead_MissingFields(t *testing.T) {
	handler := NewHandler(&stubSubmitter{}, nil, logging.Discard())

	for _, body := range []string{
		`{"name":"   ","email":"a@b.co"}`,
		`{"name":"A"}`,
		`{}`,
		`{"name":false,"email":0}`,
		`{"name":"A","email":null}`,
		`{"name":0.0,"email":"a@b.co"}`,
	} {
		w := httptest.NewRecorder()
		handler.SubmitLead(w, httptest.NewRequest(http.MethodPost, "/api/lead", strings.NewReader(body)))

		if w.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected status %d, got %d", body, http.StatusBadRequest, w.Code)
		}
		var resp map[string]any
		_ = json.NewDecoder(w.Body).Decode(&resp)
		if resp["ok"] != false || resp["error"] != "Missing name/email" {
			t.Fatalf("body %s: unexpected response %v", body, resp)
		}
	}
}

func TestSubmitLead_InvalidJSON(t *testing.T) {
	handler := NewHandler(&stubSubmitter{}, nil, logging.Discard())

	for _, body := range []string{
		"{",
		`{"name":{"first":"A"},"email":"a@b.co"}`,
		`{"name":"a","email":"b"} garbage`,
	} {
		w := httptest.NewRecorder()
		handler.SubmitLead(w, httptest.NewRequest(http.MethodPost, "/api/lead", strings.NewReader(body)))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected status %d, got %d", body, http.StatusBadRequest, w.Code)
		}
	}
}

func TestSubmitLead_NotDelivered(t *testing.T) {
	handler := NewHandler(&stubSubmitter{err: errors.Join(ErrNotDelivered, errors.New("disk full"))}, nil, logging.Discard())

	w := httptest.NewRecorder()
	handler.SubmitLead(w, httptest.NewRequest(http.MethodPost, "/api/lead", strings.NewReader(`{"name":"A","email":"a@b.co"}`)))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
	}
	if strings.TrimSpace(w.Body.String()) != `{"ok":false}` {
		t.Fatalf("unexpected body %s", w.Body.String())
	}
}

func TestListLeads_Paginates(t *testing.T) {
	local := newLocalSink(t)
	for i := 0; i < 25; i++ {
		lead := Lead{ID: gofakeit.UUID(), Name: gofakeit.Name(), Email: gofakeit.Email()}
		if _, err := local.Deliver(context.Background(), lead); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	handler := NewHandler(&stubSubmitter{}, local, logging.Discard())

	w := httptest.NewRecorder()
	handler.ListLeads(w, httptest.NewRequest(http.MethodGet, "/api/leads?page=2", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	var page pagination.Page[Lead]
	if err := json.NewDecoder(w.Body).Decode(&page); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if page.Page != 2 || page.Limit != DefaultPageSize || page.Total != 25 || len(page.Items) != 5 {
		t.Fatalf("unexpected page %+v", page)
	}
}

type failingLister struct{}

func (failingLister) List(context.Context, pagination.Params) (pagination.Page[Lead], error) {
	return pagination.Page[Lead]{}, errors.New("corrupt")
}

func TestListLeads_Error(t *testing.T) {
	handler := NewHandler(&stubSubmitter{}, failingLister{}, logging.Discard())

	w := httptest.NewRecorder()
	handler.ListLeads(w, httptest.NewRequest(http.MethodGet, "/api/leads", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
	}
}
