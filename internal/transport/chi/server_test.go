package chi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/mentorhub/mentorsearch/internal/domain"
	"github.com/mentorhub/mentorsearch/internal/domain/mentor"
	"github.com/mentorhub/mentorsearch/internal/domain/query"
	"github.com/mentorhub/mentorsearch/internal/domain/search/predicate"
	healthuc "github.com/mentorhub/mentorsearch/internal/usecase/health"
	searchuc "github.com/mentorhub/mentorsearch/internal/usecase/search"
)

// --- Mocks ---

type stubTranslator struct {
	candidate query.Candidate
	err       error
}

func (s *stubTranslator) Translate(_ context.Context, _ string) (query.Candidate, error) {
	return s.candidate, s.err
}

type stubRepo struct {
	records []mentor.Record
	err     error
}

func (s *stubRepo) Search(_ context.Context, _ predicate.Set, _ int) ([]mentor.Record, error) {
	return s.records, s.err
}

type stubMentorStore struct {
	upserted *mentor.Record
	err      error

	list     []mentor.Record
	listErr  error
	count    int
	countErr error
}

func (s *stubMentorStore) Upsert(_ context.Context, rec mentor.Record) error {
	s.upserted = &rec
	return s.err
}

func (s *stubMentorStore) List(_ context.Context) ([]mentor.Record, error) {
	return s.list, s.listErr
}

func (s *stubMentorStore) Count(_ context.Context) (int, error) {
	return s.count, s.countErr
}

type stubPinger struct {
	err error
}

func (s *stubPinger) Ping(_ context.Context) error { return s.err }

func newTestServer(t *testing.T, translator *stubTranslator, repo *stubRepo, writer *stubMentorStore, pinger *stubPinger) *httptest.Server {
	t.Helper()
	if translator == nil {
		translator = &stubTranslator{candidate: query.Candidate{ProfessionArea: "math"}}
	}
	if repo == nil {
		repo = &stubRepo{}
	}
	if writer == nil {
		writer = &stubMentorStore{}
	}
	if pinger == nil {
		pinger = &stubPinger{}
	}

	searchSvc := searchuc.New(translator, repo)
	healthSvc := healthuc.New(pinger, nil)
	server := NewServer(searchSvc, writer, healthSvc, zap.NewNop())

	r := chi.NewRouter()
	server.Routes(r)

	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)
	return ts
}

func postSearch(t *testing.T, ts *httptest.Server, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(ts.URL+"/api/v1/search", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST /api/v1/search: %v", err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decodeError(t *testing.T, resp *http.Response) ErrorResponse {
	t.Helper()
	var er ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&er); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	return er
}

// --- Tests ---

func TestSearchMentors_OK(t *testing.T) {
	repo := &stubRepo{records: []mentor.Record{
		{ID: "m1", Name: "Ada", Profession: "Math"},
		{ID: "m2", Name: "Emmy", Profession: "Math"},
	}}
	ts := newTestServer(t, nil, repo, nil, nil)

	resp := postSearch(t, ts, `{"query": "find me a math mentor"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var sr SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if sr.Total != 2 || len(sr.Mentors) != 2 {
		t.Fatalf("response = %+v", sr)
	}
	if sr.Mentors[0].ID != "m1" {
		t.Errorf("first mentor = %+v", sr.Mentors[0])
	}
}

func TestSearchMentors_EmptyResultIsOK(t *testing.T) {
	ts := newTestServer(t, nil, &stubRepo{}, nil, nil)

	resp := postSearch(t, ts, `{"query": "math mentor"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var sr SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if sr.Mentors == nil || len(sr.Mentors) != 0 {
		t.Errorf("mentors = %v, want empty array", sr.Mentors)
	}
}

func TestSearchMentors_BadBody(t *testing.T) {
	ts := newTestServer(t, nil, nil, nil, nil)

	resp := postSearch(t, ts, `{not json`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if er := decodeError(t, resp); er.Code != CodeBadRequest {
		t.Errorf("code = %q", er.Code)
	}
}

func TestSearchMentors_MissingQuery(t *testing.T) {
	ts := newTestServer(t, nil, nil, nil, nil)

	resp := postSearch(t, ts, `{}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestSearchMentors_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		translator *stubTranslator
		repo       *stubRepo
		wantStatus int
		wantCode   string
	}{
		{
			"no payload in completion",
			&stubTranslator{err: domain.ErrNoPayloadFound},
			nil,
			http.StatusUnprocessableEntity,
			CodeTranslationFailed,
		},
		{
			"malformed payload",
			&stubTranslator{err: domain.ErrMalformedPayload},
			nil,
			http.StatusUnprocessableEntity,
			CodeTranslationFailed,
		},
		{
			"completion provider down",
			&stubTranslator{err: domain.ErrCompletionFailure},
			nil,
			http.StatusBadGateway,
			CodeCompletionFailed,
		},
		{
			"missing profession area",
			&stubTranslator{candidate: query.Candidate{}},
			nil,
			http.StatusBadRequest,
			CodeValidationFailed,
		},
		{
			"invalid age range",
			&stubTranslator{candidate: invertedAgeCandidate()},
			nil,
			http.StatusBadRequest,
			CodeValidationFailed,
		},
		{
			"store unavailable",
			nil,
			&stubRepo{err: domain.ErrStoreUnavailable},
			http.StatusServiceUnavailable,
			CodeStoreUnavailable,
		},
		{
			"store rejected query",
			nil,
			&stubRepo{err: domain.ErrUnsupportedPredicates},
			http.StatusBadRequest,
			CodeUnsupportedQuery,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t, tt.translator, tt.repo, nil, nil)

			resp := postSearch(t, ts, `{"query": "math mentor"}`)
			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			if er := decodeError(t, resp); er.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", er.Code, tt.wantCode)
			}
		})
	}
}

func invertedAgeCandidate() query.Candidate {
	lo, hi := 50.0, 30.0
	c := query.Candidate{ProfessionArea: "math"}
	c.AgeRange.MinAge = &lo
	c.AgeRange.MaxAge = &hi
	return c
}

func TestSearchByPrompt_LegacyArray(t *testing.T) {
	repo := &stubRepo{records: []mentor.Record{{ID: "m1", Name: "Ada", Profession: "Math"}}}
	ts := newTestServer(t, nil, repo, nil, nil)

	resp, err := http.Get(ts.URL + "/search/math%20mentor%20in%20Paris")
	if err != nil {
		t.Fatalf("GET /search: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var records []mentor.Record
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(records) != 1 || records[0].ID != "m1" {
		t.Fatalf("records = %+v", records)
	}
}

func TestUpsertMentor_OK(t *testing.T) {
	writer := &stubMentorStore{}
	ts := newTestServer(t, nil, nil, writer, nil)

	rec := mentor.Record{ID: "m1", Name: "Ada", Profession: "Math", Rating: 4.5, AvailabilityCode: 2}
	body, _ := json.Marshal(rec)

	resp, err := http.Post(ts.URL+"/api/v1/mentors", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST /api/v1/mentors: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	if writer.upserted == nil || writer.upserted.ID != "m1" {
		t.Fatalf("upserted = %+v", writer.upserted)
	}
}

func TestUpsertMentor_Invalid(t *testing.T) {
	writer := &stubMentorStore{}
	ts := newTestServer(t, nil, nil, writer, nil)

	resp, err := http.Post(ts.URL+"/api/v1/mentors", "application/json",
		strings.NewReader(`{"id": "m1", "name": "Ada", "profession_area": "Math", "rating": 9}`))
	if err != nil {
		t.Fatalf("POST /api/v1/mentors: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if writer.upserted != nil {
		t.Error("invalid record should not reach the writer")
	}
}

func TestListMentors(t *testing.T) {
	store := &stubMentorStore{
		list: []mentor.Record{
			{ID: "m1", Name: "Ada", Profession: "Math"},
			{ID: "m2", Name: "Grace", Profession: "Programming"},
		},
		count: 2,
	}
	ts := newTestServer(t, nil, nil, store, nil)

	resp, err := http.Get(ts.URL + "/api/v1/mentors")
	if err != nil {
		t.Fatalf("GET /api/v1/mentors: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var sr SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(sr.Mentors) != 2 || sr.Total != 2 {
		t.Fatalf("mentors = %d, total = %d", len(sr.Mentors), sr.Total)
	}
	if sr.Mentors[1].Name != "Grace" {
		t.Errorf("name = %q", sr.Mentors[1].Name)
	}
}

func TestListMentors_Empty(t *testing.T) {
	ts := newTestServer(t, nil, nil, &stubMentorStore{}, nil)

	resp, err := http.Get(ts.URL + "/api/v1/mentors")
	if err != nil {
		t.Fatalf("GET /api/v1/mentors: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	body := new(bytes.Buffer)
	if _, err := body.ReadFrom(resp.Body); err != nil {
		t.Fatalf("read body: %v", err)
	}
	if !strings.Contains(body.String(), `"mentors":[]`) {
		t.Errorf("body = %s, want non-null empty array", body.String())
	}
}

func TestListMentors_StoreUnavailable(t *testing.T) {
	store := &stubMentorStore{listErr: domain.ErrStoreUnavailable}
	ts := newTestServer(t, nil, nil, store, nil)

	resp, err := http.Get(ts.URL + "/api/v1/mentors")
	if err != nil {
		t.Fatalf("GET /api/v1/mentors: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", resp.StatusCode)
	}
	if er := decodeError(t, resp); er.Code != CodeStoreUnavailable {
		t.Errorf("code = %q, want %q", er.Code, CodeStoreUnavailable)
	}
}

func TestHealthCheck(t *testing.T) {
	tests := []struct {
		name       string
		pinger     *stubPinger
		wantStatus int
	}{
		{"healthy", &stubPinger{}, http.StatusOK},
		{"database down", &stubPinger{err: context.DeadlineExceeded}, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t, nil, nil, nil, tt.pinger)

			resp, err := http.Get(ts.URL + "/healthz")
			if err != nil {
				t.Fatalf("GET /healthz: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}

			var payload map[string]any
			if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if _, ok := payload["version"]; !ok {
				t.Error("version missing from health payload")
			}
		})
	}
}
