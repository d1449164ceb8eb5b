package mockapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fixedClassifier struct {
	dists []Distribution
}

func (f fixedClassifier) Classify([]string) []Distribution { return f.dists }

func newTestServer(t *testing.T, cfg Config) (*Server, *gin.Engine) {
	t.Helper()
	srv, err := NewServer(cfg)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	return srv, srv.Router()
}

func serve(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHealthAndInfo(t *testing.T) {
	_, r := newTestServer(t, Config{})

	rec := serve(r, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != `{"status":"ok"}` {
		t.Fatalf("health: %d %s", rec.Code, rec.Body.String())
	}
	if rec.Header().Get(requestIDHeader) == "" {
		t.Fatal("expected generated request id")
	}

	rec = serve(r, http.MethodGet, "/", "")
	var info InfoResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &info); err != nil {
		t.Fatalf("decode info: %v", err)
	}
	if info.ModelID != DefaultModelID {
		t.Fatalf("expected model id %s got %s", DefaultModelID, info.ModelID)
	}
	if info.RiskThresholds[RiskHigh] != "P(hoaks) > 0.98" {
		t.Fatalf("unexpected thresholds %v", info.RiskThresholds)
	}
	if info.Labels[1] != LabelHoax || info.Logging.SampleRate != DefaultSampleRate {
		t.Fatalf("unexpected info %+v", info)
	}
}

func TestRequestIDEchoedAndCORS(t *testing.T) {
	_, r := newTestServer(t, Config{})
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	req.Header.Set("Origin", "https://hoax.example")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if got := rec.Header().Get(requestIDHeader); got != "abc-123" {
		t.Fatalf("expected echoed request id got %q", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got == "" {
		t.Fatal("expected CORS header")
	}
}

func TestPredict(t *testing.T) {
	_, r := newTestServer(t, Config{})

	tests := []struct {
		name   string
		text   string
		label  string
		risk   string
		caveat bool
	}{
		{"hoax", "Vaksin mengandung chip, sebarkan sebelum dihapus sekarang juga!", LabelHoax, RiskHigh, false},
		{"news", longText, LabelNotHoax, RiskLow, false},
		{"short", "heboh", LabelNotHoax, RiskMedium, true},
		{"empty", "   ", LabelNotHoax, RiskMedium, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			body, _ := json.Marshal(map[string]string{"text": tc.text})
			rec := serve(r, http.MethodPost, "/predict", string(body))
			if rec.Code != http.StatusOK {
				t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
			}
			var resp PredictResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Label != tc.label || resp.RiskLevel != tc.risk {
				t.Fatalf("expected %s/%s got %s/%s", tc.label, tc.risk, resp.Label, resp.RiskLevel)
			}
			if resp.Score != resp.Probabilities[resp.Label] {
				t.Fatalf("score %v does not match label probability %v", resp.Score, resp.Probabilities)
			}
			if resp.HoaxProbability != resp.Probabilities[LabelHoax] {
				t.Fatalf("hoax probability %v mismatch %v", resp.HoaxProbability, resp.Probabilities)
			}
			if has := strings.Contains(resp.RiskExplanation, "sangat pendek"); has != tc.caveat {
				t.Fatalf("caveat=%v want %v", has, tc.caveat)
			}
		})
	}
}

func TestPredictRejectsBadBodies(t *testing.T) {
	_, r := newTestServer(t, Config{})
	for _, body := range []string{"", "{not json", `{}`, `{"text": 5}`} {
		rec := serve(r, http.MethodPost, "/predict", body)
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("body %q: expected 422 got %d", body, rec.Code)
		}
		var payload map[string]any
		if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if detail, ok := payload["detail"].(string); !ok || detail == "" {
			t.Fatalf("expected detail, got %v", payload)
		}
	}
}

func TestPredictBatch(t *testing.T) {
	_, r := newTestServer(t, Config{})

	rec := serve(r, http.MethodPost, "/predict-batch", `{"texts":["Vaksin mengandung chip, viralkan!", "`+longText+`"]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var resp BatchPredictResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Results) != 2 || resp.Results[0].Label != LabelHoax || resp.Results[1].Label != LabelNotHoax {
		t.Fatalf("unexpected results %+v", resp.Results)
	}

	rec = serve(r, http.MethodPost, "/predict-batch", `{"texts":[]}`)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"results":[]`) {
		t.Fatalf("empty batch: %d %s", rec.Code, rec.Body.String())
	}

	rec = serve(r, http.MethodPost, "/predict-batch", `{}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("missing texts: expected 422 got %d", rec.Code)
	}
}

func TestPredictWithCustomClassifier(t *testing.T) {
	_, r := newTestServer(t, Config{Classifier: fixedClassifier{dists: []Distribution{{
		{Label: "LABEL_0", Probability: 0.1},
		{Label: "hoax_news", Probability: 0.9},
	}}}})

	rec := serve(r, http.MethodPost, "/predict", `{"text":"apa saja yang cukup panjang di sini"}`)
	var resp PredictResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Label != "hoax_news" || resp.HoaxProbability != 0.9 || resp.RiskLevel != RiskMedium {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestPredictWithNoClassifierOutput(t *testing.T) {
	_, r := newTestServer(t, Config{Classifier: fixedClassifier{}})
	rec := serve(r, http.MethodPost, "/predict", `{"text":"x"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", rec.Code)
	}
}

func TestNewServerRejectsInvertedThresholds(t *testing.T) {
	if _, err := NewServer(Config{Thresholds: Thresholds{High: 0.5, Medium: 0.7}}); err == nil {
		t.Fatal("expected threshold error")
	}
}

func TestSampledLogging(t *testing.T) {
	hook := logtest.NewGlobal()
	defer logrus.StandardLogger().ReplaceHooks(make(logrus.LevelHooks))

	srv, r := newTestServer(t, Config{EnableLogging: true, SampleRate: 0.2})

	srv.sample = func() float64 { return 0.5 }
	hook.Reset()
	serve(r, http.MethodPost, "/predict", `{"text":"heboh"}`)
	if countSampled(hook) != 0 {
		t.Fatal("expected sample to be skipped")
	}

	srv.sample = func() float64 { return 0.1 }
	serve(r, http.MethodPost, "/predict", `{"text":"heboh"}`)
	if countSampled(hook) != 1 {
		t.Fatalf("expected one sampled entry, got %d", countSampled(hook))
	}
	entry := hook.LastEntry()
	if entry.Data["route"] != "/predict" || entry.Data["word_count"] != 1 {
		t.Fatalf("unexpected fields %v", entry.Data)
	}
	if cues, ok := entry.Data["cues"].([]string); !ok || !reflect.DeepEqual(cues, []string{"heboh"}) {
		t.Fatalf("expected lexicon cues in log, got %v", entry.Data["cues"])
	}
}

func TestSampledLoggingWithoutCues(t *testing.T) {
	hook := logtest.NewGlobal()
	defer logrus.StandardLogger().ReplaceHooks(make(logrus.LevelHooks))

	srv, r := newTestServer(t, Config{EnableLogging: true, SampleRate: 1, Classifier: fixedClassifier{dists: []Distribution{{
		{Label: LabelNotHoax, Probability: 0.7},
		{Label: LabelHoax, Probability: 0.3},
	}}}})
	srv.sample = func() float64 { return 0 }
	serve(r, http.MethodPost, "/predict", `{"text":"heboh"}`)

	entry := hook.LastEntry()
	if entry == nil || entry.Message != "hoax prediction sampled" {
		t.Fatalf("expected sampled entry, got %v", entry)
	}
	if _, ok := entry.Data["cues"]; ok {
		t.Fatal("classifiers without cue matching should not log cues")
	}
}

func countSampled(hook *logtest.Hook) int {
	n := 0
	for _, e := range hook.AllEntries() {
		if e.Message == "hoax prediction sampled" {
			n++
		}
	}
	return n
}
