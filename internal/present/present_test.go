package present

import (
	"strings"
	"testing"

	"hoax-detector/client/internal/prediction"
)

func TestClassifyLabel(t *testing.T) {
	tests := []struct {
		label    string
		expected Verdict
	}{
		{"hoax", VerdictHoax},
		{"HOAX", VerdictHoax},
		{"  Hoax ", VerdictHoax},
		{"1", VerdictHoax},
		{"likely_hoax", VerdictHoax},
		{"not_hoax", VerdictHoax},
		{"NON_HOAX", VerdictHoax},
		{"not hoax", VerdictHoax},
		{"0", VerdictNotHoax},
		{" 0 ", VerdictNotHoax},
		{"valid", VerdictUnrecognized},
		{"", VerdictUnrecognized},
	}
	for _, tc := range tests {
		t.Run(tc.label, func(t *testing.T) {
			if got := ClassifyLabel(tc.label); got != tc.expected {
				t.Fatalf("label %q: expected %s got %s", tc.label, tc.expected, got)
			}
		})
	}
}

func TestDecisionSentence(t *testing.T) {
	tests := []struct {
		name     string
		label    string
		expected string
	}{
		{"hoax any case", "HOAX", "Prediksi model: Hoaks"},
		{"zero", "0", "Prediksi model: Bukan hoaks"},
		{"not_hoax contains hoax", "not_hoax", "Prediksi model: Hoaks"},
		{"unrecognized echoes raw", " Valid News ", "Prediksi model:  Valid News "},
		{"blank placeholder", "   ", "Prediksi model: Tidak diketahui"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Present(prediction.Prediction{Label: tc.label, Score: 0.5, RiskLevel: "unknown"}, "teks")
			if got.Decision != tc.expected {
				t.Fatalf("expected %q got %q", tc.expected, got.Decision)
			}
		})
	}
}

func TestBadgeFor(t *testing.T) {
	tests := []struct {
		level string
		class BadgeClass
		text  string
	}{
		{"high", BadgeHigh, "Hoaks – risiko tinggi"},
		{"High", BadgeHigh, "Hoaks – risiko tinggi"},
		{" HIGH ", BadgeHigh, "Hoaks – risiko tinggi"},
		{"medium", BadgeMedium, "Perlu dicek (curiga)"},
		{"low", BadgeLow, "Bukan hoaks (cenderung valid)"},
		{"unknown", BadgeUnknown, "Level risiko tidak diketahui"},
		{"critical", BadgeUnknown, "Level risiko tidak diketahui"},
		{"", BadgeUnknown, "Level risiko tidak diketahui"},
	}
	for _, tc := range tests {
		t.Run(tc.level, func(t *testing.T) {
			badge := BadgeFor(tc.level)
			if badge.Class != tc.class || badge.Text != tc.text {
				t.Fatalf("level %q: got %+v", tc.level, badge)
			}
		})
	}
}

func TestScoreSummary(t *testing.T) {
	hoax, notHoax := 0.9123, 0.0877
	tests := []struct {
		name     string
		p        prediction.Prediction
		expected string
	}{
		{"confidence fallback", prediction.Prediction{Score: 0.87654}, "Confidence: 87.65%"},
		{"hoax only", prediction.Prediction{Score: 0.9, HoaxProbability: &hoax}, "P(hoaks): 91.23%"},
		{"not hoax only", prediction.Prediction{Score: 0.9, NotHoaxProbability: &notHoax}, "P(bukan hoaks): 8.77%"},
		{"both in order", prediction.Prediction{Score: 0.9, HoaxProbability: &hoax, NotHoaxProbability: &notHoax}, "P(hoaks): 91.23% • P(bukan hoaks): 8.77%"},
		{"zero score", prediction.Prediction{Score: 0}, "Confidence: 0.00%"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ScoreSummary(tc.p); got != tc.expected {
				t.Fatalf("expected %q got %q", tc.expected, got)
			}
		})
	}
}

func TestShareText(t *testing.T) {
	raw := `{"label":"hoax","score":0.99,"hoax_probability":0.99,"probabilities":{"hoax":0.99,"not_hoax":0.01},"risk_level":"high","risk_explanation":"Model sangat yakin teks ini hoaks."}`
	p, err := prediction.Normalize([]byte(raw))
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	state := Present(p, "Minum air garam menyembuhkan covid")

	expected := "Hasil Deteksi Hoaks\n\n" +
		"Prediksi model: Hoaks\n" +
		"Hoaks – risiko tinggi\n" +
		"P(hoaks): 99.00% • P(bukan hoaks): 1.00%\n\n" +
		"Penjelasan: Model sangat yakin teks ini hoaks.\n\n" +
		"Teks berita:\nMinum air garam menyembuhkan covid"
	if state.ShareText != expected {
		t.Fatalf("unexpected share text:\n%s", state.ShareText)
	}
	if state.Verdict != VerdictHoax || state.Badge.Class != BadgeHigh {
		t.Fatalf("unexpected state %+v", state)
	}
}

func TestShareTextPlaceholderExplanation(t *testing.T) {
	state := Present(prediction.Prediction{Label: "0", Score: 0.8, RiskLevel: "low"}, "Pemerintah meresmikan jembatan baru.")
	if !strings.Contains(state.ShareText, "Penjelasan: -\n") {
		t.Fatalf("expected dash placeholder, got:\n%s", state.ShareText)
	}
	if !strings.HasSuffix(state.ShareText, "Teks berita:\nPemerintah meresmikan jembatan baru.") {
		t.Fatalf("original text must close the summary, got:\n%s", state.ShareText)
	}
}

func TestPresentAlwaysPicksOneBadge(t *testing.T) {
	valid := map[BadgeClass]bool{BadgeHigh: true, BadgeMedium: true, BadgeLow: true, BadgeUnknown: true}
	for _, payload := range []string{
		`{"label":"hoax","score":0.1}`,
		`{"label":"","score":1}`,
		`{"label":"x","score":0.5,"risk_level":"HIGH"}`,
		`{"label":"x","score":0.5,"risk_level":42}`,
		`{"label":"x","score":0.5,"risk_level":"medium "}`,
	} {
		p, err := prediction.Normalize([]byte(payload))
		if err != nil {
			t.Fatalf("normalize %s: %v", payload, err)
		}
		if badge := Present(p, "t").Badge; !valid[badge.Class] {
			t.Fatalf("payload %s produced unexpected badge %+v", payload, badge)
		}
	}
}
