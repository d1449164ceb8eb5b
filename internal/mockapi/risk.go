package mockapi

import (
	"fmt"
	"sort"
	"strings"
)

// Risk levels reported by the backend.
const (
	RiskHigh   = "high"
	RiskMedium = "medium"
	RiskLow    = "low"
)

// Thresholds split the hoax probability into risk levels.
type Thresholds struct {
	High   float64
	Medium float64
}

// DefaultThresholds mirror the production service.
var DefaultThresholds = Thresholds{High: 0.98, Medium: 0.60}

// minReliableWords is the word count under which a text never rates low.
const minReliableWords = 5

// RiskAssessment is the risk outcome for one text.
type RiskAssessment struct {
	HoaxProbability float64
	Level           string
	Explanation     string
}

// AnalyzeRisk grades the hoax probability of a distribution. Very short
// texts are raised to at least medium and carry a stability caveat.
func AnalyzeRisk(probs map[string]float64, originalText string, th Thresholds) RiskAssessment {
	p := ExtractHoaxProbability(probs)
	pct := fmt.Sprintf("%.2f%%", p*100)

	var level, explanation string
	switch {
	case p > th.High:
		level = RiskHigh
		explanation = fmt.Sprintf("Model sangat yakin teks ini hoaks (P(hoaks) ≈ %s). "+
			"Sebaiknya jangan dipercaya sebelum ada klarifikasi resmi atau sumber tepercaya.", pct)
	case p > th.Medium:
		level = RiskMedium
		explanation = fmt.Sprintf("Model menilai teks ini berpotensi hoaks (P(hoaks) ≈ %s). "+
			"Disarankan untuk mengecek ulang ke sumber resmi sebelum menyebarkan.", pct)
	default:
		level = RiskLow
		explanation = fmt.Sprintf("Model menilai teks ini cenderung bukan hoaks (P(hoaks) ≈ %s). "+
			"Meski demikian, tetap gunakan literasi dan bandingkan dengan sumber lain.", pct)
	}

	if len(strings.Fields(originalText)) < minReliableWords {
		if level == RiskLow {
			level = RiskMedium
		}
		explanation += " Catatan: teks ini sangat pendek (< 5 kata), sehingga prediksi model " +
			"bisa kurang stabil. Gunakan hasil ini dengan ekstra hati-hati."
	}

	return RiskAssessment{HoaxProbability: p, Level: level, Explanation: explanation}
}

// ExtractHoaxProbability finds the hoax class in a distribution keyed by
// label. It prefers the exact "hoax" key, then any other key mentioning hoax
// that is not a not-hoax variant, then the complement class of a two-class
// map holding "not_hoax".
func ExtractHoaxProbability(probs map[string]float64) float64 {
	if v, ok := probs[LabelHoax]; ok {
		return v
	}
	keys := make([]string, 0, len(probs))
	for k := range probs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		lower := strings.ToLower(k)
		if strings.Contains(lower, "hoax") && !isNotHoaxKey(lower) {
			return probs[k]
		}
	}
	if _, ok := probs[LabelNotHoax]; ok && len(probs) == 2 {
		for _, k := range keys {
			if k != LabelNotHoax {
				return probs[k]
			}
		}
	}
	return 0
}

func isNotHoaxKey(lower string) bool {
	for _, prefix := range []string{"not_hoax", "not hoax", "non_hoax", "non hoax"} {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}
