// Package present derives the user-facing strings for a prediction.
package present

import (
	"fmt"
	"strings"

	"hoax-detector/client/internal/prediction"
)

// ShareTitle heads the shareable summary and names the native share sheet.
const ShareTitle = "Hasil Deteksi Hoaks"

const (
	decisionPrefix   = "Prediksi model: "
	labelPlaceholder = "Tidak diketahui"
	summarySeparator = " • "
)

// Verdict is the classification derived from the raw label.
type Verdict int

const (
	VerdictUnrecognized Verdict = iota
	VerdictHoax
	VerdictNotHoax
)

func (v Verdict) String() string {
	switch v {
	case VerdictHoax:
		return "hoax"
	case VerdictNotHoax:
		return "not_hoax"
	default:
		return "unrecognized"
	}
}

// BadgeClass is the style tag for a risk badge.
type BadgeClass string

const (
	BadgeHigh    BadgeClass = "badge badge--high"
	BadgeMedium  BadgeClass = "badge badge--medium"
	BadgeLow     BadgeClass = "badge badge--low"
	BadgeUnknown BadgeClass = "badge"
)

// Badge pairs the display text with its style tag.
type Badge struct {
	Text  string
	Class BadgeClass
}

var (
	highBadge    = Badge{Text: "Hoaks – risiko tinggi", Class: BadgeHigh}
	mediumBadge  = Badge{Text: "Perlu dicek (curiga)", Class: BadgeMedium}
	lowBadge     = Badge{Text: "Bukan hoaks (cenderung valid)", Class: BadgeLow}
	unknownBadge = Badge{Text: "Level risiko tidak diketahui", Class: BadgeUnknown}
)

// RenderState is everything a display surface needs for one prediction.
type RenderState struct {
	Verdict         Verdict
	Badge           Badge
	Decision        string
	ScoreSummary    string
	RiskExplanation string
	OriginalText    string
	ShareText       string
}

// Present maps a prediction and the text that produced it to a RenderState.
func Present(p prediction.Prediction, originalText string) RenderState {
	verdict := ClassifyLabel(p.Label)
	state := RenderState{
		Verdict:         verdict,
		Badge:           BadgeFor(p.RiskLevel),
		Decision:        decision(verdict, p.Label),
		ScoreSummary:    ScoreSummary(p),
		RiskExplanation: p.RiskExplanation,
		OriginalText:    originalText,
	}
	state.ShareText = shareText(state)
	return state
}

// ClassifyLabel canonicalizes the label and decides the verdict. The hoax
// test runs first, so any label containing "hoax" (not_hoax included) is a hoax.
func ClassifyLabel(label string) Verdict {
	normalized := strings.ToLower(strings.TrimSpace(label))
	if normalized == "hoax" || normalized == "1" || strings.Contains(normalized, "hoax") {
		return VerdictHoax
	}
	switch normalized {
	case "not_hoax", "non_hoax", "0":
		return VerdictNotHoax
	}
	return VerdictUnrecognized
}

// BadgeFor maps a risk level onto one of the four badges.
func BadgeFor(riskLevel string) Badge {
	switch strings.ToLower(strings.TrimSpace(riskLevel)) {
	case "high":
		return highBadge
	case "medium":
		return mediumBadge
	case "low":
		return lowBadge
	default:
		return unknownBadge
	}
}

// ScoreSummary renders the available class probabilities, or the overall
// confidence when neither is present.
func ScoreSummary(p prediction.Prediction) string {
	var parts []string
	if p.HoaxProbability != nil {
		parts = append(parts, "P(hoaks): "+percent(*p.HoaxProbability))
	}
	if p.NotHoaxProbability != nil {
		parts = append(parts, "P(bukan hoaks): "+percent(*p.NotHoaxProbability))
	}
	if len(parts) == 0 {
		return "Confidence: " + percent(p.Score)
	}
	return strings.Join(parts, summarySeparator)
}

func decision(v Verdict, label string) string {
	switch v {
	case VerdictHoax:
		return decisionPrefix + "Hoaks"
	case VerdictNotHoax:
		return decisionPrefix + "Bukan hoaks"
	}
	if strings.TrimSpace(label) == "" {
		return decisionPrefix + labelPlaceholder
	}
	return decisionPrefix + label
}

func percent(v float64) string {
	return fmt.Sprintf("%.2f%%", v*100)
}

func shareText(s RenderState) string {
	explanation := s.RiskExplanation
	if explanation == "" {
		explanation = "-"
	}
	var b strings.Builder
	b.WriteString(ShareTitle + "\n\n")
	b.WriteString(s.Decision + "\n")
	b.WriteString(s.Badge.Text + "\n")
	b.WriteString(s.ScoreSummary + "\n\n")
	fmt.Fprintf(&b, "Penjelasan: %s\n\n", explanation)
	b.WriteString("Teks berita:\n")
	b.WriteString(s.OriginalText)
	return b.String()
}
