// Package prediction turns the loosely typed /predict payload into a
// canonical Prediction.
package prediction

import (
	"math"

	"github.com/tidwall/gjson"

	"hoax-detector/client/internal/apperr"
)

// MsgMalformed is the user-facing message for payloads missing mandatory fields.
const MsgMalformed = "Respons API tidak sesuai format yang diharapkan."

// DefaultRiskLevel is used when the payload carries no usable risk level.
const DefaultRiskLevel = "unknown"

// Prediction is the canonical classification result.
type Prediction struct {
	Label string
	// Score is finite and within [0,1].
	Score float64
	// Probabilities holds every numeric entry of the payload's probabilities
	// object, or nil when the object is absent.
	Probabilities      map[string]float64
	HoaxProbability    *float64
	NotHoaxProbability *float64
	RiskLevel          string
	RiskExplanation    string
}

// Field names a Prediction slot filled by resolution rules.
type Field int

const (
	FieldHoaxProbability Field = iota + 1
	FieldNotHoaxProbability
)

func (f Field) String() string {
	switch f {
	case FieldHoaxProbability:
		return "hoax_probability"
	case FieldNotHoaxProbability:
		return "not_hoax_probability"
	default:
		return "unknown"
	}
}

// Rule maps an ordered list of payload key paths onto a target field. The
// first path holding a number wins.
type Rule struct {
	Target Field
	Paths  []string
}

// Rules lists the accepted spellings per field, highest priority first.
var Rules = []Rule{
	{Target: FieldHoaxProbability, Paths: []string{"hoax_probability", "probabilities.hoax", "probabilities.Hoax"}},
	{Target: FieldNotHoaxProbability, Paths: []string{"probabilities.not_hoax", "probabilities.not hoax"}},
}

// Normalize validates the raw payload and fills the optional fields using
// Rules. It fails with a KindMalformedResponse error when the payload is not a
// JSON object, label is not a string, or score is not a number in [0,1].
func Normalize(raw []byte) (Prediction, error) {
	if !gjson.ValidBytes(raw) {
		return Prediction{}, apperr.MalformedResponse(MsgMalformed, nil)
	}
	doc := gjson.ParseBytes(raw)
	if !doc.IsObject() {
		return Prediction{}, apperr.MalformedResponse(MsgMalformed, nil)
	}

	label := doc.Get("label")
	if label.Type != gjson.String {
		return Prediction{}, apperr.MalformedResponse(MsgMalformed, nil)
	}
	score := doc.Get("score")
	if score.Type != gjson.Number {
		return Prediction{}, apperr.MalformedResponse(MsgMalformed, nil)
	}
	value := score.Float()
	if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 || value > 1 {
		return Prediction{}, apperr.MalformedResponse(MsgMalformed, nil)
	}

	p := Prediction{
		Label:           label.String(),
		Score:           value,
		Probabilities:   probabilities(doc.Get("probabilities")),
		RiskLevel:       truthyString(doc.Get("risk_level"), DefaultRiskLevel),
		RiskExplanation: truthyString(doc.Get("risk_explanation"), ""),
	}
	for _, rule := range Rules {
		v, ok := resolve(doc, rule.Paths)
		if !ok {
			continue
		}
		switch rule.Target {
		case FieldHoaxProbability:
			p.HoaxProbability = &v
		case FieldNotHoaxProbability:
			p.NotHoaxProbability = &v
		}
	}
	return p, nil
}

func resolve(doc gjson.Result, paths []string) (float64, bool) {
	for _, path := range paths {
		if r := doc.Get(path); r.Type == gjson.Number {
			return r.Float(), true
		}
	}
	return 0, false
}

func probabilities(r gjson.Result) map[string]float64 {
	if !r.IsObject() {
		return nil
	}
	out := make(map[string]float64)
	r.ForEach(func(key, value gjson.Result) bool {
		if value.Type == gjson.Number {
			out[key.String()] = value.Float()
		}
		return true
	})
	return out
}

// truthyString returns the string value unless it is missing, empty, or not
// a truthy JSON value; numbers and booleans are rendered as text.
func truthyString(r gjson.Result, fallback string) string {
	switch r.Type {
	case gjson.String:
		if s := r.String(); s != "" {
			return s
		}
	case gjson.Number:
		if r.Float() != 0 {
			return r.Raw
		}
	case gjson.True:
		return r.Raw
	case gjson.JSON:
		return r.Raw
	}
	return fallback
}
