package mockapi

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// Class labels emitted by the reference classifier, in output order.
const (
	LabelNotHoax = "not_hoax"
	LabelHoax    = "hoax"
)

//go:embed hoax_terms.json
var defaultTerms []byte

// ClassProbability is one entry of a classifier distribution.
type ClassProbability struct {
	Label       string
	Probability float64
}

// Distribution is an ordered set of class probabilities summing to one.
type Distribution []ClassProbability

// Map converts the distribution into the wire form.
func (d Distribution) Map() map[string]float64 {
	out := make(map[string]float64, len(d))
	for _, c := range d {
		out[c.Label] = c.Probability
	}
	return out
}

// Top returns the most probable class; ties keep the earlier class.
func (d Distribution) Top() ClassProbability {
	var best ClassProbability
	for i, c := range d {
		if i == 0 || c.Probability > best.Probability {
			best = c
		}
	}
	return best
}

// Classifier scores texts.
type Classifier interface {
	Classify(texts []string) []Distribution
}

// LexiconClassifier scores texts by weighted cue phrases. Positive weights
// push towards hoax, negative weights towards not hoax.
type LexiconClassifier struct {
	terms map[int][]string
	bias  float64
	slope float64
}

// NewLexiconClassifier loads cue terms from path, or the embedded list when
// path is empty. The file maps weights (as strings) to phrase lists.
func NewLexiconClassifier(path string) (*LexiconClassifier, error) {
	data := defaultTerms
	if strings.TrimSpace(path) != "" {
		raw, err := os.ReadFile(filepath.Clean(path))
		if err != nil {
			return nil, fmt.Errorf("read hoax terms: %w", err)
		}
		data = raw
	}
	var raw map[string][]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("unmarshal hoax terms: %w", err)
	}
	terms := make(map[int][]string)
	for k, v := range raw {
		weight, err := strconv.Atoi(strings.TrimSpace(k))
		if err != nil || weight == 0 {
			continue
		}
		var list []string
		for _, term := range v {
			if term = normalizeText(term); term != "" {
				list = append(list, term)
			}
		}
		if len(list) > 0 {
			terms[weight] = list
		}
	}
	if len(terms) == 0 {
		return nil, errors.New("hoax terms missing")
	}
	return &LexiconClassifier{terms: terms, bias: 1.5, slope: 0.8}, nil
}

// Classify returns a not_hoax/hoax distribution per text.
func (l *LexiconClassifier) Classify(texts []string) []Distribution {
	out := make([]Distribution, 0, len(texts))
	for _, text := range texts {
		p := l.hoaxProbability(text)
		out = append(out, Distribution{
			{Label: LabelNotHoax, Probability: 1 - p},
			{Label: LabelHoax, Probability: p},
		})
	}
	return out
}

// Matches lists the cue phrases found in text, sorted.
func (l *LexiconClassifier) Matches(text string) []string {
	normalized := " " + normalizeText(text) + " "
	var hits []string
	for _, list := range l.terms {
		for _, term := range list {
			if strings.Contains(normalized, " "+term+" ") {
				hits = append(hits, term)
			}
		}
	}
	return dedupe(hits)
}

func (l *LexiconClassifier) hoaxProbability(text string) float64 {
	normalized := " " + normalizeText(text) + " "
	score := 0
	for weight, list := range l.terms {
		for _, term := range list {
			if strings.Contains(normalized, " "+term+" ") {
				score += weight
			}
		}
	}
	return 1 / (1 + math.Exp(-(l.slope*float64(score) - l.bias)))
}

// normalizeText lowercases and reduces text to letters, digits and single spaces.
func normalizeText(in string) string {
	var b strings.Builder
	b.Grow(len(in))
	space := true
	for _, r := range strings.ToLower(in) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			space = false
			continue
		}
		if !space {
			b.WriteByte(' ')
			space = true
		}
	}
	return strings.TrimSpace(b.String())
}

func dedupe(in []string) []string {
	if len(in) == 0 {
		return in
	}
	sort.Strings(in)
	out := make([]string, 0, len(in))
	var prev string
	for i, item := range in {
		if i > 0 && item == prev {
			continue
		}
		out = append(out, item)
		prev = item
	}
	return out
}
