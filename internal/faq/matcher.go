// Package faq maps free-text chat input to canned answers by keyword.
package faq

import (
	"fmt"
	"strings"
)

// Rule routes input containing any of Keywords to the answer stored under Key.
type Rule struct {
	Keywords []string
	Key      string
}

// Answer is one canned response.
type Answer struct {
	Key      string
	Response string
}

// Reply is the outcome of a match. Key is empty when the fallback was used.
type Reply struct {
	Key     string `json:"key,omitempty"`
	Message string `json:"message"`
	Matched bool   `json:"matched"`
}

// Matcher is immutable after construction and safe for concurrent use.
type Matcher struct {
	rules    []Rule
	answers  []Answer
	byKey    map[string]string
	fallback string
}

// New builds a matcher. Rules are checked in order, so earlier rules win.
func New(rules []Rule, answers []Answer, fallback string) (*Matcher, error) {
	if strings.TrimSpace(fallback) == "" {
		return nil, fmt.Errorf("faq: fallback response required")
	}
	m := &Matcher{
		byKey:    make(map[string]string, len(answers)),
		fallback: fallback,
	}
	for _, a := range answers {
		key := normalizeKey(a.Key)
		if key == "" || strings.TrimSpace(a.Response) == "" {
			return nil, fmt.Errorf("faq: answer %q needs a key and a response", a.Key)
		}
		if _, dup := m.byKey[key]; dup {
			return nil, fmt.Errorf("faq: duplicate answer key %q", key)
		}
		m.byKey[key] = a.Response
		m.answers = append(m.answers, Answer{Key: key, Response: a.Response})
	}
	for _, r := range rules {
		key := normalizeKey(r.Key)
		if _, ok := m.byKey[key]; !ok {
			return nil, fmt.Errorf("faq: rule points at unknown answer %q", r.Key)
		}
		rule := Rule{Key: key}
		for _, kw := range r.Keywords {
			if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
				rule.Keywords = append(rule.Keywords, kw)
			}
		}
		if len(rule.Keywords) == 0 {
			return nil, fmt.Errorf("faq: rule for %q has no keywords", r.Key)
		}
		m.rules = append(m.rules, rule)
	}
	return m, nil
}

// Match resolves input in three passes: priority rules, then answer keys, then the fallback.
func (m *Matcher) Match(input string) Reply {
	text := strings.ToLower(strings.TrimSpace(input))
	if text == "" {
		return Reply{Message: m.fallback}
	}
	for _, r := range m.rules {
		for _, kw := range r.Keywords {
			if strings.Contains(text, kw) {
				return Reply{Key: r.Key, Message: m.byKey[r.Key], Matched: true}
			}
		}
	}
	for _, a := range m.answers {
		if strings.Contains(text, strings.ReplaceAll(a.Key, "_", " ")) {
			return Reply{Key: a.Key, Message: a.Response, Matched: true}
		}
	}
	return Reply{Message: m.fallback}
}

// Respond is Match reduced to the reply text.
func (m *Matcher) Respond(input string) string {
	return m.Match(input).Message
}

func normalizeKey(k string) string {
	return strings.ToLower(strings.TrimSpace(k))
}
