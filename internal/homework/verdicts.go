package homework

import (
	"fmt"
	"sort"
	"strings"
)

// Status is a review status code reported by the Practicum API.
// The zero value means "no status seen yet".
type Status string

const (
	StatusApproved  Status = "approved"
	StatusReviewing Status = "reviewing"
	StatusRejected  Status = "rejected"
)

// VerdictSet maps known status codes to the human-readable verdict text.
// Treat values as immutable; lookups never mutate.
type VerdictSet map[Status]string

var verdictsRU = VerdictSet{
	StatusApproved:  "Работа проверена: ревьюеру всё понравилось. Ура!",
	StatusReviewing: "Работа взята на проверку ревьюером.",
	StatusRejected:  "Работа проверена: у ревьюера есть замечания.",
}

var verdictsEN = VerdictSet{
	StatusApproved:  "The work has been reviewed: the reviewer liked everything. Hooray!",
	StatusReviewing: "The work has been taken for review.",
	StatusRejected:  "The work has been reviewed: the reviewer has comments.",
}

// DefaultLocale is used when no locale is configured.
const DefaultLocale = "ru"

// Verdicts returns the verdict table for a locale ("ru" or "en").
func Verdicts(locale string) (VerdictSet, error) {
	switch strings.ToLower(strings.TrimSpace(locale)) {
	case "", "ru":
		return verdictsRU, nil
	case "en":
		return verdictsEN, nil
	default:
		return nil, fmt.Errorf("unknown verdict locale %q (use ru or en)", locale)
	}
}

// Lookup returns the verdict text for s.
func (v VerdictSet) Lookup(s Status) (string, bool) {
	text, ok := v[s]
	return text, ok
}

// Codes returns the known status codes in stable order.
func (v VerdictSet) Codes() []Status {
	out := make([]Status, 0, len(v))
	for s := range v {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// FailurePrefix is the lead-in of operator diagnostics, per locale.
func FailurePrefix(locale string) string {
	if strings.EqualFold(strings.TrimSpace(locale), "en") {
		return "Program failure"
	}
	return "Сбой в работе программы"
}
