package homework

import "fmt"

// MessageFormat renders a status-change notification: homework name, verdict.
const MessageFormat = `Changed status of review "%s". %s`

// Extraction is the outcome of Extract for a well-formed record.
// Message is empty when the status did not change.
type Extraction struct {
	Name    string
	Status  Status
	Message string
}

// Changed reports whether a notification should be considered.
func (e Extraction) Changed() bool { return e.Message != "" }

// Extractor derives notification text from a homework record.
type Extractor struct {
	Verdicts VerdictSet
}

func NewExtractor(v VerdictSet) Extractor {
	if v == nil {
		v = verdictsRU
	}
	return Extractor{Verdicts: v}
}

// Extract validates one record and compares its status with prior.
//
// When the status equals prior the returned Extraction has no Message; the
// caller keeps Extraction.Status as the next prior either way.
func (x Extractor) Extract(item any, prior Status) (Extraction, error) {
	m, ok := item.(map[string]any)
	if !ok {
		return Extraction{}, &ExtractionError{Kind: MalformedItem, Value: typeName(item)}
	}

	rawName, ok := m[FieldName]
	if !ok || rawName == nil {
		return Extraction{}, &ExtractionError{Kind: MissingField, Field: FieldName}
	}
	rawStatus, ok := m[FieldStatus]
	if !ok || rawStatus == nil {
		return Extraction{}, &ExtractionError{Kind: MissingField, Field: FieldStatus}
	}

	code, _ := rawStatus.(string)
	status := Status(code)
	verdict, known := x.Verdicts.Lookup(status)
	if code == "" || !known {
		return Extraction{}, &ExtractionError{Kind: UnknownStatus, Value: fmt.Sprint(rawStatus)}
	}

	out := Extraction{Name: fmt.Sprint(rawName), Status: status}
	if status == prior {
		return out, nil
	}
	out.Message = fmt.Sprintf(MessageFormat, out.Name, verdict)
	return out, nil
}
