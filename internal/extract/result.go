package extract

import (
	"encoding/json"
	"fmt"
)

// Kind is the document category: invoice or estimate.
type Kind int

const (
	KindInvoice Kind = iota
	KindEstimate
)

func (k Kind) String() string {
	if k == KindEstimate {
		return "estimate"
	}
	return "invoice"
}

func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k *Kind) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseKind(s)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseKind maps a wire string to a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "invoice":
		return KindInvoice, nil
	case "estimate":
		return KindEstimate, nil
	}
	return KindInvoice, fmt.Errorf("unknown document kind: %q", s)
}

// Locale is the detected language profile. French is the primary locale:
// classification ties resolve to it.
type Locale int

const (
	LocaleFR Locale = iota
	LocaleEN
)

func (l Locale) String() string {
	if l == LocaleEN {
		return "en"
	}
	return "fr"
}

func (l Locale) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

func (l *Locale) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseLocale(s)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// ParseLocale maps a wire string to a Locale.
func ParseLocale(s string) (Locale, error) {
	switch s {
	case "fr":
		return LocaleFR, nil
	case "en":
		return LocaleEN, nil
	}
	return LocaleFR, fmt.Errorf("unknown locale: %q", s)
}

// LineItem is one billable row recovered from the document.
type LineItem struct {
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"price"`
}

// Result is the complete output of one extraction run. Every field is
// populated; extraction misses leave the documented defaults (empty strings,
// empty items, zero total) rather than nulls.
type Result struct {
	Kind        Kind       `json:"mode"`
	Locale      Locale     `json:"language"`
	FromAddress string     `json:"from_address"`
	ToAddress   string     `json:"to_address"`
	Items       []LineItem `json:"items"`
	Total       float64    `json:"total"`
	Title       string     `json:"doc_title"`
	RawText     string     `json:"raw_text"`
}
