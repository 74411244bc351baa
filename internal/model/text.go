package model

// Language identifies one of the two languages the site is served in.
// Every user-facing string in the system exists in both; the active
// language is supplied explicitly by the caller rather than read from
// any global state.
type Language string

const (
	LangTR Language = "tr" // Turkish
	LangEN Language = "en" // English
)

// LocalizedText holds both language variants of a text field.  Variants
// are always stored and transported together so that downstream
// consumers (generated tickets, calendar exports) can render in their
// own language regardless of which language the order was placed in.
type LocalizedText struct {
	TR string `json:"tr"`
	EN string `json:"en"`
}

// In returns the variant for the requested language, falling back to
// the other variant when the requested one is empty.
func (t LocalizedText) In(lang Language) string {
	if lang == LangEN {
		if t.EN != "" {
			return t.EN
		}
		return t.TR
	}
	if t.TR != "" {
		return t.TR
	}
	return t.EN
}

// Both renders the Turkish and English variants joined as "TR / EN".
// Generated documents use this form so a single artifact reads in both
// languages.  When the variants are identical (or one is empty) only
// one is returned.
func (t LocalizedText) Both() string {
	switch {
	case t.TR == "":
		return t.EN
	case t.EN == "" || t.TR == t.EN:
		return t.TR
	default:
		return t.TR + " / " + t.EN
	}
}
