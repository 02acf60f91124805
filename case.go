package u16str

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ToUpper returns a new buffer holding the upper-case mapping of s.
// Mapping is done on the UTF-8 form, so unpaired surrogates come back as
// U+FFFD.
func (s Str) ToUpper() *Buffer {
	return FromString(cases.Upper(language.Und).String(s.String()))
}

// ToLower returns a new buffer holding the lower-case mapping of s.
func (s Str) ToLower() *Buffer {
	return FromString(cases.Lower(language.Und).String(s.String()))
}

// ToUpperLang is ToUpper with language-specific rules, such as the
// Turkish dotted capital I.
func (s Str) ToUpperLang(tag language.Tag) *Buffer {
	return FromString(cases.Upper(tag).String(s.String()))
}

// ToLowerLang is ToLower with language-specific rules.
func (s Str) ToLowerLang(tag language.Tag) *Buffer {
	return FromString(cases.Lower(tag).String(s.String()))
}
