package model

import (
	"strings"

	"github.com/okrause/mediasync/pkg/errors"
)

// Language holds the display name and locale for a catalog language tag.
type Language struct {
	Name   string
	Locale string
}

// languageTable maps the catalog's language tags to locales. Some
// locales carry a regional suffix which ISO639 strips.
var languageTable = map[string]Language{
	"E":   {Name: "English", Locale: "en"},
	"S":   {Name: "Spanish", Locale: "es"},
	"F":   {Name: "French", Locale: "fr"},
	"X":   {Name: "German", Locale: "de"},
	"I":   {Name: "Italian", Locale: "it"},
	"T":   {Name: "Portuguese (Brazil)", Locale: "pt_BR"},
	"TPO": {Name: "Portuguese (Portugal)", Locale: "pt_PT"},
	"O":   {Name: "Dutch", Locale: "nl"},
	"M":   {Name: "Romanian", Locale: "ro"},
	"U":   {Name: "Russian", Locale: "ru"},
	"P":   {Name: "Polish", Locale: "pl"},
	"G":   {Name: "Greek", Locale: "el"},
	"H":   {Name: "Hungarian", Locale: "hu"},
	"FI":  {Name: "Finnish", Locale: "fi"},
	"Z":   {Name: "Swedish", Locale: "sv"},
	"D":   {Name: "Danish", Locale: "da"},
	"N":   {Name: "Norwegian", Locale: "no"},
	"J":   {Name: "Japanese", Locale: "ja"},
	"KO":  {Name: "Korean", Locale: "ko"},
	"CHS": {Name: "Chinese (Simplified)", Locale: "zh_Hans"},
	"CHT": {Name: "Chinese (Traditional)", Locale: "zh_Hant"},
	"B":   {Name: "Czech", Locale: "cs"},
	"V":   {Name: "Slovak", Locale: "sk"},
	"TK":  {Name: "Turkish", Locale: "tr"},
	"REA": {Name: "Arabic", Locale: "ar"},
	"IN":  {Name: "Indonesian", Locale: "id"},
	"VT":  {Name: "Vietnamese", Locale: "vi"},
	"UK":  {Name: "Ukrainian", Locale: "uk"},
}

// ISO639 returns the bare ISO 639 code for a catalog language tag,
// stripping any regional suffix (pt_BR becomes pt).
func ISO639(tag string) (string, error) {
	lang, ok := languageTable[tag]
	if !ok {
		return "", errors.Wrapf(errors.ErrUnknownLanguage, "%q", tag)
	}
	code, _, _ := strings.Cut(lang.Locale, "_")
	return code, nil
}

// KnownLanguage reports whether tag is present in the language table.
func KnownLanguage(tag string) bool {
	_, ok := languageTable[tag]
	return ok
}
