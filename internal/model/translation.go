// Copyright (c) 2025-2026 RailVoice Contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Language codes the announcement system generates content for.
const (
	LangEnglish  = "en"
	LangHindi    = "hi"
	LangMarathi  = "mr"
	LangGujarati = "gu"
)

// DefaultLanguage is singled out for prominent display in grouped views.
const DefaultLanguage = LangEnglish

// AllLanguages lists the supported language codes in display order.
var AllLanguages = []string{LangEnglish, LangHindi, LangMarathi, LangGujarati}

var languageNames = map[string]string{
	LangEnglish:  "English",
	LangHindi:    "Hindi",
	LangMarathi:  "Marathi",
	LangGujarati: "Gujarati",
}

// LanguageName returns the display name for a language code, or the code
// itself when unknown.
func LanguageName(code string) string {
	if name, ok := languageNames[code]; ok {
		return name
	}
	return code
}

// Translation is one generated text translation of a route, many-to-one
// with TrainRoute. Uniqueness per (route, language) is a backend convention
// and is not enforced here.
type Translation struct {
	ID               int64  `json:"id"`
	TrainRouteID     int64  `json:"train_route_id"`
	LanguageCode     string `json:"language_code"`
	TrainNumber      string `json:"train_number"`
	TrainNumberWords string `json:"train_number_words"`
	TrainName        string `json:"train_name"`
	StartStationName string `json:"start_station_name"`
	EndStationName   string `json:"end_station_name"`
}
