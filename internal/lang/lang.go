// Package lang holds the language tables and tagging primitives the routing
// layer operates on: ISO-639-1 style codes, the Indic language set served by
// the specialized backends, and the NLLB-200 code mapping used for translation.
package lang

// CodeUnknown is the tag code for input that could not be classified.
const CodeUnknown = "und"

// Tag is a language classification: a canonical code plus a confidence in [0,1].
// Tags are produced once per utterance and never mutated.
type Tag struct {
	Code       string  `json:"code"`
	Confidence float64 `json:"confidence"`
}

// Unknown returns the lowest-confidence unknown tag.
func Unknown() Tag {
	return Tag{Code: CodeUnknown, Confidence: 0}
}

// IsUnknown reports whether the tag carries the unknown code.
func (t Tag) IsUnknown() bool {
	return t.Code == CodeUnknown
}

// IndicLanguages maps Indic language codes to display names. This is the
// default capability set of the specialized ASR and primary TTS backends.
var IndicLanguages = map[string]string{
	"as":  "Assamese",
	"bn":  "Bengali",
	"brx": "Bodo",
	"doi": "Dogri",
	"gu":  "Gujarati",
	"hi":  "Hindi",
	"kn":  "Kannada",
	"kok": "Konkani",
	"ks":  "Kashmiri",
	"mai": "Maithili",
	"ml":  "Malayalam",
	"mni": "Manipuri",
	"mr":  "Marathi",
	"ne":  "Nepali",
	"or":  "Odia",
	"pa":  "Punjabi",
	"sa":  "Sanskrit",
	"sat": "Santali",
	"sd":  "Sindhi",
	"ta":  "Tamil",
	"te":  "Telugu",
	"ur":  "Urdu",
}

// IndicCodes returns the Indic language codes as a slice.
func IndicCodes() []string {
	codes := make([]string, 0, len(IndicLanguages))
	for code := range IndicLanguages {
		codes = append(codes, code)
	}
	return codes
}

// IsIndic reports whether code belongs to the Indic language set.
func IsIndic(code string) bool {
	_, ok := IndicLanguages[code]
	return ok
}

// nllbCodes maps ISO codes to verified NLLB-200 language tags.
var nllbCodes = map[string]string{
	"en": "eng_Latn",
	"hi": "hin_Deva",
	"te": "tel_Telu",
	"ta": "tam_Taml",
	"bn": "ben_Beng",
	"ml": "mal_Mlym",
	"kn": "kan_Knda",
	"mr": "mar_Deva",
	"gu": "guj_Gujr",
	"pa": "pan_Guru",
	"ur": "urd_Arab",
	"ne": "npi_Deva",
	"or": "ory_Orya",
	"as": "asm_Beng",
	"sd": "snd_Arab",
	"si": "sin_Sinh",
	"fr": "fra_Latn",
	"de": "deu_Latn",
	"es": "spa_Latn",
	"zh": "zho_Hans",
	"ja": "jpn_Jpan",
	"ko": "kor_Hang",
	"ru": "rus_Cyrl",
	"ar": "arb_Arab",
	"pt": "por_Latn",
	"it": "ita_Latn",
}

// NLLBCode translates an ISO code into the NLLB-200 tag the translation
// backend expects. Unmapped codes fall back to English, matching the
// translator's own default.
func NLLBCode(code string) string {
	if nllb, ok := nllbCodes[code]; ok {
		return nllb
	}
	return "eng_Latn"
}
