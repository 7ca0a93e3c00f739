package labels

import "golang.org/x/text/language"

// Display strings for the date lines. Lookup falls back to English per key,
// so a partial table degrades string by string.
var translations = map[string]map[string]string{
	"en": {"expires": "Expires", "purchased": "Purchased"},
	"es": {"expires": "Caduca", "purchased": "Comprado"},
	"fr": {"expires": "Expire", "purchased": "Acheté"},
	"de": {"expires": "Ablaufdatum", "purchased": "Gekauft"},
	"it": {"expires": "Scadenza", "purchased": "Acquistato"},
}

var (
	supportedCodes = []string{"en", "es", "fr", "de", "it"}
	langMatcher    = language.NewMatcher([]language.Tag{
		language.English,
		language.Spanish,
		language.French,
		language.German,
		language.Italian,
	})
)

// normalizeLang resolves a configured language code ("de", "en-US", "fr-CA")
// to one of the supported table keys. Anything unresolvable is English.
func normalizeLang(code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		return "en"
	}
	_, idx, conf := langMatcher.Match(tag)
	if conf == language.No {
		return "en"
	}
	return supportedCodes[idx]
}

func tr(lang, key string) string {
	if table, ok := translations[lang]; ok {
		if v, ok := table[key]; ok {
			return v
		}
	}
	return translations["en"][key]
}
