package triage

// languageNames maps supported language codes to the name used in the
// remote prompt. Unknown codes resolve to English.
var languageNames = map[string]string{
	"en":  "English",
	"ta":  "Tamil",
	"hin": "Hindi",
}

const defaultLanguage = "en"

// LanguageName resolves a language code to its prompt name.
func LanguageName(code string) string {
	if name, ok := languageNames[code]; ok {
		return name
	}
	return languageNames[defaultLanguage]
}

// fallbackFirstAid is the canned, pre-translated narrative used whenever the
// remote assistant cannot be reached.
var fallbackFirstAid = map[string]string{
	"en": "Stay calm and rest. Drink water and monitor your symptoms closely. " +
		"Seek immediate medical attention if symptoms worsen or you have difficulty breathing.",
	"ta": "அமைதியாக இருங்கள், ஓய்வெடுங்கள். தண்ணீர் குடித்து உங்கள் அறிகுறிகளை கவனமாகக் கண்காணியுங்கள். " +
		"அறிகுறிகள் மோசமடைந்தால் அல்லது மூச்சுத் திணறல் ஏற்பட்டால் உடனடியாக மருத்துவ உதவியை நாடுங்கள்.",
	"hin": "शांत रहें और आराम करें। पानी पिएँ और अपने लक्षणों पर नज़र रखें। " +
		"यदि लक्षण बिगड़ें या साँस लेने में कठिनाई हो तो तुरंत चिकित्सा सहायता लें।",
}

// FallbackText returns the canned first-aid narrative for a language code,
// defaulting to English for unknown codes.
func FallbackText(code string) string {
	if text, ok := fallbackFirstAid[code]; ok {
		return text
	}
	return fallbackFirstAid[defaultLanguage]
}
