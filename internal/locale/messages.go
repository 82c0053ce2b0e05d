package locale

// messages holds the user-facing string tables. Hindi and English are
// authored; the remaining supported languages resolve through the
// standard fallback chain until translations land.
var messages = map[string]map[string]string{
	"schemes_found": {
		Hindi:   "मिलान की गई योजनाएं",
		English: "Matched schemes",
	},
	"no_match": {
		Hindi:   "माफ़ कीजिए, आपकी खोज से कोई योजना नहीं मिली।",
		English: "Sorry, no schemes matched your query.",
	},
	"explore_categories": {
		Hindi:   "आप इन श्रेणियों की योजनाएँ देख सकते हैं:",
		English: "You may explore schemes in these categories:",
	},
	"question_category": {
		Hindi:   "क्या आप शिक्षा, स्वास्थ्य या वित्तीय सहायता से जुड़ी योजना ढूंढ रहे हैं?",
		English: "Are you looking for education, healthcare, or financial aid schemes?",
	},
	"question_demographic": {
		Hindi:   "यह योजना किसके लिए है? (छात्र, किसान, महिला, वरिष्ठ नागरिक)",
		English: "Who is this scheme for? (student, farmer, women, senior citizen)",
	},
	"category_education": {
		Hindi:   "शिक्षा से जुड़ी योजनाएँ",
		English: "education-related schemes",
	},
	"category_healthcare": {
		Hindi:   "स्वास्थ्य से जुड़ी योजनाएँ",
		English: "healthcare-related schemes",
	},
	"category_financial_aid": {
		Hindi:   "वित्तीय सहायता योजनाएँ",
		English: "financial aid schemes",
	},
	"otp_sent": {
		Hindi:   "ओटीपी भेजा गया",
		English: "OTP sent",
	},
	"otp_verified": {
		Hindi:   "सत्यापन सफल",
		English: "Verification successful",
	},
	"otp_throttled": {
		Hindi:   "कृपया दोबारा ओटीपी मांगने से पहले प्रतीक्षा करें",
		English: "Please wait before requesting another OTP",
	},
	"otp_not_found": {
		Hindi:   "इस नंबर के लिए कोई ओटीपी नहीं मिला",
		English: "No OTP found for this number",
	},
	"otp_expired": {
		Hindi:   "ओटीपी की अवधि समाप्त हो गई है",
		English: "OTP has expired",
	},
	"otp_invalid": {
		Hindi:   "गलत ओटीपी, कृपया दोबारा प्रयास करें",
		English: "Incorrect OTP, please try again",
	},
	"ok": {
		Hindi:   "ok",
		English: "ok",
	},
}

// Message resolves a UI string by key through the language fallback
// chain. Unknown keys yield an empty string.
func Message(key, lang string) string {
	return Resolve(messages[key], lang)
}
