package extract

import (
	"strings"
	"unicode"

	"kycscan/internal/document/models"
)

// OCRFields is the lighter pass used by the plain OCR endpoint. The ID number
// is the first upper-case token of 6 to 20 characters that contains a digit,
// which keeps words such as "STUDENT" from being reported as identifiers.
func OCRFields(text string) models.OCRFields {
	var out models.OCRFields
	if text == "" {
		return out
	}

	out.DOB = models.Ptr(ocrDatePattern.FindString(text))

	for _, tok := range ocrIDPattern.FindAllString(text, -1) {
		if strings.IndexFunc(tok, unicode.IsDigit) >= 0 {
			out.IDNumber = &tok
			break
		}
	}
	if m := ocrProgramPattern.FindStringSubmatch(text); m != nil {
		out.Program = models.Ptr(strings.TrimSpace(m[1]))
	}
	if m := ocrCustomIDPattern.FindStringSubmatch(text); m != nil {
		out.CustomID = models.Ptr(m[1])
	}
	return out
}
