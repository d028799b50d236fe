package extract

import (
	"strings"

	"kycscan/internal/document/models"
)

// KYC pulls identity fields out of OCR text from an ID card. Every pattern is
// independent; the first match wins and unmatched fields stay nil.
func KYC(text string) models.KYCFields {
	var out models.KYCFields
	if strings.TrimSpace(text) == "" {
		return out
	}

	if m := aadhaarPattern.FindString(text); m != "" {
		out.AadhaarNumber = models.Ptr(stripSpaces(m))
	}
	out.PANNumber = models.Ptr(panPattern.FindString(text))
	out.MobileNumber = models.Ptr(mobilePattern.FindString(text))

	if m := kycDatePattern.FindStringSubmatch(text); m != nil {
		out.DateOfBirth = models.Ptr(firstNonEmpty(m[1:]...))
	}
	if m := kycNamePattern.FindStringSubmatch(text); m != nil {
		out.Name = strings.Fields(m[1])
	}
	if m := addressPattern.FindStringSubmatch(text); m != nil {
		out.Address = models.Ptr(strings.TrimSpace(m[1]))
	}
	return out
}

func stripSpaces(s string) string {
	return strings.Join(strings.Fields(s), "")
}
