// Package models defines the canonical shapes produced by document extraction.
package models

// Strategy names the extraction path that produced an outcome.
type Strategy string

const (
	StrategyVisionAPI Strategy = "vision-api"
	StrategyOCR       Strategy = "ocr"
	StrategyRegex     Strategy = "regex"
)

// LeadSource distinguishes line-anchored leads from the positional last resort.
type LeadSource string

const (
	LeadSourceLine       LeadSource = "line"
	LeadSourcePositional LeadSource = "positional"
	LeadSourceVision     LeadSource = "vision"
)

// Confidence marks how trustworthy a lead's field association is.
type Confidence string

const (
	ConfidenceNormal Confidence = "normal"
	ConfidenceLow    Confidence = "low"
)

// Lead is a candidate contact record. All fields are optional and omitted
// from JSON when unknown; a lead is only meaningful when it has a name,
// email or phone (see HasContact).
type Lead struct {
	Name           *string           `json:"name,omitempty"`
	Company        *string           `json:"company,omitempty"`
	Title          *string           `json:"title,omitempty"`
	Email          *string           `json:"email,omitempty"`
	Phone          *string           `json:"phone,omitempty"`
	Address        *string           `json:"address,omitempty"`
	Industry       *string           `json:"industry,omitempty"`
	Website        *string           `json:"website,omitempty"`
	SocialMedia    map[string]string `json:"social_media,omitempty"`
	AdditionalInfo *string           `json:"additional_info,omitempty"`
	Source         LeadSource        `json:"source,omitempty"`
	Confidence     Confidence        `json:"confidence,omitempty"`
}

// HasContact reports whether the lead carries a name, email or phone.
func (l Lead) HasContact() bool {
	return nonEmpty(l.Name) || nonEmpty(l.Email) || nonEmpty(l.Phone)
}

// KYCFields is a fixed-shape identity record. Every key is always present in
// JSON (null when unknown) so consumers can rely on a stable schema.
type KYCFields struct {
	Name          []string `json:"name"`
	Gender        *string  `json:"gender"`
	DateOfBirth   *string  `json:"date_of_birth"`
	MobileNumber  *string  `json:"mobile_number"`
	AadhaarNumber *string  `json:"aadhaar_number"`
	Address       *string  `json:"address"`
	PANNumber     *string  `json:"pan_number"`
}

// OCRFields is the lighter field set reported by the document OCR endpoint.
type OCRFields struct {
	DOB      *string `json:"dob"`
	IDNumber *string `json:"id_number"`
	Program  *string `json:"program"`
	CustomID *string `json:"custom_id"`
}

// Outcome is the tagged result of an orchestrated extraction. Exactly one of
// Leads or KYC is set, matching the operation that produced it.
type Outcome struct {
	Strategy Strategy
	Leads    []Lead
	KYC      *KYCFields
	RawText  string
	Warnings []string
	// FellBack is set when an earlier strategy failed before this one succeeded.
	FellBack bool
}

// Ptr returns a pointer to s, or nil for an empty string.
func Ptr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Deref returns the pointed-to value or "".
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func nonEmpty(s *string) bool {
	return s != nil && *s != ""
}
