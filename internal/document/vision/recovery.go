package vision

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"kycscan/internal/document/models"
)

const leadsUnparseableWarning = "could not parse leads from vision reply"

// RecoverLeads parses a JSON array of lead objects out of a conversational
// reply. It first tries the span from the first '[' to the last ']', then the
// whole reply. When neither parses it returns no leads and a warning.
func RecoverLeads(reply string) ([]models.Lead, string) {
	var raw []map[string]any

	start, end := strings.Index(reply, "["), strings.LastIndex(reply, "]")
	parsed := start >= 0 && end > start && json.Unmarshal([]byte(reply[start:end+1]), &raw) == nil
	if !parsed {
		raw = nil
		parsed = json.Unmarshal([]byte(strings.TrimSpace(reply)), &raw) == nil
	}
	if !parsed {
		return []models.Lead{}, leadsUnparseableWarning
	}

	leads := make([]models.Lead, 0, len(raw))
	for _, obj := range raw {
		lead := leadFromMap(obj)
		if lead.HasContact() {
			leads = append(leads, lead)
		}
	}
	return leads, ""
}

func leadFromMap(obj map[string]any) models.Lead {
	return models.Lead{
		Name:           stringField(obj, "name"),
		Company:        stringField(obj, "company"),
		Title:          stringField(obj, "title"),
		Email:          stringField(obj, "email"),
		Phone:          stringField(obj, "phone"),
		Address:        stringField(obj, "address"),
		Industry:       stringField(obj, "industry"),
		Website:        stringField(obj, "website"),
		SocialMedia:    socialField(obj["social_media"]),
		AdditionalInfo: stringField(obj, "additional_info"),
		Source:         models.LeadSourceVision,
		Confidence:     models.ConfidenceNormal,
	}
}

// RecoverKYC parses an identity record from the model reply. A surrounding
// fenced code block is ignored. If the remainder is not a JSON object the
// reply is mined for labeled fields and fromText is true. It never fails;
// unrecoverable fields stay nil.
func RecoverKYC(reply string) (fields models.KYCFields, fromText bool) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(stripFence(reply)), &obj); err == nil && obj != nil {
		return kycFromMap(obj), false
	}
	return kycFromText(reply), true
}

func stripFence(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func kycFromMap(obj map[string]any) models.KYCFields {
	return models.KYCFields{
		Name:          nameTokens(obj["name"]),
		Gender:        stringField(obj, "gender"),
		DateOfBirth:   stringField(obj, "date_of_birth"),
		MobileNumber:  stringField(obj, "mobile_number"),
		AadhaarNumber: stringField(obj, "aadhaar_number"),
		Address:       stringField(obj, "address"),
		PANNumber:     stringField(obj, "pan_number"),
	}
}

func nameTokens(v any) []string {
	switch n := v.(type) {
	case []any:
		out := make([]string, 0, len(n))
		for _, part := range n {
			if s := stringify(part); s != "" {
				out = append(out, s)
			}
		}
		if len(out) == 0 {
			return nil
		}
		return out
	case string:
		return splitName(n)
	default:
		return nil
	}
}

var namePairPattern = regexp.MustCompile(`(?i)"name":\s*\["([^"]+)",\s*"([^"]+)"\]`)

var (
	nameTextPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)"name":\s*\["([^"]+)"\]`),
		regexp.MustCompile(`(?i:Name)[:\-\s]*([A-Z][a-z]+(?:[ \t]+[A-Z][a-z]+)+)`),
		regexp.MustCompile(`(?i)"name":\s*"([^"]+)"`),
	}
	dobTextPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)"date_of_birth":\s*"([^"]+)"`),
		regexp.MustCompile(`(?i)Date of Birth[:\-\s]*(\d{1,2}[/-]\d{1,2}[/-]\d{4})`),
		regexp.MustCompile(`(?i)DOB[:\-\s]*(\d{1,2}[/-]\d{1,2}[/-]\d{4})`),
	}
	genderTextPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)"gender":\s*"([^"]+)"`),
		regexp.MustCompile(`(?i)Gender[:\-\s]*(Male|Female|[MF][ale]*)`),
	}
)

// kycFromText recovers name, date of birth and gender from a reply that is
// either broken JSON or prose.
func kycFromText(text string) models.KYCFields {
	var out models.KYCFields

	if m := namePairPattern.FindStringSubmatch(text); m != nil {
		out.Name = []string{m[1], m[2]}
	} else if v := firstCapture(nameTextPatterns, text); v != "" {
		out.Name = splitName(v)
	}
	out.DateOfBirth = models.Ptr(firstCapture(dobTextPatterns, text))
	out.Gender = models.Ptr(firstCapture(genderTextPatterns, text))
	return out
}

func firstCapture(patterns []*regexp.Regexp, text string) string {
	for _, p := range patterns {
		if m := p.FindStringSubmatch(text); m != nil {
			return m[1]
		}
	}
	return ""
}

// splitName splits on whitespace. A single token is padded with an empty
// last name so the record keeps its first/last shape.
func splitName(s string) []string {
	parts := strings.Fields(s)
	switch len(parts) {
	case 0:
		return nil
	case 1:
		return []string{parts[0], ""}
	default:
		return parts
	}
}

func stringField(obj map[string]any, key string) *string {
	return models.Ptr(stringify(obj[key]))
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	default:
		return ""
	}
}

func socialField(v any) map[string]string {
	m, ok := v.(map[string]any)
	if !ok || len(m) == 0 {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, val := range m {
		if s := stringify(val); s != "" {
			out[k] = s
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
