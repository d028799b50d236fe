// Package extract recognizes contact and identity fields in OCR text with
// fixed patterns. Extraction never fails for missing data; absent fields are nil.
package extract

import (
	"fmt"
	"strings"

	"kycscan/internal/document/models"
)

const (
	contextRadius     = 2
	additionalInfoMax = 200
)

// Leads scans text line by line and builds one lead per line that carries an
// email, phone or two-token name. Each lead is enriched from a window of two
// lines either side. When no line yields a lead, emails, phones and names are
// paired by position and marked low confidence.
func Leads(text string) []models.Lead {
	if strings.TrimSpace(text) == "" {
		return []models.Lead{}
	}

	lines := strings.Split(text, "\n")
	docNames := personNames(text)

	var leads []models.Lead
	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		lineEmail := emailPattern.FindString(line)
		linePhone := phonePattern.FindStringSubmatch(line)
		lineName := personName(line)
		if lineEmail == "" && linePhone == nil && lineName == "" {
			continue
		}

		window := contextWindow(lines, i)
		lead := models.Lead{Source: models.LeadSourceLine, Confidence: models.ConfidenceNormal}
		name := resolveName(lineName, docNames, window)
		lead.Name = models.Ptr(name)

		// Email and phone come from the line itself, else from nearby lines
		// that do not name somebody else.
		shared := ownedWindow(lines, i, name)
		lead.Email = models.Ptr(firstNonEmpty(lineEmail, emailPattern.FindString(shared)))
		if linePhone == nil {
			linePhone = phonePattern.FindStringSubmatch(shared)
		}
		if linePhone != nil {
			lead.Phone = models.Ptr(formatPhone(linePhone))
		}

		lead.Title = models.Ptr(findTitle(window))
		lead.Company = models.Ptr(findCompany(window))
		lead.Website = models.Ptr(websitePattern.FindString(window))
		lead.SocialMedia = findSocial(window)
		lead.AdditionalInfo = models.Ptr(truncate(window, additionalInfoMax))

		if lead.HasContact() {
			leads = append(leads, lead)
		}
	}

	if len(leads) == 0 {
		return positionalLeads(text, docNames)
	}
	return dropSubsumed(leads)
}

func contextWindow(lines []string, i int) string {
	lo := max(0, i-contextRadius)
	hi := min(len(lines), i+contextRadius+1)
	parts := make([]string, 0, hi-lo)
	for _, l := range lines[lo:hi] {
		parts = append(parts, strings.TrimSpace(l))
	}
	return strings.Join(parts, " ")
}

// ownedWindow joins the context lines around i that carry no person name or
// carry owner's name.
func ownedWindow(lines []string, i int, owner string) string {
	lo := max(0, i-contextRadius)
	hi := min(len(lines), i+contextRadius+1)
	parts := make([]string, 0, hi-lo)
	for _, l := range lines[lo:hi] {
		l = strings.TrimSpace(l)
		if n := personName(l); n == "" || n == owner {
			parts = append(parts, l)
		}
	}
	return strings.Join(parts, " ")
}

// personNames returns the two-token capitalized matches in s that are not a
// company name or a job title.
func personNames(s string) []string {
	var out []string
	for _, m := range namePattern.FindAllString(s, -1) {
		if findCompany(m) != "" || findTitle(m) != "" {
			continue
		}
		out = append(out, m)
	}
	return out
}

func personName(s string) string {
	if names := personNames(s); len(names) > 0 {
		return names[0]
	}
	return ""
}

func resolveName(lineName string, docNames []string, window string) string {
	if lineName != "" {
		return lineName
	}
	for _, n := range docNames {
		if strings.Contains(window, n) {
			return n
		}
	}
	return ""
}

func findTitle(window string) string {
	for i, p := range titlePatterns {
		if p.MatchString(window) {
			return titleKeywords[i]
		}
	}
	return ""
}

func findCompany(window string) string {
	for _, p := range companyPatterns {
		if m := p.FindString(window); m != "" {
			return m
		}
	}
	return ""
}

func findSocial(window string) map[string]string {
	social := map[string]string{}
	if m := linkedinPattern.FindStringSubmatch(window); m != nil {
		social["linkedin"] = m[1]
	}
	if m := twitterPattern.FindStringSubmatch(window); m != nil {
		social["twitter"] = m[1]
	}
	if len(social) == 0 {
		return nil
	}
	return social
}

// formatPhone renders a phone match as "(area) exchange-line".
func formatPhone(groups []string) string {
	return fmt.Sprintf("(%s) %s-%s", groups[1], groups[2], groups[3])
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// positionalLeads pairs the i-th email, phone and name. It cannot know that
// they belong together, so every lead it produces is low confidence.
func positionalLeads(text string, names []string) []models.Lead {
	emails := emailPattern.FindAllString(text, -1)
	phones := phonePattern.FindAllStringSubmatch(text, -1)

	n := max(len(emails), len(phones), len(names))
	leads := make([]models.Lead, 0, n)
	for i := range n {
		lead := models.Lead{Source: models.LeadSourcePositional, Confidence: models.ConfidenceLow}
		if i < len(emails) {
			lead.Email = models.Ptr(emails[i])
		}
		if i < len(phones) {
			lead.Phone = models.Ptr(formatPhone(phones[i]))
		}
		if i < len(names) {
			lead.Name = models.Ptr(names[i])
		}
		if lead.HasContact() {
			leads = append(leads, lead)
		}
	}
	return leads
}

// dropSubsumed removes leads whose name, email and phone are all contained
// in another lead, so adjacent lines describing one contact collapse into
// the most complete lead. Order is preserved.
func dropSubsumed(leads []models.Lead) []models.Lead {
	out := make([]models.Lead, 0, len(leads))
	for i, a := range leads {
		redundant := false
		for j, b := range leads {
			if i == j {
				continue
			}
			if subsumes(b, a) && (!subsumes(a, b) || j < i) {
				redundant = true
				break
			}
		}
		if !redundant {
			out = append(out, a)
		}
	}
	return out
}

// subsumes reports whether every contact field set on a is equal on b.
func subsumes(b, a models.Lead) bool {
	return fieldCovered(a.Name, b.Name) && fieldCovered(a.Email, b.Email) && fieldCovered(a.Phone, b.Phone)
}

func fieldCovered(a, b *string) bool {
	return a == nil || (b != nil && *a == *b)
}
