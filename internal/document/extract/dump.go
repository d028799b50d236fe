package extract

import (
	"strings"

	"kycscan/internal/document/models"
)

const notAvailable = "N/A"

// FormatLeadDump renders leads as labeled text blocks separated by a blank
// line. It is the degraded OCR tier's stand-in for raw text. Leads without a
// name, email or phone are omitted.
func FormatLeadDump(leads []models.Lead) string {
	blocks := make([]string, 0, len(leads))
	for _, l := range leads {
		if !l.HasContact() {
			continue
		}
		var b strings.Builder
		writeField(&b, "Name", l.Name)
		writeField(&b, "Company", l.Company)
		writeField(&b, "Title", l.Title)
		writeField(&b, "Email", l.Email)
		writeField(&b, "Phone", l.Phone)
		writeField(&b, "Website", l.Website)
		b.WriteString("Additional Info: ")
		b.WriteString(orNA(l.AdditionalInfo))
		blocks = append(blocks, b.String())
	}
	return strings.Join(blocks, "\n\n")
}

func writeField(b *strings.Builder, label string, v *string) {
	b.WriteString(label)
	b.WriteString(": ")
	b.WriteString(orNA(v))
	b.WriteByte('\n')
}

func orNA(v *string) string {
	if v == nil || *v == "" {
		return notAvailable
	}
	return *v
}
