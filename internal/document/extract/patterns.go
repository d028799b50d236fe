package extract

import "regexp"

var (
	emailPattern   = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phonePattern   = regexp.MustCompile(`(?:\+?1[-.\s]?)?\(?([0-9]{3})\)?[-.\s]?([0-9]{3})[-.\s]?([0-9]{4})`)
	websitePattern = regexp.MustCompile(`https?://[-\w.]+(?:\.[a-zA-Z]{2,})+(?:/[\w/_.]*)?(?:\?[\w&=%.]*)?(?:#[\w.]*)?`)
	namePattern    = regexp.MustCompile(`\b[A-Z][a-z]+\s+[A-Z][a-z]+\b`)

	// A bare @handle must not be the middle of an email address.
	linkedinPattern = regexp.MustCompile(`(?:linkedin\.com/in/|(?:^|[^\w.%+-])@)([a-zA-Z0-9-]+)`)
	twitterPattern  = regexp.MustCompile(`(?:twitter\.com/|x\.com/|(?:^|[^\w.%+-])@)([a-zA-Z0-9_]+)`)
)

// titleKeywords are matched case-insensitively as whole words; first hit wins.
var titleKeywords = []string{
	"CEO", "CTO", "CFO", "COO", "President", "Vice President", "VP",
	"Director", "Manager", "Engineer", "Developer", "Analyst", "Consultant",
	"Specialist", "Coordinator", "Assistant", "Executive", "Lead", "Senior",
	"Principal", "Head of", "Chief",
}

var titlePatterns = func() []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(titleKeywords))
	for i, kw := range titleKeywords {
		out[i] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(kw) + `\b`)
	}
	return out
}()

var companyPatterns = func() []*regexp.Regexp {
	suffixes := []string{
		"Inc", "LLC", "Corp", "Corporation", "Company", "Ltd", "Limited",
		"Technologies", "Solutions", "Services", "Group", "Associates",
	}
	out := make([]*regexp.Regexp, len(suffixes))
	for i, s := range suffixes {
		out[i] = regexp.MustCompile(`(?i)\b\w+\s+` + s + `\b`)
	}
	return out
}()

// KYC patterns. Labels accept the Devanagari equivalents used on Indian IDs.
var (
	aadhaarPattern = regexp.MustCompile(`\b\d{4}\s?\d{4}\s?\d{4}\b`)
	panPattern     = regexp.MustCompile(`[A-Z]{5}[0-9]{4}[A-Z]`)
	mobilePattern  = regexp.MustCompile(`(?:\+91[-\s]?|\b)[789]\d{9}\b`)
	kycDatePattern = regexp.MustCompile(`(\d{1,2}[-/]\d{1,2}[-/]\d{2,4})|(\d{2,4}[-/]\d{1,2}[-/]\d{1,2})`)
	kycNamePattern = regexp.MustCompile(`(?i)(?:Full Name|Name|नाम)[\s:\-]*([A-Za-z \t]{3,50})`)
	addressPattern = regexp.MustCompile(`(?i)(?:Address|पता)[\s:\-]*([A-Za-z0-9\s,\-\\.]{10,100})`)
)

// Document OCR endpoint patterns.
var (
	ocrDatePattern     = regexp.MustCompile(`\d{1,2}[/\-.\s]\d{1,2}[/\-.\s]\d{2,4}`)
	ocrIDPattern       = regexp.MustCompile(`\b[A-Z0-9][A-Z0-9-]{4,18}[A-Z0-9]\b`)
	ocrProgramPattern  = regexp.MustCompile(`(?:Program|Course)[:\-\s]*\n?[ \t]*([A-Za-z0-9 \t\-&]+)`)
	ocrCustomIDPattern = regexp.MustCompile(`(?:Enrollment No|Student ID|ID)[:\-\s]*([A-Z0-9-]{4,20})`)
)
