package mailer

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Submission kinds.
const (
	KindContact = "contact"
	KindDemo    = "demo"
)

const notApplicable = "N/A"

// ContactForm is the general inquiry form.
type ContactForm struct {
	Name    string
	Email   string
	Message string
}

// DemoForm is the demo request form.
type DemoForm struct {
	FirstName   string
	LastName    string
	Email       string
	CompanyName string
	CompanySize string
	Country     string
	Interest    string
}

// Option lists for the demo form selects.
var (
	CompanySizes = []string{"1-50", "51-200", "201-1000", "1001-5000", "5000+"}
	Countries    = []string{"United Kingdom", "United States", "Ireland", "Germany", "France", "Netherlands", "India", "Other"}
	Interests    = []string{"Full HCM Suite", "Talent Acquisition", "Core HR & Payroll", "Performance & Learning", "Workforce Intelligence", "Compliance"}
)

var textPolicy = bluemonday.StrictPolicy()

// clean strips markup and surrounding space from a submitted value. The
// policy escapes entities, which the plain text email does not want.
func clean(v string) string {
	return strings.TrimSpace(html.UnescapeString(textPolicy.Sanitize(v)))
}

// ContactParams builds the template parameters of a general inquiry.
// Demographic fields do not apply and are sent as N/A.
func ContactParams(f ContactForm) map[string]string {
	return map[string]string{
		"request_type": "General Inquiry",
		"from_name":    clean(f.Name),
		"from_email":   clean(f.Email),
		"message":      clean(f.Message),
		"company_name": notApplicable,
		"company_size": notApplicable,
		"country":      notApplicable,
		"interest":     notApplicable,
		"to_name":      "Creotizant Team",
	}
}

// DemoParams builds the template parameters of a demo request.
func DemoParams(f DemoForm) map[string]string {
	interest := clean(f.Interest)
	return map[string]string{
		"request_type": "Demo Request",
		"from_name":    strings.TrimSpace(clean(f.FirstName) + " " + clean(f.LastName)),
		"from_email":   clean(f.Email),
		"company_name": clean(f.CompanyName),
		"company_size": clean(f.CompanySize),
		"country":      clean(f.Country),
		"interest":     interest,
		"message":      "Demo Request for: " + interest,
		"to_name":      "Creotizant Sales Team",
	}
}
