// Package pricing holds the subscription plans shown on the pricing page.
package pricing

import (
	"strings"

	"github.com/creotizant/HCM-Landing/internal/format"
)

// Billing is the billing period selected on the pricing page.
type Billing string

const (
	Monthly Billing = "monthly"
	Annual  Billing = "annual"
)

// AnnualDiscountPercent is taken off the monthly price when billed annually.
const AnnualDiscountPercent = 15

// Currency of every plan price.
const Currency = "GBP"

// ParseBilling reads a billing query value. Anything but "annual" is monthly.
func ParseBilling(s string) Billing {
	if strings.EqualFold(strings.TrimSpace(s), string(Annual)) {
		return Annual
	}
	return Monthly
}

// Plan is one pricing card.
type Plan struct {
	Key     string
	Name    string
	Tagline string
	// MonthlyPence is the per employee monthly price; zero with Custom set.
	MonthlyPence int64
	Custom       bool
	Popular      bool
	CTA          string
	CTAStyle     string
	Highlights   []string
	Included     []string
}

// PricePence returns the per employee monthly price for billing.
func (p Plan) PricePence(b Billing) int64 {
	if p.Custom {
		return 0
	}
	if b == Annual {
		return p.MonthlyPence * (100 - AnnualDiscountPercent) / 100
	}
	return p.MonthlyPence
}

// DisplayPrice renders the card price rounded to whole pounds.
func (p Plan) DisplayPrice(b Billing) string {
	if p.Custom {
		return "Custom"
	}
	return format.WholeCurrency(p.PricePence(b), Currency)
}

// FAQ is a pricing question and answer.
type FAQ struct {
	Q string
	A string
}

// View is the pricing page model for one billing period.
type View struct {
	Billing Billing
	Plans   []PlanView
	FAQs    []FAQ
}

// PlanView is a plan priced for the selected billing period.
type PlanView struct {
	Plan
	Price        string
	BilledYearly bool
}

// Build prices every plan for b.
func Build(b Billing) View {
	v := View{Billing: b, FAQs: FAQs}
	for _, p := range Plans {
		v.Plans = append(v.Plans, PlanView{
			Plan:         p,
			Price:        p.DisplayPrice(b),
			BilledYearly: b == Annual && !p.Custom,
		})
	}
	return v
}

// Plans in display order.
var Plans = []Plan{
	{
		Key:          "essential",
		Name:         "Essential",
		Tagline:      "For growing UK businesses",
		MonthlyPence: 600,
		CTA:          "Start free trial",
		CTAStyle:     "outline",
		Highlights:   []string{"Core HR & Profiles", "Leave & Absence Management", "Basic Payroll Export", "Employee Self-Service App", "Standard Reporting"},
		Included:     []string{"Email support", "Standard SLA", "UK-ready defaults"},
	},
	{
		Key:          "professional",
		Name:         "Professional",
		Tagline:      "For established organizations",
		MonthlyPence: 1200,
		Popular:      true,
		CTA:          "Get started",
		CTAStyle:     "primary",
		Highlights: []string{
			"Everything in Essential",
			"Full UK Payroll (HMRC RTI)",
			"Performance Management",
			"Advanced Analytics",
			"Onboarding Workflows",
			"Expenses Management",
		},
		Included: []string{"Priority support", "Implementation guidance", "Advanced reporting"},
	},
	{
		Key:      "enterprise",
		Name:     "Enterprise",
		Tagline:  "For complex, global needs",
		Custom:   true,
		CTA:      "Contact sales",
		CTAStyle: "neutral",
		Highlights: []string{
			"Everything in Professional",
			"AI Workforce Planning",
			"Global Compliance Engine",
			"Dedicated Success Manager",
			"Custom Integrations (API)",
			"SSO & Advanced Security",
		},
		Included: []string{"Dedicated success", "Security review support", "Custom rollout plan"},
	},
}

// FAQs shown under the plans.
var FAQs = []FAQ{
	{
		Q: "Do you charge implementation fees?",
		A: "No fixed implementation fee. If you need a guided rollout, we’ll scope it transparently based on complexity and timelines.",
	},
	{
		Q: "Can we start with one module and expand later?",
		A: "Yes. Most teams start with Core HR + onboarding, then add payroll, performance, and planning once adoption is strong.",
	},
	{
		Q: "Is this UK-ready?",
		A: "Yes. Plans are designed with UK workflows in mind, and Professional includes full UK payroll (HMRC RTI).",
	},
	{
		Q: "What happens if our headcount changes?",
		A: "Your bill adjusts based on your active employee count. Annual contracts can be true-up on an agreed cadence.",
	},
}
