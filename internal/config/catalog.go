package config

// CompanyDescription is the pre-loaded company blurb injected into every
// generated job description.
const CompanyDescription = "BriteCo specializes in innovative and comprehensive insurance solutions for " +
	"jewelry, watches, weddings, and special events, delivering convenient, fast, " +
	"and affordable coverage. Backed by an AM Best A+ rated carrier, we ensure " +
	"peace of mind by offering up to 125% of appraised value with $0 deductibles, " +
	"protecting precious items against loss, theft, damage, and more anywhere in " +
	"the world. Our wedding and event insurance safeguards your big day from " +
	"unforeseen events, such as cancellations or disruptions, so you can celebrate " +
	"confidently. At BriteCo, we prioritize seamless, white-glove customer support " +
	"and modern protection for life's most meaningful moments. Based in Evanston, IL, " +
	"we bring a unique blend of innovation and dedication to our customers."

// StandardBenefits is the fixed benefits list offered with every role.
var StandardBenefits = []string{
	"Competitive salary and performance bonuses",
	"Comprehensive health, dental, and vision insurance",
	"401(k) with company match",
	"Flexible PTO policy",
	"Remote and hybrid work options",
	"Professional development budget",
	"Company-sponsored team events and retreats",
	"Parental leave",
	"Life and disability insurance",
	"Employee wellness programs",
}

// Departments lists the selectable departments in the role form.
var Departments = []string{
	"Claims",
	"Customer Success",
	"Marketing",
	"Sales",
	"Underwriting",
	"Other",
}

// ExperienceLevel pairs a stable value with its display label.
type ExperienceLevel struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// ExperienceLevels lists the selectable experience bands in the role form.
var ExperienceLevels = []ExperienceLevel{
	{Value: "entry", Label: "Entry Level (0-2 years)"},
	{Value: "mid", Label: "Mid Level (3-5 years)"},
	{Value: "senior", Label: "Senior (6-10 years)"},
	{Value: "lead", Label: "Lead / Staff (8-12+ years)"},
	{Value: "director", Label: "Director (10+ years)"},
	{Value: "vp", Label: "VP / Executive (12+ years)"},
}
