package templates

import "time"

// Feature is one card in the features section.
type Feature struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Testimonial is one customer quote.
type Testimonial struct {
	Quote   string `json:"quote"`
	Author  string `json:"author"`
	Company string `json:"company,omitempty"`
}

// Stat is one headline number in the stats section.
type Stat struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Options carries the caller-supplied copy for a page. Empty fields are
// filled with defaults at assembly time.
type Options struct {
	CompanyName string `json:"company_name,omitempty" validate:"max=255"`
	Industry    string `json:"industry,omitempty" validate:"max=255"`

	Headline     string `json:"headline,omitempty"`
	Subheadline  string `json:"subheadline,omitempty"`
	CTAText      string `json:"cta_text,omitempty"`
	CTASecondary string `json:"cta_secondary,omitempty"`

	FeaturesTitle string    `json:"features_title,omitempty"`
	Features      []Feature `json:"features,omitempty"`
	// FeatureCount limits the cards rendered by the utility variant.
	FeatureCount int `json:"feature_count,omitempty"`

	CTAHeadline    string `json:"cta_headline,omitempty"`
	CTADescription string `json:"cta_description,omitempty"`
	CTAButton      string `json:"cta_button,omitempty"`

	ProblemHeading string   `json:"problem_heading,omitempty"`
	ProblemLead    string   `json:"problem_lead,omitempty"`
	Problems       []string `json:"problems,omitempty"`
	Solution       string   `json:"solution,omitempty"`

	TestimonialsHeading string        `json:"testimonials_heading,omitempty"`
	Testimonials        []Testimonial `json:"testimonials,omitempty"`

	Stats []Stat `json:"stats,omitempty"`

	// Year overrides the copyright year; zero means the current year.
	Year int `json:"year,omitempty"`
}

var defaultFeatures = []Feature{
	{Title: "Fast Performance", Description: "Lightning-fast load times and optimized delivery"},
	{Title: "Secure & Reliable", Description: "Enterprise-grade security and 99.9% uptime"},
	{Title: "Easy Integration", Description: "Seamlessly integrate with your existing tools"},
}

var defaultProblems = []string{
	"Expensive and time-consuming",
	"Inconsistent results",
	"Too complex to manage",
}

var defaultTestimonials = []Testimonial{
	{
		Quote:   "This platform has transformed how we work. Highly recommended!",
		Author:  "John Doe",
		Company: "Acme Corp",
	},
}

var defaultStats = []Stat{
	{Value: "10,000+", Label: "Happy Customers"},
	{Value: "99.9%", Label: "Uptime Guarantee"},
	{Value: "24/7", Label: "Support Available"},
}

const defaultFeatureCount = 3

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// withDefaults returns a copy of o with every empty field filled in.
func (o Options) withDefaults() Options {
	o.CompanyName = orDefault(o.CompanyName, "Your Company")
	o.Headline = orDefault(o.Headline, "Build Something Amazing")
	o.Subheadline = orDefault(o.Subheadline, "The best solution for your business needs")
	o.CTAText = orDefault(o.CTAText, "Get Started")
	o.CTASecondary = orDefault(o.CTASecondary, "Learn More")
	o.FeaturesTitle = orDefault(o.FeaturesTitle, "Why Choose Us")
	o.CTAHeadline = orDefault(o.CTAHeadline, "Ready to Get Started?")
	o.CTADescription = orDefault(o.CTADescription, "Join thousands of satisfied customers today")
	o.CTAButton = orDefault(o.CTAButton, "Start Free Trial")
	o.ProblemHeading = orDefault(o.ProblemHeading, "The Challenge")
	o.ProblemLead = orDefault(o.ProblemLead, "You have better things to do")
	o.Solution = orDefault(o.Solution, "We make it simple.")
	o.TestimonialsHeading = orDefault(o.TestimonialsHeading, "What Our Customers Say")

	if len(o.Features) == 0 {
		o.Features = defaultFeatures
	}
	if len(o.Problems) == 0 {
		o.Problems = defaultProblems
	}
	if len(o.Testimonials) == 0 {
		o.Testimonials = defaultTestimonials
	}
	if len(o.Stats) == 0 {
		o.Stats = defaultStats
	}
	if o.FeatureCount <= 0 {
		o.FeatureCount = defaultFeatureCount
	}
	if o.Year == 0 {
		o.Year = time.Now().Year()
	}
	return o
}
