package followup

import (
	"github.com/rvrjc/campusbot/internal/model"
)

// Rule maps a topic mentioned by the last bot message and a trigger word in
// the current message to a canned answer. When Intent names a known intent its
// response and links are used; otherwise Response and Links are.
type Rule struct {
	Topic    string       `json:"topic" yaml:"topic"`
	Triggers []string     `json:"triggers" yaml:"triggers"`
	Intent   string       `json:"intent,omitempty" yaml:"intent"`
	Response string       `json:"response,omitempty" yaml:"response"`
	Links    []model.Link `json:"links,omitempty" yaml:"links"`
}

// DefaultRules returns the built-in follow-up table.
func DefaultRules() []Rule {
	return []Rule{
		{
			Topic:    "departments",
			Triggers: []string{"cse"},
			Intent:   "cse_department",
			Response: "The CSE department offers undergraduate and postgraduate programmes in Computer Science and Engineering.",
		},
		{
			Topic:    "placement",
			Triggers: []string{"companies", "salary", "package"},
			Response: "Our top recruiters include TCS, Infosys, Wipro, Accenture, IBM, Cognizant, and HCL. The average salary package ranges from 4-6 LPA, with highest packages going up to 12+ LPA.",
			Links: []model.Link{
				{URL: "https://rvrjcce.ac.in/placements/recruiters", Text: "Our Recruiters"},
				{URL: "https://rvrjcce.ac.in/placements/statistics", Text: "Placement Statistics"},
			},
		},
		{
			Topic:    "admission",
			Triggers: []string{"when", "date", "deadline"},
			Response: "The admission process typically begins in May after the AP EAPCET (formerly EAMCET) results are announced. Please check the college website for the exact dates for the current academic year.",
			Links: []model.Link{
				{URL: "https://rvrjcce.ac.in/admissions/schedule", Text: "Admission Schedule"},
			},
		},
	}
}
