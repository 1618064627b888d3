package catalog

import "slices"

// ProspectSearch is one subreddit search run when looking for leads
type ProspectSearch struct {
	Subreddit string `json:"subreddit" yaml:"subreddit"`
	Query     string `json:"query" yaml:"query"`
}

// Label is the progress label for the search
func (s ProspectSearch) Label() string {
	return "r/" + s.Subreddit + ": " + s.Query
}

var prospectSearches = []ProspectSearch{
	// Hiring subreddits
	{"forhire", "[Hiring]"},
	{"slavelabour", "[TASK]"},
	{"jobbit", "[Hiring]"},
	{"Jobs4Bitcoins", "[Hiring]"},
	{"remotejs", "hiring"},
	{"remotepython", "hiring"},
	{"freelance_forhire", "hiring OR [Hiring]"},
	{"hiring", "developer OR engineer OR python OR javascript"},

	// Explicit hiring language
	{"Entrepreneur", "looking to hire developer"},
	{"Entrepreneur", "need a developer"},
	{"startups", "hiring developer OR hiring engineer"},
	{"startups", "looking for technical cofounder"},
	{"smallbusiness", "looking to hire developer"},
	{"smallbusiness", "need someone to build"},
	{"SaaS", "hiring developer OR looking for developer"},
	{"indiehackers", "looking for cofounder OR hiring developer"},

	// Freelance
	{"freelance", "[Hiring] OR looking for freelancer"},
	{"remotework", "hiring OR looking for developer"},
	{"WorkOnline", "[Hiring] OR need developer"},

	// Automation and integration projects
	{"Salesforce", "hire freelancer OR looking for developer"},
	{"hubspot", "hire developer OR need integration"},
	{"zapier", "hire developer OR need custom"},
	{"n8n", "hire OR pay someone"},
	{"shopify", "hire developer OR looking for developer"},
	{"Airtable", "hire developer OR pay someone"},
}

// ProspectSearches returns the subreddit searches in run order
func ProspectSearches() []ProspectSearch {
	return slices.Clone(prospectSearches)
}
