// Package catalog holds the static tables devscout scans with: target
// subreddits, the relevance keyword list, prospect searches and the
// engagement idea catalog.
//
// Tables are unexported and handed out as copies so no caller can mutate
// them.
package catalog

import "slices"

var targetSubreddits = []string{
	// Developer communities
	"webdev", "programming", "learnprogramming", "node", "reactjs",
	"Python", "django", "flask", "FastAPI", "javascript", "typescript",
	"golang", "rust", "dotnet", "csharp", "java", "php", "laravel",
	"vuejs", "angular", "svelte", "nextjs", "devops", "docker", "kubernetes",
	"aws", "azure", "googlecloud", "terraform", "coding", "softwaredevelopment",

	// Automation and integration
	"automation", "zapier", "n8n", "IFTTT", "nocode", "lowcode", "make",
	"selfhosted", "homelab", "homeautomation", "tasker", "shortcuts",

	// Business
	"smallbusiness", "Entrepreneur", "startups", "SaaS", "indiehackers",
	"microsaas", "EntrepreneurRideAlong", "sweatystartup", "sidehustle",
	"businessideas", "growmybusiness", "consulting",

	// Freelance
	"freelance", "freelanceWriters", "webdesign", "digitalnomad",
	"WorkOnline", "remotework", "forhire", "slavelabour",

	// Productivity
	"productivity", "Notion", "Airtable", "crmquestions", "Obsidianmd",
	"roamresearch", "logseq", "zettelkasten",

	// Ecommerce and marketing
	"ecommerce", "shopify", "dropship", "marketing", "PPC", "SEO",
	"emailmarketing", "socialmediamarketing", "analytics", "growthhacking",

	// Data
	"dataengineering", "datascience", "BusinessIntelligence", "tableau",
	"PowerBI", "excel", "googlesheets", "sql", "database",

	// Tools people struggle with
	"salesforce", "hubspot", "stripe", "twilio", "sendgrid", "firebase",
	"supabase", "mongodb", "postgresql", "redis", "elasticsearch",
}

// Keyword order is significant: matched keywords are reported in this order.
var targetKeywords = []string{
	// Integration and automation
	"integrate", "integration", "automate", "automation", "api", "webhook",
	"sync", "connect", "workflow", "pipeline", "etl",

	// Help-seeking phrases
	"help with", "how do i", "how can i", "need advice", "looking for",
	"recommendations", "suggestions", "best way to", "anyone know",

	// Problem indicators
	"struggle", "struggling", "stuck", "frustrated", "issue with",
	"problem with", "not working", "cant figure", "can't figure",

	// Tool or solution seeking
	"tool for", "app for", "software for", "solution for", "alternative to",
	"switch from", "migrate", "export", "import",
}

// TargetSubreddits returns the subreddits scanned for new posts
func TargetSubreddits() []string {
	return slices.Clone(targetSubreddits)
}

// TargetKeywords returns the relevance keyword list in match order
func TargetKeywords() []string {
	return slices.Clone(targetKeywords)
}
