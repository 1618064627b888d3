package catalog

import (
	"slices"

	"devscout/pkg/models"
)

// EngagementSubreddit is a subreddit where discussions can be started,
// with the communities related to it
type EngagementSubreddit struct {
	Name    string
	Related []string
}

var engagementSubreddits = []EngagementSubreddit{
	// Developer discussions
	{"programming", []string{"webdev", "coding", "softwareDevelopment", "learnprogramming"}},
	{"webdev", []string{"programming", "frontend", "webdevelopment", "coding"}},
	{"Python", []string{"learnpython", "django", "flask", "coding"}},
	{"javascript", []string{"reactjs", "typescript", "node", "webdev"}},
	{"reactjs", []string{"javascript", "nextjs", "webdev", "frontend"}},
	{"node", []string{"javascript", "express", "webdev", "backend"}},
	{"learnprogramming", []string{"programming", "coding", "cscareerquestions"}},

	// Automation and tools
	{"automation", []string{"selfhosted", "homelab", "productivity"}},
	{"selfhosted", []string{"homelab", "automation", "linux"}},
	{"homelab", []string{"selfhosted", "sysadmin", "networking"}},

	// Business
	{"Entrepreneur", []string{"startups", "smallbusiness", "SaaS", "indiehackers"}},
	{"startups", []string{"Entrepreneur", "SaaS", "microsaas"}},
	{"smallbusiness", []string{"Entrepreneur", "ecommerce", "marketing"}},
	{"SaaS", []string{"startups", "microsaas", "indiehackers"}},
	{"indiehackers", []string{"SaaS", "microsaas", "startups"}},

	// Freelance
	{"freelance", []string{"WorkOnline", "digitalnomad", "consulting"}},
	{"WorkOnline", []string{"freelance", "remotework", "sidehustle"}},
}

type ideaCategory struct {
	name  string
	ideas []models.IdeaTemplate
}

func idea(title string, tags []string, subreddits ...string) models.IdeaTemplate {
	return models.IdeaTemplate{Title: title, Tags: tags, Subreddits: subreddits}
}

func tags(t ...string) []string { return t }

var engagementTemplates = []ideaCategory{
	{"architecture_deep_dives", []models.IdeaTemplate{
		idea("The hidden complexity of {X} integrations that nobody talks about", tags("architecture", "deep-dive"), "programming", "webdev", "node"),
		idea("Why I stopped using {X} and built my own {Y}", tags("architecture", "experience"), "programming", "selfhosted", "SaaS"),
		idea("Patterns I've seen across 50+ API integrations", tags("patterns", "api"), "programming", "webdev", "node"),
		idea("What happens when {X} fails at scale - lessons from production", tags("scale", "production"), "programming", "devops", "node"),
		idea("The architecture decisions that saved us from {X} disaster", tags("architecture", "lessons"), "programming", "devops", "webdev"),
		idea("How I structure {X} integrations to avoid vendor lock-in", tags("architecture", "strategy"), "programming", "webdev", "SaaS"),
		idea("The abstraction layer that made {X} integrations maintainable", tags("architecture", "patterns"), "programming", "webdev", "node"),
	}},
	{"production_war_stories", []models.IdeaTemplate{
		idea("That time {X} took down our {Y} - and what we learned", tags("war-story", "postmortem"), "programming", "devops", "startups"),
		idea("The 3am incident that changed how we handle {X}", tags("war-story", "oncall"), "devops", "programming", "sysadmin"),
		idea("How a {X} edge case cost us {Y} - lessons learned", tags("war-story", "lessons"), "programming", "startups", "Entrepreneur"),
		idea("The silent failure that went unnoticed for 3 months", tags("war-story", "monitoring"), "devops", "programming", "sysadmin"),
		idea("When {X} rate limits hit and we had to rewrite everything in 48 hours", tags("war-story", "api"), "programming", "webdev", "node"),
		idea("The $X,000 mistake that taught me about {Y}", tags("war-story", "lessons"), "programming", "startups", "Entrepreneur"),
	}},
	{"hard_lessons", []models.IdeaTemplate{
		idea("When NOT to automate - lessons from over-engineering", tags("automation", "lessons"), "programming", "automation", "Entrepreneur"),
		idea("The real cost of technical debt in {X} - a postmortem", tags("technical-debt", "postmortem"), "programming", "webdev", "startups"),
		idea("Why your {X} integration is probably broken (and how to fix it)", tags("debugging", "integration"), "programming", "webdev", "node"),
		idea("The 3 integration antipatterns I see everywhere", tags("antipatterns", "architecture"), "programming", "webdev", "node"),
		idea("What I wish I knew before building {X} integrations at scale", tags("lessons", "scale"), "programming", "webdev", "devops"),
		idea("The abstractions that seemed clever until production", tags("lessons", "architecture"), "programming", "webdev", "node"),
	}},
	{"technical_opinions", []models.IdeaTemplate{
		idea("Unpopular opinion: {X} is overengineered for most use cases", tags("opinion", "discussion"), "programming", "webdev", "node"),
		idea("Why I prefer {X} over {Y} for production workloads", tags("opinion", "comparison"), "programming", "devops", "selfhosted"),
		idea("The case against {X} in {Y} environments", tags("opinion", "technical"), "programming", "webdev", "devops"),
		idea("Hot take: Most {X} problems are actually {Y} problems", tags("opinion", "discussion"), "programming", "webdev", "Entrepreneur"),
		idea("Why the {X} ecosystem is heading in the wrong direction", tags("opinion", "industry"), "programming", "webdev", "node"),
		idea("The uncomfortable truth about {X} that vendors won't tell you", tags("opinion", "industry"), "programming", "devops", "SaaS"),
	}},
	{"debugging_and_process", []models.IdeaTemplate{
		idea("How I debug {X} integrations - my actual process", tags("debugging", "process"), "programming", "webdev", "node"),
		idea("The debugging technique that changed how I approach {X}", tags("debugging", "tips"), "programming", "webdev", "devops"),
		idea("Tracing a {X} bug through 5 services - a war story", tags("debugging", "war-story"), "programming", "devops", "node"),
		idea("My toolkit for debugging distributed {X} systems", tags("debugging", "tools"), "programming", "devops", "node"),
		idea("The observability setup that makes debugging {X} actually possible", tags("debugging", "monitoring"), "devops", "programming", "sysadmin"),
	}},
	{"expert_discussions", []models.IdeaTemplate{
		idea("How do you handle {X} at scale?", tags("scale", "discussion"), "programming", "webdev", "devops"),
		idea("What's your approach to {X} in distributed systems?", tags("distributed", "discussion"), "programming", "devops", "node"),
		idea("What's your monitoring/alerting setup for {X}?", tags("monitoring", "discussion"), "devops", "selfhosted", "programming"),
		idea("How do you test {X} integrations in CI/CD?", tags("testing", "cicd"), "programming", "devops", "webdev"),
		idea("What's your strategy for API versioning in production?", tags("api", "discussion"), "programming", "webdev", "node"),
		idea("How are you handling secrets management for {X}?", tags("security", "discussion"), "devops", "programming", "sysadmin"),
	}},
	{"industry_insights", []models.IdeaTemplate{
		idea("Why {X} adoption is stalling - an insider perspective", tags("industry", "analysis"), "programming", "Entrepreneur", "startups"),
		idea("The real reason companies struggle with {X}", tags("industry", "analysis"), "programming", "Entrepreneur", "SaaS"),
		idea("What I learned consulting for {X} companies on {Y}", tags("consulting", "insights"), "Entrepreneur", "startups", "programming"),
		idea("The hidden costs of {X} that nobody talks about", tags("industry", "analysis"), "programming", "SaaS", "Entrepreneur"),
		idea("Why enterprises are moving away from {X} (and what they're using instead)", tags("industry", "trends"), "programming", "devops", "SaaS"),
	}},
	{"production_comparisons", []models.IdeaTemplate{
		idea("After running {X} and {Y} in production for a year - honest comparison", tags("comparison", "production"), "programming", "webdev", "selfhosted"),
		idea("Why we migrated from {X} to {Y} after 2 years", tags("comparison", "migration"), "programming", "devops", "webdev"),
		idea("The performance difference between {X} and {Y} in real workloads", tags("comparison", "performance"), "programming", "webdev", "node"),
		idea("{X} vs {Y} for {Z} workloads - what the benchmarks don't show", tags("comparison", "production"), "programming", "devops", "webdev"),
	}},
}

// EngagementSubreddits returns the engagement subreddits in catalog order
func EngagementSubreddits() []EngagementSubreddit {
	out := make([]EngagementSubreddit, len(engagementSubreddits))
	for i, s := range engagementSubreddits {
		out[i] = EngagementSubreddit{Name: s.Name, Related: slices.Clone(s.Related)}
	}
	return out
}

// IdeaCategories returns the idea category names in catalog order
func IdeaCategories() []string {
	names := make([]string, len(engagementTemplates))
	for i, c := range engagementTemplates {
		names[i] = c.name
	}
	return names
}

// IdeasInCategory returns the templates of one category, each annotated
// with the category name. Unknown categories yield nil.
func IdeasInCategory(category string) []models.IdeaTemplate {
	for _, c := range engagementTemplates {
		if c.name == category {
			return annotate(c)
		}
	}
	return nil
}

// AllIdeas returns every template, category by category
func AllIdeas() []models.IdeaTemplate {
	var out []models.IdeaTemplate
	for _, c := range engagementTemplates {
		out = append(out, annotate(c)...)
	}
	return out
}

func annotate(c ideaCategory) []models.IdeaTemplate {
	out := make([]models.IdeaTemplate, len(c.ideas))
	for i, t := range c.ideas {
		out[i] = models.IdeaTemplate{
			Title:      t.Title,
			Tags:       slices.Clone(t.Tags),
			Subreddits: slices.Clone(t.Subreddits),
			Category:   c.name,
		}
	}
	return out
}
