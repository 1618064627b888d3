package scoring

import "strings"

var hiringThreadKeywords = []string{
	"python", "javascript", "typescript", "react", "node", "api", "integration",
	"automation", "fullstack", "full stack", "backend", "remote", "contract",
	"freelance", "part-time", "part time", "consultant", "contractor",
}

// WhoIsHiring scores a top-level comment of the monthly "Who is hiring?"
// thread. keep is false when the listing mentions nothing relevant.
func WhoIsHiring(text string) (score int, keep bool) {
	lower := strings.ToLower(text)
	hasRelevant := containsAny(lower, hiringThreadKeywords)
	hasLocation := strings.Contains(lower, "remote") || strings.Contains(lower, "onsite")
	if !hasRelevant && !hasLocation {
		return 0, false
	}

	score = 10
	if strings.Contains(lower, "remote") {
		score += 15
	}
	if strings.Contains(lower, "contract") || strings.Contains(lower, "freelance") {
		score += 20
	}
	if strings.Contains(lower, "part-time") || strings.Contains(lower, "part time") {
		score += 15
	}
	score += 3 * countContained(lower, hiringThreadKeywords)
	return score, true
}

var (
	seekingMarkers  = []string{"seeking", "looking for", "need", "hiring"}
	offeringMarkers = []string{"available", "for hire", "my rate", "my skills"}
)

// FreelancerThread scores a comment of the "Freelancer? Seeking freelancer?"
// thread. Only comments from people seeking a freelancer are kept.
func FreelancerThread(text string) (score int, keep bool) {
	lower := strings.ToLower(text)
	if !containsAny(lower, seekingMarkers) || containsAny(lower, offeringMarkers) {
		return 0, false
	}

	score = 25
	if strings.Contains(lower, "python") {
		score += 10
	}
	if strings.Contains(lower, "javascript") || strings.Contains(lower, "react") {
		score += 10
	}
	if strings.Contains(lower, "automation") || strings.Contains(lower, "integration") {
		score += 15
	}
	return score, true
}
