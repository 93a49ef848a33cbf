package search

// Synonyms maps a normalized search phrase to alternative phrasings that
// employers commonly use in job titles and descriptions.
var Synonyms = map[string][]string{
	"frontend":         {"front end", "frontend developer", "ui developer"},
	"backend":          {"back end", "server side", "backend developer"},
	"full stack":       {"fullstack", "full stack developer"},
	"devops":           {"site reliability", "sre", "platform engineer"},
	"data scientist":   {"data science", "machine learning engineer", "ml engineer"},
	"machine learning": {"ml", "ai engineer"},
	"qa":               {"quality assurance", "test engineer", "sdet"},
	"designer":         {"ui designer", "ux designer", "product designer"},
	"mobile":           {"android", "ios", "react native", "flutter"},
	"hr":               {"human resources", "recruiter", "talent acquisition"},
	"sales":            {"business development", "account executive"},
	"golang":           {"go developer", "go engineer"},
	"js":               {"javascript"},
	"wfh":              {"remote", "work from home"},
}

func GetSynonyms(phrase string) []string {
	v, ok := Synonyms[phrase]
	if !ok {
		return []string{}
	}
	out := make([]string, len(v))
	copy(out, v)
	return out
}

// compactKey finds the spaced synonym key that token spells without
// spaces, e.g. "fullstack" -> "full stack".
func compactKey(token string) (string, bool) {
	for k := range Synonyms {
		if len(k) != len(token)+countSpaces(k) {
			continue
		}
		if removeSpaces(k) == token {
			return k, true
		}
	}
	return "", false
}

func countSpaces(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] == ' ' {
			n++
		}
	}
	return n
}

func removeSpaces(s string) string {
	b := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != ' ' {
			b = append(b, s[i])
		}
	}
	return string(b)
}
