package domain

// Language identifies a repository language filter on the popular screen
type Language string

// AllLanguages is the distinguished language that applies no filter
const AllLanguages Language = "All"

// DefaultLanguages is the language bar shown when the config does not override it
var DefaultLanguages = []Language{AllLanguages, "JavaScript", "Ruby", "Java", "CSS", "Python"}

// Owner is the account that owns a repository
type Owner struct {
	Login     string
	AvatarURL string
}

// Repo represents a ranked GitHub repository
type Repo struct {
	Name       string
	Owner      Owner
	HTMLURL    string // unique per repository
	Stars      int
	Forks      int
	OpenIssues int
}

// Profile represents a GitHub user taking part in a battle
type Profile struct {
	Login       string
	Name        string
	Location    string
	Company     string
	Followers   int
	Following   int
	PublicRepos int
	AvatarURL   string
	HTMLURL     string
}
