// Package repourl classifies repository URLs and builds raw-content URLs for
// the CHANGELOG.md of GitHub, GitLab, Gitea and Bitbucket repositories.
//
// All functions are pure string transformations; nothing here performs I/O.
package repourl

import (
	"fmt"
	"regexp"
	"strings"
)

// RepoType identifies a hosting platform.
type RepoType string

const (
	Auto      RepoType = "auto"
	GitHub    RepoType = "github"
	Gitea     RepoType = "gitea"
	GitLab    RepoType = "gitlab"
	Bitbucket RepoType = "bitbucket"
)

// ChangelogFile is the file name appended to constructed URLs.
const ChangelogFile = "CHANGELOG.md"

const githubCloud = "github.com"

// ValidRepoTypes returns the accepted repo type names, including auto.
func ValidRepoTypes() []string {
	return []string{string(Auto), string(GitHub), string(Gitea), string(GitLab), string(Bitbucket)}
}

// ParseRepoType converts s into a RepoType. An empty string means Auto.
func ParseRepoType(s string) (RepoType, error) {
	switch t := RepoType(strings.ToLower(strings.TrimSpace(s))); t {
	case "":
		return Auto, nil
	case Auto, GitHub, Gitea, GitLab, Bitbucket:
		return t, nil
	default:
		return "", fmt.Errorf("invalid repo type %q (expected one of: %s)", s, strings.Join(ValidRepoTypes(), ", "))
	}
}

var (
	repoRootPattern   = regexp.MustCompile(`^https?://([^/]+)/([^/]+)/([^/]+)$`)
	domainPattern     = regexp.MustCompile(`^https?://([^/]+)/`)
	githubBlobPattern = regexp.MustCompile(`^https?://([^/]+)/([^/]+)/([^/]+)/blob/(.+)$`)
	sourceFilePattern = regexp.MustCompile(`(?i)\.(md|txt|json|yml|yaml|js|ts|py|java|cpp|h|hpp)$`)
	rawRefFilePattern = regexp.MustCompile(`/raw/([^/]+)/CHANGELOG\.md$`)
)

// nonRootMarkers are path fragments that only appear in file URLs.
var nonRootMarkers = []string{"/blob/", "/-/blob/", "/raw/", "/-/raw/", "/src/"}

// InvalidURLError is returned when a repository URL does not reduce to
// exactly domain/owner/repo.
type InvalidURLError struct {
	URL string
}

func (e *InvalidURLError) Error() string {
	return fmt.Sprintf("invalid repository URL format: %s", e.URL)
}

// IsURL reports whether s starts with http:// or https://.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// IsRepoRootURL reports whether s is a URL naming a repository itself
// (https://host/owner/repo) rather than a file inside it.
func IsRepoRootURL(s string) bool {
	if !IsURL(s) {
		return false
	}

	normalized := strings.TrimSuffix(s, "/")

	for _, marker := range nonRootMarkers {
		if strings.Contains(normalized, marker) {
			return false
		}
	}
	if sourceFilePattern.MatchString(normalized) {
		return false
	}

	return repoRootPattern.MatchString(normalized)
}

// DetectRepoType returns explicit unchanged unless it is Auto or empty, in
// which case the platform is guessed from the URL's domain. Unknown domains
// and unparseable URLs are treated as Gitea, the most common self-hosted
// choice.
func DetectRepoType(repoURL string, explicit RepoType) RepoType {
	if explicit != "" && explicit != Auto {
		return explicit
	}

	m := domainPattern.FindStringSubmatch(strings.TrimSuffix(repoURL, "/"))
	if m == nil {
		return Gitea
	}

	domain := strings.ToLower(m[1])
	switch {
	case domain == githubCloud, strings.Contains(domain, "github"):
		return GitHub
	case strings.Contains(domain, "gitlab"):
		return GitLab
	case strings.Contains(domain, "bitbucket"):
		return Bitbucket
	default:
		return Gitea
	}
}

// Repo is a repository URL split into its parts.
type Repo struct {
	Domain string
	Owner  string
	Name   string
}

// Split strips one trailing slash and a ".git" suffix from repoURL and
// splits it into domain, owner and repository name.
func Split(repoURL string) (Repo, error) {
	normalized := strings.TrimSuffix(repoURL, "/")
	normalized = strings.TrimSuffix(normalized, ".git")

	m := repoRootPattern.FindStringSubmatch(normalized)
	if m == nil {
		return Repo{}, &InvalidURLError{URL: repoURL}
	}

	return Repo{Domain: m[1], Owner: m[2], Name: m[3]}, nil
}

// ChangelogURL builds the raw-content URL of CHANGELOG.md at ref.
//
//	github (github.com)   https://raw.githubusercontent.com/{owner}/{repo}/{ref}/CHANGELOG.md
//	github (enterprise)   https://{domain}/{owner}/{repo}/raw/{ref}/CHANGELOG.md
//	gitea                 https://{domain}/{owner}/{repo}/raw/branch/{ref}/CHANGELOG.md
//	gitlab                https://{domain}/{owner}/{repo}/-/raw/{ref}/CHANGELOG.md
//	bitbucket             https://{domain}/{owner}/{repo}/raw/{ref}/CHANGELOG.md
func ChangelogURL(repoURL, ref string, repoType RepoType) (string, error) {
	repo, err := Split(repoURL)
	if err != nil {
		return "", err
	}

	base := fmt.Sprintf("https://%s/%s/%s", repo.Domain, repo.Owner, repo.Name)

	switch DetectRepoType(repoURL, repoType) {
	case GitHub:
		if repo.Domain == githubCloud {
			return fmt.Sprintf("https://raw.githubusercontent.com/%s/%s/%s/%s", repo.Owner, repo.Name, ref, ChangelogFile), nil
		}
		return fmt.Sprintf("%s/raw/%s/%s", base, ref, ChangelogFile), nil
	case GitLab:
		return fmt.Sprintf("%s/-/raw/%s/%s", base, ref, ChangelogFile), nil
	case Bitbucket:
		return fmt.Sprintf("%s/raw/%s/%s", base, ref, ChangelogFile), nil
	default:
		return fmt.Sprintf("%s/raw/branch/%s/%s", base, ref, ChangelogFile), nil
	}
}

// BlobToRaw rewrites a browsing URL into its raw-content equivalent. URLs
// that match no known pattern are returned unchanged.
func BlobToRaw(url string) string {
	if m := githubBlobPattern.FindStringSubmatch(url); m != nil {
		domain, owner, repo, rest := m[1], m[2], m[3], m[4]
		if domain == githubCloud {
			return fmt.Sprintf("https://raw.githubusercontent.com/%s/%s/%s", owner, repo, rest)
		}
		return strings.Replace(url, "/blob/", "/raw/", 1)
	}

	switch {
	case strings.Contains(url, "/-/blob/"):
		return strings.Replace(url, "/-/blob/", "/-/raw/", 1)
	case strings.Contains(url, "/src/branch/"):
		return strings.Replace(url, "/src/branch/", "/raw/branch/", 1)
	case strings.Contains(url, "/src/"):
		return strings.Replace(url, "/src/", "/raw/", 1)
	default:
		return url
	}
}

// AlternateRawURL returns the other platform's raw URL shape for a raw
// CHANGELOG.md URL: Gitea's /raw/branch/ becomes /raw/, and a plain
// /raw/<ref>/CHANGELOG.md becomes /raw/branch/<ref>/CHANGELOG.md. It is used
// as a single retry after a 404. The boolean is false when url has neither
// shape.
func AlternateRawURL(url string) (string, bool) {
	if strings.Contains(url, "/raw/branch/") {
		return strings.Replace(url, "/raw/branch/", "/raw/", 1), true
	}
	if rawRefFilePattern.MatchString(url) {
		return rawRefFilePattern.ReplaceAllString(url, "/raw/branch/$1/CHANGELOG.md"), true
	}
	return "", false
}
