package fetcher

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/google/go-github/v60/github"
	"github.com/huangsam/trustscore/core/engine"
	"github.com/huangsam/trustscore/internal/contract"
	"github.com/huangsam/trustscore/schema"
	"golang.org/x/oauth2"
)

// Reference points for log-scaled GitHub signals.
const (
	ghStarsRef  = 1000
	ghForksRef  = 200
	ghSizeKBRef = 1_000_000
	ghReadmeRef = 10_000
)

var (
	testDirs     = []string{"test", "tests", "testdata", "spec", "__tests__"}
	dataDirs     = []string{"data", "dataset", "datasets"}
	styleConfigs = []string{
		".golangci.yml", ".golangci.yaml", ".editorconfig", ".pre-commit-config.yaml",
		".flake8", "setup.cfg", "pyproject.toml", "ruff.toml", ".eslintrc", ".eslintrc.json", ".prettierrc",
	}
	claimKeywords = []string{"benchmark", "accuracy", "evaluation", "results"}
)

// GitHubProvider describes code repositories through the GitHub REST API.
type GitHubProvider struct {
	client *github.Client
	now    func() time.Time
}

var _ contract.ContextProvider = &GitHubProvider{} // Compile-time check

// NewGitHubProvider returns a provider using token when set. baseURL
// overrides the API root, which is useful for GitHub Enterprise.
func NewGitHubProvider(token, baseURL string, timeout time.Duration) (*GitHubProvider, error) {
	httpClient := &http.Client{}
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), ts)
	}
	httpClient.Timeout = timeout

	client := github.NewClient(httpClient)
	if baseURL != "" {
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		u, err := url.Parse(baseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid GitHub API URL %q: %w", baseURL, err)
		}
		client.BaseURL = u
	}
	return &GitHubProvider{client: client, now: time.Now}, nil
}

// Name implements contract.ContextProvider.
func (g *GitHubProvider) Name() string { return "github" }

// Supports implements contract.ContextProvider.
func (g *GitHubProvider) Supports(target schema.Target) bool {
	return target.Kind == schema.GitHubRepoSource
}

// Fetch implements contract.ContextProvider. Only the repository lookup is
// required; the other calls add signals when they succeed.
func (g *GitHubProvider) Fetch(ctx context.Context, target schema.Target) (engine.Context, error) {
	owner, name := target.Owner, target.Name
	repo, _, err := g.client.Repositories.Get(ctx, owner, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get repository %s/%s: %w", owner, name, err)
	}

	now := g.now()
	recency := recencyNorm(repo.GetPushedAt().Time, now)
	out := engine.Context{
		"license": licenseOf(repo),
		"ramp": map[string]any{
			"likes_norm":     logNorm(float64(repo.GetStargazersCount()), ghStarsRef),
			"downloads_norm": logNorm(float64(repo.GetForksCount()), ghForksRef),
			"recency_norm":   recency,
		},
		"size_components": map[string]any{
			"loc_norm": logNorm(float64(repo.GetSize()), ghSizeKBRef),
		},
	}

	if pct, ok := g.topContributorPct(ctx, owner, name); ok {
		out["repo_meta"] = map[string]any{"top_contributor_pct": pct}
	}

	entries := g.rootEntries(ctx, owner, name)
	hasTests := slices.ContainsFunc(testDirs, entries.hasDir)
	hasData := slices.ContainsFunc(dataDirs, entries.hasDir)
	hasStyle := slices.ContainsFunc(styleConfigs, entries.has) || entries.hasDir(".github")

	readme, readmeSize := g.readme(ctx, owner, name)
	docNorm := logNorm(float64(readmeSize), ghReadmeRef)

	out["availability"] = map[string]any{
		"has_code":    true,
		"has_dataset": hasData,
		"links_ok":    !repo.GetArchived() && !repo.GetDisabled(),
	}
	out["code_quality"] = map[string]any{
		"test_coverage_norm":   boolNorm(hasTests),
		"style_norm":           boolNorm(hasStyle),
		"comment_ratio_norm":   docNorm,
		"maintainability_norm": recency,
	}
	out["dataset_quality"] = map[string]any{"documentation": docNorm}

	if readme != "" {
		lower := strings.ToLower(readme)
		passed := 0
		for _, kw := range claimKeywords {
			if strings.Contains(lower, kw) {
				passed++
			}
		}
		out["requirements_passed"] = passed
		out["requirements_total"] = len(claimKeywords)
	}

	return out, nil
}

func licenseOf(repo *github.Repository) string {
	lic := repo.GetLicense()
	if lic == nil {
		return ""
	}
	if id := lic.GetSPDXID(); id != "" && id != "NOASSERTION" {
		return id
	}
	return lic.GetKey()
}

func (g *GitHubProvider) topContributorPct(ctx context.Context, owner, name string) (float64, bool) {
	opts := &github.ListContributorsOptions{ListOptions: github.ListOptions{PerPage: 100}}
	contributors, _, err := g.client.Repositories.ListContributors(ctx, owner, name, opts)
	if err != nil {
		slog.Debug("skipping contributors", "repo", owner+"/"+name, "err", err)
		return 0, false
	}
	var total, top int
	for _, c := range contributors {
		n := c.GetContributions()
		total += n
		top = max(top, n)
	}
	if total == 0 {
		return 0, false
	}
	return float64(top) / float64(total), true
}

type dirEntries map[string]string // name -> type

func (d dirEntries) has(name string) bool {
	_, ok := d[name]
	return ok
}

func (d dirEntries) hasDir(name string) bool {
	return d[name] == "dir"
}

func (g *GitHubProvider) rootEntries(ctx context.Context, owner, name string) dirEntries {
	_, dir, _, err := g.client.Repositories.GetContents(ctx, owner, name, "", nil)
	if err != nil {
		slog.Debug("skipping repository contents", "repo", owner+"/"+name, "err", err)
		return dirEntries{}
	}
	out := make(dirEntries, len(dir))
	for _, entry := range dir {
		out[strings.ToLower(entry.GetName())] = entry.GetType()
	}
	return out
}

func (g *GitHubProvider) readme(ctx context.Context, owner, name string) (string, int) {
	readme, _, err := g.client.Repositories.GetReadme(ctx, owner, name, nil)
	if err != nil {
		slog.Debug("skipping readme", "repo", owner+"/"+name, "err", err)
		return "", 0
	}
	content, err := readme.GetContent()
	if err != nil {
		return "", readme.GetSize()
	}
	return content, max(readme.GetSize(), len(content))
}
