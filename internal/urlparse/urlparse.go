// Package urlparse classifies artifact URLs into models, datasets and code repositories.
package urlparse

import (
	"net/url"
	"strings"

	"github.com/huangsam/trustscore/schema"
)

// Known hosts.
const (
	HuggingFaceHost = "huggingface.co"
	GitHubHost      = "github.com"
)

// hfReserved are top-level Hugging Face paths that are not model owners.
var hfReserved = map[string]struct{}{
	"spaces": {}, "docs": {}, "blog": {}, "models": {}, "organizations": {},
	"settings": {}, "login": {}, "join": {}, "pricing": {}, "papers": {}, "collections": {},
}

// Detect returns the source kind of raw.
func Detect(raw string) schema.SourceKind {
	kind, _, _ := parse(raw)
	return kind
}

// Classify parses raw into a target. Unknown URLs keep the URL and have no
// category or name.
func Classify(raw string) schema.Target {
	kind, owner, name := parse(raw)
	target := schema.Target{URL: raw, Kind: kind}
	if cat, ok := schema.CategoryOf(kind); ok {
		target.Category = &cat
		target.Owner = owner
		target.Name = name
		target.RepoID = owner + "/" + name
	}
	return target
}

func parse(raw string) (schema.SourceKind, string, string) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return schema.UnknownSource, "", ""
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	segments := splitPath(u.Path)

	switch host {
	case HuggingFaceHost:
		if len(segments) >= 3 && segments[0] == "datasets" {
			return schema.HFDatasetSource, segments[1], segments[2]
		}
		if len(segments) >= 2 {
			if _, reserved := hfReserved[segments[0]]; reserved || segments[0] == "datasets" {
				return schema.UnknownSource, "", ""
			}
			return schema.HFModelSource, segments[0], segments[1]
		}
	case GitHubHost:
		if len(segments) >= 2 {
			return schema.GitHubRepoSource, segments[0], strings.TrimSuffix(segments[1], ".git")
		}
	}
	return schema.UnknownSource, "", ""
}

func splitPath(p string) []string {
	var out []string
	for s := range strings.SplitSeq(p, "/") {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
