// Copyright 2026 The OpenChoreo Authors
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/go-git/go-git/v5/storage/memory"
	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
)

// RefLister lists the tags and branches of a repository.
type RefLister interface {
	Tags(ctx context.Context) ([]string, error)
	Branches(ctx context.Context) ([]string, error)
}

// RefListerType selects a RefLister implementation.
type RefListerType string

const (
	// RefListerAPI pages through the GitHub REST API.
	RefListerAPI RefListerType = "api"
	// RefListerGit speaks the git smart protocol against the repository URL.
	RefListerGit RefListerType = "git"
)

const listPageSize = 100

// APIRefLister lists refs with the GitHub REST API.
type APIRefLister struct {
	client *github.Client
	owner  string
	repo   string
}

// NewAPIRefLister creates a lister for owner/repo. A non-empty baseURL targets a GitHub
// Enterprise instance; a non-empty token authenticates requests.
func NewAPIRefLister(owner, repo, token, baseURL string, httpClient *http.Client) (*APIRefLister, error) {
	if token != "" {
		ctx := context.Background()
		if httpClient != nil {
			ctx = context.WithValue(ctx, oauth2.HTTPClient, httpClient)
		}
		httpClient = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
	}
	client := github.NewClient(httpClient)

	if baseURL != "" {
		var err error
		client, err = client.WithEnterpriseURLs(baseURL, baseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to configure GitHub API base URL: %w", err)
		}
	}
	return &APIRefLister{client: client, owner: owner, repo: repo}, nil
}

// Tags returns every tag name.
func (l *APIRefLister) Tags(ctx context.Context) ([]string, error) {
	opts := &github.ListOptions{PerPage: listPageSize}
	var names []string
	for {
		tags, resp, err := l.client.Repositories.ListTags(ctx, l.owner, l.repo, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list tags: %w", err)
		}
		for _, tag := range tags {
			names = append(names, tag.GetName())
		}
		if resp.NextPage == 0 {
			return names, nil
		}
		opts.Page = resp.NextPage
	}
}

// Branches returns every branch name.
func (l *APIRefLister) Branches(ctx context.Context) ([]string, error) {
	opts := &github.BranchListOptions{ListOptions: github.ListOptions{PerPage: listPageSize}}
	var names []string
	for {
		branches, resp, err := l.client.Repositories.ListBranches(ctx, l.owner, l.repo, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list branches: %w", err)
		}
		for _, branch := range branches {
			names = append(names, branch.GetName())
		}
		if resp.NextPage == 0 {
			return names, nil
		}
		opts.Page = resp.NextPage
	}
}

// GitRefLister lists refs by advertising the remote's references, like git ls-remote.
type GitRefLister struct {
	url   string
	token string
}

// NewGitRefLister creates a lister for the repository at url.
func NewGitRefLister(url, token string) *GitRefLister {
	return &GitRefLister{url: url, token: token}
}

// Tags returns every tag name.
func (l *GitRefLister) Tags(ctx context.Context) ([]string, error) {
	tags, _, err := l.list(ctx)
	return tags, err
}

// Branches returns every branch name.
func (l *GitRefLister) Branches(ctx context.Context) ([]string, error) {
	_, branches, err := l.list(ctx)
	return branches, err
}

func (l *GitRefLister) list(ctx context.Context) (tags, branches []string, err error) {
	remote := git.NewRemote(memory.NewStorage(), &gitconfig.RemoteConfig{
		Name: git.DefaultRemoteName,
		URLs: []string{l.url},
	})

	opts := &git.ListOptions{}
	if l.token != "" {
		opts.Auth = &githttp.BasicAuth{Username: "x-access-token", Password: l.token}
	}
	refs, err := remote.ListContext(ctx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list remote %s: %w", l.url, err)
	}
	tags, branches = splitRefs(refs)
	return tags, branches, nil
}

// splitRefs separates tag and branch names, dropping peeled tag entries and duplicates.
func splitRefs(refs []*plumbing.Reference) (tags, branches []string) {
	seen := make(map[plumbing.ReferenceName]bool, len(refs))
	for _, ref := range refs {
		name := ref.Name()
		if seen[name] || strings.HasSuffix(name.String(), "^{}") {
			continue
		}
		seen[name] = true
		switch {
		case name.IsTag():
			tags = append(tags, name.Short())
		case name.IsBranch():
			branches = append(branches, name.Short())
		}
	}
	sort.Strings(branches)
	return tags, branches
}
