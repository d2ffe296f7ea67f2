// Copyright 2026 The OpenChoreo Authors
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"

	"github.com/openchoreo/valuesmcp/internal/metrics"
)

// Defaults applied by NewGitHub to zero Config fields.
const (
	DefaultRawBaseURL = "https://raw.githubusercontent.com"
	DefaultTimeout    = 10 * time.Second
	DefaultMaxRetries = 3
	DefaultCacheSize  = 128
	DefaultCacheTTL   = 5 * time.Minute

	maxFileBytes = 16 << 20
)

// Config locates the repository and tunes fetching.
type Config struct {
	Owner string
	Repo  string
	// RawBaseURL serves raw file content as {RawBaseURL}/{owner}/{repo}/{ref}/{path}.
	RawBaseURL string
	// APIBaseURL targets a GitHub Enterprise API. Empty means github.com.
	APIBaseURL string
	// GitURL is the clone URL used by the git ref lister.
	GitURL string
	Token  string
	// RefLister selects how tags and branches are listed.
	RefLister  RefListerType
	Timeout    time.Duration
	MaxRetries int
	CacheSize  int
	CacheTTL   time.Duration
}

func (c *Config) applyDefaults() {
	if c.RawBaseURL == "" {
		c.RawBaseURL = DefaultRawBaseURL
	}
	if c.GitURL == "" {
		c.GitURL = fmt.Sprintf("https://github.com/%s/%s.git", c.Owner, c.Repo)
	}
	if c.RefLister == "" {
		c.RefLister = RefListerAPI
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.MaxRetries < 0 {
		c.MaxRetries = 0
	}
	if c.CacheSize <= 0 {
		c.CacheSize = DefaultCacheSize
	}
	if c.CacheTTL <= 0 {
		c.CacheTTL = DefaultCacheTTL
	}
}

// GitHub is a Source backed by a GitHub repository.
type GitHub struct {
	cfg        Config
	httpClient *http.Client
	refs       RefLister
	logger     *slog.Logger
	metrics    *metrics.Metrics
	retryWait  time.Duration

	cache *expirable.LRU[string, *FileInfo]
	group singleflight.Group
}

// Option configures a GitHub source.
type Option func(*GitHub)

// WithHTTPClient sets the client used for raw content and API requests.
func WithHTTPClient(c *http.Client) Option {
	return func(g *GitHub) { g.httpClient = c }
}

// WithRefLister overrides the lister selected by Config.RefLister.
func WithRefLister(l RefLister) Option {
	return func(g *GitHub) { g.refs = l }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(g *GitHub) { g.logger = l }
}

// WithMetrics records fetch latencies.
func WithMetrics(m *metrics.Metrics) Option {
	return func(g *GitHub) { g.metrics = m }
}

// WithRetryInterval sets the initial backoff between retries.
func WithRetryInterval(d time.Duration) Option {
	return func(g *GitHub) { g.retryWait = d }
}

// NewGitHub creates a GitHub source.
func NewGitHub(cfg Config, opts ...Option) (*GitHub, error) {
	if cfg.Owner == "" || cfg.Repo == "" {
		return nil, errors.New("repository owner and name are required")
	}
	cfg.applyDefaults()
	if _, err := url.Parse(cfg.RawBaseURL); err != nil {
		return nil, fmt.Errorf("invalid raw base URL: %w", err)
	}

	g := &GitHub{
		cfg:        cfg,
		httpClient: http.DefaultClient,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		retryWait:  500 * time.Millisecond,
		cache:      expirable.NewLRU[string, *FileInfo](cfg.CacheSize, nil, cfg.CacheTTL),
	}
	for _, opt := range opts {
		opt(g)
	}

	if g.refs == nil {
		switch cfg.RefLister {
		case RefListerAPI:
			lister, err := NewAPIRefLister(cfg.Owner, cfg.Repo, cfg.Token, cfg.APIBaseURL, g.httpClient)
			if err != nil {
				return nil, err
			}
			g.refs = lister
		case RefListerGit:
			g.refs = NewGitRefLister(cfg.GitURL, cfg.Token)
		default:
			return nil, fmt.Errorf("unsupported ref lister %q", cfg.RefLister)
		}
	}
	return g, nil
}

// GetFileContent implements Source.
func (g *GitHub) GetFileContent(ctx context.Context, path, ref string) (string, error) {
	info, err := g.GetFile(ctx, path, ref)
	if err != nil {
		return "", err
	}
	return info.Content, nil
}

// GetFile returns path at ref with its digest. Results are cached; concurrent requests for
// the same file share one fetch.
func (g *GitHub) GetFile(ctx context.Context, path, ref string) (*FileInfo, error) {
	if err := ValidatePath(path); err != nil {
		return nil, err
	}
	if err := ValidateRef(ref); err != nil {
		return nil, err
	}

	key := ref + ":" + path
	if info, ok := g.cache.Get(key); ok {
		return info, nil
	}

	// Shared by every waiting caller; each attempt is bounded by the request timeout.
	fetchCtx := context.WithoutCancel(ctx)
	v, err, shared := g.group.Do(key, func() (any, error) {
		info, err := g.fetch(fetchCtx, path, ref)
		if err != nil {
			return nil, err
		}
		g.cache.Add(key, info)
		return info, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		g.logger.Debug("Shared in-flight fetch", "path", path, "ref", ref)
	}
	return v.(*FileInfo), nil
}

// Purge drops every cached file.
func (g *GitHub) Purge() {
	g.cache.Purge()
}

// GetTags implements Source.
func (g *GitHub) GetTags(ctx context.Context) []string {
	start := time.Now()
	tags, err := g.refs.Tags(ctx)
	g.metrics.ObserveFetch("tags", time.Since(start))
	if err != nil {
		g.logger.Warn("Failed to list tags", "repository", g.repository(), "error", err)
		return []string{}
	}
	return SortTags(tags)
}

// GetBranches implements Source.
func (g *GitHub) GetBranches(ctx context.Context) []string {
	start := time.Now()
	branches, err := g.refs.Branches(ctx)
	g.metrics.ObserveFetch("branches", time.Since(start))
	if err != nil {
		g.logger.Warn("Failed to list branches", "repository", g.repository(), "error", err)
		return []string{}
	}
	out := append([]string{}, branches...)
	sort.Strings(out)
	return out
}

func (g *GitHub) fetch(ctx context.Context, path, ref string) (*FileInfo, error) {
	start := time.Now()
	defer func() { g.metrics.ObserveFetch("file", time.Since(start)) }()

	target := g.rawURL(path, ref)
	logger := g.logger.With("url", target)

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = g.retryWait
	policy := backoff.WithContext(backoff.WithMaxRetries(bo, uint64(g.cfg.MaxRetries)), ctx)

	var content []byte
	err := backoff.RetryNotify(func() error {
		body, err := g.get(ctx, target)
		if err != nil {
			return err
		}
		content = body
		return nil
	}, policy, func(err error, wait time.Duration) {
		logger.Debug("Retrying fetch", "error", err, "wait", wait)
	})
	if err != nil {
		return nil, err
	}

	sum := sha256.Sum256(content)
	logger.Debug("Fetched file", "bytes", len(content))
	return &FileInfo{
		Path:    path,
		Ref:     ref,
		Content: string(content),
		Size:    len(content),
		SHA256:  hex.EncodeToString(sum[:]),
	}, nil
}

// get performs one request. Errors that retrying cannot fix are wrapped as permanent.
func (g *GitHub) get(ctx context.Context, target string) ([]byte, error) {
	reqCtx, cancel := context.WithTimeout(ctx, g.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, target, nil)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("failed to build request: %w", err))
	}
	if g.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+g.cfg.Token)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			if ctx.Err() != nil {
				return nil, backoff.Permanent(fmt.Errorf("%w: %s", ErrTimeout, target))
			}
			return nil, fmt.Errorf("%w: %s after %s", ErrTimeout, target, g.cfg.Timeout)
		}
		if ctx.Err() != nil {
			return nil, backoff.Permanent(err)
		}
		return nil, fmt.Errorf("failed to fetch %s: %w", target, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, backoff.Permanent(fmt.Errorf("%w: %s", ErrNotFound, target))
	case resp.StatusCode >= http.StatusInternalServerError, resp.StatusCode == http.StatusTooManyRequests:
		return nil, fmt.Errorf("failed to fetch %s: status %d", target, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return nil, backoff.Permanent(fmt.Errorf("failed to fetch %s: status %d", target, resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFileBytes+1))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: reading %s", ErrTimeout, target)
		}
		return nil, fmt.Errorf("failed to read %s: %w", target, err)
	}
	if len(body) > maxFileBytes {
		return nil, backoff.Permanent(fmt.Errorf("%s exceeds %d bytes", target, maxFileBytes))
	}
	return body, nil
}

func (g *GitHub) rawURL(path, ref string) string {
	return strings.TrimSuffix(g.cfg.RawBaseURL, "/") + "/" +
		url.PathEscape(g.cfg.Owner) + "/" + url.PathEscape(g.cfg.Repo) + "/" +
		escapeSegments(ref) + "/" + escapeSegments(path)
}

func (g *GitHub) repository() string {
	return g.cfg.Owner + "/" + g.cfg.Repo
}

func escapeSegments(p string) string {
	segments := strings.Split(p, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}
