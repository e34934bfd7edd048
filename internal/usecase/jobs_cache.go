package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"
)

const jobsListCachePattern = "jobs:list:*"

type ListCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

type jobsListCacheKeyInput struct {
	Keyword  string `json:"keyword"`
	Location string `json:"location"`
	Type     string `json:"job_type"`
	Category string `json:"job_category"`
	Skill    string `json:"skill"`
	Limit    int    `json:"limit"`
	Offset   int    `json:"offset"`
}

func normalizeSearchValue(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	s = strings.Join(strings.Fields(s), " ")
	return s
}

// JobsListCacheKey hashes the normalized query so equivalent searches share
// one entry.
func JobsListCacheKey(params JobListParams) string {
	in := jobsListCacheKeyInput{
		Keyword:  normalizeSearchValue(params.Keyword),
		Location: normalizeSearchValue(params.Location),
		Type:     normalizeSearchValue(params.Type),
		Category: normalizeSearchValue(params.Category),
		Skill:    normalizeSearchValue(params.Skill),
		Limit:    params.Limit,
		Offset:   params.Offset,
	}

	b, _ := json.Marshal(in)
	sum := sha256.Sum256(b)
	return "jobs:list:" + hex.EncodeToString(sum[:])
}
