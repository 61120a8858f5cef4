package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// AdminSessionKey returns the key holding the active token ID of an admin user.
func (r *CacheKeyStruct) AdminSessionKey(userID int) string {
	return fmt.Sprintf("admin:session:%d", userID)
}

// RateLimitKey returns the fixed-window counter key for a route scope and client IP.
func (r *CacheKeyStruct) RateLimitKey(scope, ip string, window int64) string {
	return fmt.Sprintf("ratelimit:%s:%s:%d", scope, ip, window)
}

// ActivityFeedChannel is the Redis PubSub channel new activity rows are published on.
func (r *CacheKeyStruct) ActivityFeedChannel() string {
	return "activities:feed"
}

var CacheKey = NewCacheKeyStruct()
