package ratelimit

import (
	"context"
	"testing"
)

func TestNilBucketAllowsEverything(t *testing.T) {
	var bucket *TokenBucket

	allowed, err := bucket.Allow(context.Background(), "any", 1, 1)
	if err != nil {
		t.Fatalf("nil bucket must not error: %v", err)
	}
	if !allowed {
		t.Fatalf("nil bucket must allow")
	}
}

func TestNewTokenBucketNilClient(t *testing.T) {
	if NewTokenBucket(nil) != nil {
		t.Fatalf("a nil client must produce a nil bucket")
	}
}

func TestBucketTTLCoversFullRefill(t *testing.T) {
	ttl := bucketTTL(2, 30)
	if ttl.Seconds() < 15 {
		t.Fatalf("ttl %v too short to refill the bucket", ttl)
	}
}
