package repository

import "context"

// PendingRequestStore keeps at most one pending video per user. Last write wins.
type PendingRequestStore interface {
	Put(ctx context.Context, userID, videoID string) error
	// Take atomically reads and removes the entry for userID.
	Take(ctx context.Context, userID string) (videoID string, ok bool, err error)
	// Discard removes the entry for userID only if it still holds videoID.
	Discard(ctx context.Context, userID, videoID string) (bool, error)
	// PutIfAbsent stores videoID only when userID has no entry; a newer request always wins.
	PutIfAbsent(ctx context.Context, userID, videoID string) (bool, error)
	Len() int
}
