package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	PostKeyPrefix        = "post:%d"
	ConnectionsKeyPrefix = "connections:%s"
)

const (
	// PostTTL bounds staleness of cached post documents between writes.
	PostTTL = 5 * time.Minute
	// ConnectionsTTL is a backstop only; connection sets are invalidated
	// explicitly whenever the connection graph changes.
	ConnectionsTTL = 30 * time.Minute
)

func PostKey(postID uint) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

func ConnectionsKey(uid string) string {
	return fmt.Sprintf(ConnectionsKeyPrefix, uid)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID))
}

// InvalidateConnections drops the cached connection sets of both endpoints of
// an edge. Called on every connection graph write.
func InvalidateConnections(ctx context.Context, uids ...string) {
	for _, uid := range uids {
		Invalidate(ctx, ConnectionsKey(uid))
	}
}
