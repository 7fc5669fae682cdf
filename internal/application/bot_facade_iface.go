package application

import "context"

// ---- small interfaces to decouple the facade from concrete usecase structs ----

type VideoClaimer interface {
	Claim(ctx context.Context, userID string) (bool, error)
}

type Messages interface {
	T(key string, args ...interface{}) string
}
