package ports

import "context"

// ActorVerifier confirms that an acting user id belongs to a staff member
// allowed to decide on requests.
type ActorVerifier interface {
	VerifyActor(ctx context.Context, userID string) error
}
