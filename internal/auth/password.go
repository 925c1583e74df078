package auth

import (
	"context"
	"errors"
	"runtime"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"

	"coursehub/internal/apperror"
)

// MaxPasswordBytes is the bcrypt input limit.
const MaxPasswordBytes = 72

// Hasher hashes and verifies passwords with bcrypt. At most `concurrency`
// computations run at once; callers beyond that wait for a slot or for their
// context to end.
type Hasher struct {
	cost int
	sem  *semaphore.Weighted
}

// NewHasher returns a Hasher. A cost outside bcrypt's range falls back to
// bcrypt.DefaultCost, a non-positive concurrency to runtime.NumCPU().
func NewHasher(cost, concurrency int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	if concurrency <= 0 {
		concurrency = runtime.NumCPU()
	}
	return &Hasher{
		cost: cost,
		sem:  semaphore.NewWeighted(int64(concurrency)),
	}
}

// Hash returns a self-contained salted digest of password.
func (h *Hasher) Hash(ctx context.Context, password string) (string, error) {
	if len(password) > MaxPasswordBytes {
		return "", apperror.BadRequest("Password too long")
	}

	if err := h.sem.Acquire(ctx, 1); err != nil {
		return "", apperror.Internal("Failed to hash password")
	}
	defer h.sem.Release(1)

	digest, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", apperror.Internal("Failed to hash password")
	}
	return string(digest), nil
}

// Verify reports whether password matches digest. A wrong password is
// (false, nil); only a corrupt digest is an error.
func (h *Hasher) Verify(ctx context.Context, password, digest string) (bool, error) {
	if len(password) > MaxPasswordBytes {
		return false, nil
	}

	if err := h.sem.Acquire(ctx, 1); err != nil {
		return false, apperror.Internal("Failed to verify password")
	}
	defer h.sem.Release(1)

	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, apperror.Internal("Failed to verify password")
	}
}
