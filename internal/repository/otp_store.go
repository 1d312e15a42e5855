package repository

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCodeInvalid is returned when an OTP or reset token does not match
// or has expired.  Expired and wrong codes are indistinguishable on
// purpose.
var ErrCodeInvalid = errors.New("code invalid or expired")

// OTPStore keeps short-lived verification codes in Redis.  Keys carry a
// TTL so expiry needs no sweeper, and consuming a code deletes the key
// so it is single-use.  With Redis unavailable the store degrades to
// rejecting everything rather than accepting anything.
type OTPStore struct {
	rdb *redis.Client
}

// NewOTPStore constructs an OTPStore over the given Redis client.
func NewOTPStore(rdb *redis.Client) *OTPStore {
	return &OTPStore{rdb: rdb}
}

func otpKey(userID uint64) string  { return fmt.Sprintf("otp:verify:%d", userID) }
func resetKey(token string) string { return "otp:reset:" + token }

// IssueOTP generates a 6-digit code for the user and stores it with the
// given TTL, replacing any previous code.
func (s *OTPStore) IssueOTP(ctx context.Context, userID uint64, ttl time.Duration) (string, error) {
	if s.rdb == nil {
		return "", errors.New("otp store unavailable")
	}
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	code := fmt.Sprintf("%06d", n.Int64())
	if err := s.rdb.Set(ctx, otpKey(userID), code, ttl).Err(); err != nil {
		return "", err
	}
	return code, nil
}

// ConsumeOTP validates and burns the user's code.  Returns
// ErrCodeInvalid on mismatch, expiry, or absence.
func (s *OTPStore) ConsumeOTP(ctx context.Context, userID uint64, code string) error {
	if s.rdb == nil {
		return ErrCodeInvalid
	}
	key := otpKey(userID)
	stored, err := s.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return ErrCodeInvalid
	}
	if err != nil {
		return err
	}
	if stored != code {
		return ErrCodeInvalid
	}
	return s.rdb.Del(ctx, key).Err()
}

// IssueResetToken creates an opaque password reset token mapping to the
// user ID, valid for ttl.
func (s *OTPStore) IssueResetToken(ctx context.Context, userID uint64, ttl time.Duration) (string, error) {
	if s.rdb == nil {
		return "", errors.New("otp store unavailable")
	}
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	token := hex.EncodeToString(raw)
	if err := s.rdb.Set(ctx, resetKey(token), userID, ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// ConsumeResetToken resolves and burns a reset token, returning the
// user ID it was issued for.
func (s *OTPStore) ConsumeResetToken(ctx context.Context, token string) (uint64, error) {
	if s.rdb == nil {
		return 0, ErrCodeInvalid
	}
	key := resetKey(token)
	userID, err := s.rdb.Get(ctx, key).Uint64()
	if errors.Is(err, redis.Nil) {
		return 0, ErrCodeInvalid
	}
	if err != nil {
		return 0, err
	}
	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		return 0, err
	}
	return userID, nil
}
