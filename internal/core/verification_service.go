package core

import (
	"context"
	"errors"

	"firebase.google.com/go/v4/auth"
)

// ErrMissingUID is returned when no uid is given.
var ErrMissingUID = errors.New("missing uid")

// UserAdmin is the part of the Firebase Auth client the verification
// service uses. *auth.Client satisfies it.
type UserAdmin interface {
	UpdateUser(ctx context.Context, uid string, user *auth.UserToUpdate) (*auth.UserRecord, error)
}

// verificationService implements the VerificationService interface.
type verificationService struct {
	admin UserAdmin
}

// NewVerificationService creates a new VerificationService instance.
func NewVerificationService(admin UserAdmin) VerificationService {
	return &verificationService{admin: admin}
}

// VerifyTestUser sets emailVerified on the account. Auth errors come back
// unwrapped; the endpoint shows their message to the caller as is.
func (s *verificationService) VerifyTestUser(ctx context.Context, uid string) (string, error) {
	if uid == "" {
		return "", ErrMissingUID
	}
	record, err := s.admin.UpdateUser(ctx, uid, (&auth.UserToUpdate{}).EmailVerified(true))
	if err != nil {
		return "", err
	}
	if record == nil || record.UserInfo == nil {
		return "", nil
	}
	return record.Email, nil
}
