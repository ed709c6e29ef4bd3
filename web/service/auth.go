package service

import (
	"errors"
	"time"

	"boardhub/database"
	"boardhub/database/model"
	"boardhub/logger"
	"boardhub/util/crypto"

	"github.com/google/uuid"
)

// SessionLifetime is how long a freshly issued session stays valid.
const SessionLifetime = 7 * 24 * time.Hour

type AuthService struct{}

// Signup registers a new account and issues its first session.
func (s *AuthService) Signup(email, password, name string) (*model.User, *model.Session, error) {
	db := database.GetDB()

	var existing model.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, nil, errors.New("Email already registered")
	} else if !database.IsNotFound(err) {
		return nil, nil, err
	}

	hash, err := crypto.HashPasswordAsBcrypt(password)
	if err != nil {
		return nil, nil, err
	}

	user := &model.User{
		Id:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Name:         name,
	}
	if err := db.Create(user).Error; err != nil {
		return nil, nil, err
	}

	sess, err := s.createSession(user.Id)
	if err != nil {
		return nil, nil, err
	}
	return user, sess, nil
}

// Login checks credentials and issues a fresh session. Banned accounts are
// refused even with correct credentials.
func (s *AuthService) Login(email, password string) (*model.User, *model.Session, error) {
	db := database.GetDB()

	user := &model.User{}
	err := db.Where("email = ?", email).First(user).Error
	if database.IsNotFound(err) {
		return nil, nil, ErrInvalidCredentials
	} else if err != nil {
		return nil, nil, err
	}

	if !crypto.CheckPasswordHash(user.PasswordHash, password) {
		return nil, nil, ErrInvalidCredentials
	}
	if user.IsBanned {
		return nil, nil, ErrForbidden
	}

	sess, err := s.createSession(user.Id)
	if err != nil {
		return nil, nil, err
	}
	return user, sess, nil
}

// Logout deletes the session row for the token. Deleting an unknown token is
// a no-op.
func (s *AuthService) Logout(token string) error {
	if token == "" {
		return nil
	}
	return database.GetDB().Delete(&model.Session{}, "id = ?", token).Error
}

// ResolveSession maps a cookie token to a user. A missing or expired row, or
// a banned user, resolves as anonymous (nil, nil). Expired rows are left in
// place; the cleanup job reaps them.
func (s *AuthService) ResolveSession(token string) (*model.User, error) {
	db := database.GetDB()

	sess := &model.Session{}
	err := db.Where("id = ?", token).First(sess).Error
	if database.IsNotFound(err) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	if time.Now().After(sess.ExpiresAt) {
		return nil, nil
	}

	user := &model.User{}
	err = db.Where("id = ?", sess.UserId).First(user).Error
	if database.IsNotFound(err) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	if user.IsBanned {
		return nil, nil
	}
	return user, nil
}

func (s *AuthService) createSession(userId string) (*model.Session, error) {
	sess := &model.Session{
		Id:        uuid.NewString(),
		UserId:    userId,
		ExpiresAt: time.Now().Add(SessionLifetime),
	}
	if err := database.GetDB().Create(sess).Error; err != nil {
		return nil, err
	}
	return sess, nil
}

// DeleteExpiredSessions removes sessions whose expiry is older than the
// cutoff. Used by the cleanup job; resolution never depends on it.
func (s *AuthService) DeleteExpiredSessions(olderThan time.Duration) error {
	cutoff := time.Now().Add(-olderThan)
	result := database.GetDB().Where("expires_at < ?", cutoff).Delete(&model.Session{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		logger.Debugf("pruned %d expired sessions", result.RowsAffected)
	}
	return nil
}
