package service

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/service/auth"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// ErrUnsupportedImage is returned when an uploaded avatar is not one of the
// accepted image formats.
var ErrUnsupportedImage = fmt.Errorf("%w: unsupported image format", domain.ErrValidation)

// allowedAvatarTypes are the MIME types accepted for avatar uploads,
// as detected from the file contents rather than the client's declaration.
var allowedAvatarTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// UserService owns profile and credential maintenance for existing users.
type UserService struct {
	db         *sql.DB
	users      store.UserStore
	tokens     auth.TokenService
	uploadsDir string
	logger     *slog.Logger
}

// NewUserService creates a new UserService with the given dependencies.
// db may be nil, in which case mutations run outside transactions; if
// logger is nil, the process default is used.
func NewUserService(
	db *sql.DB,
	users store.UserStore,
	tokens auth.TokenService,
	uploadsDir string,
	logger *slog.Logger,
) *UserService {
	if users == nil {
		panic("user store cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &UserService{
		db:         db,
		users:      users,
		tokens:     tokens,
		uploadsDir: uploadsDir,
		logger:     logger.With(slog.String("component", "user_service")),
	}
}

// mutateUser runs fn against the user store, wrapped in a transaction when
// the service holds a database handle.
func (s *UserService) mutateUser(ctx context.Context, fn func(users store.UserStore) error) error {
	if s.db == nil {
		return fn(s.users)
	}
	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return fn(s.users.WithTx(tx))
	})
}

// GetProfile returns the user's current record.
func (s *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return s.users.GetByID(ctx, userID)
}

// UpdateProfile changes the user's name and email. Uniqueness against all
// other users is enforced by the store; the caller's own row is naturally
// excluded since it is the row being updated.
func (s *UserService) UpdateProfile(
	ctx context.Context,
	userID uuid.UUID,
	name, email string,
) (*domain.User, error) {
	var user *domain.User
	err := s.mutateUser(ctx, func(users store.UserStore) error {
		var err error
		user, err = users.GetByID(ctx, userID)
		if err != nil {
			return err
		}

		user.Name = strings.TrimSpace(name)
		user.Email = strings.TrimSpace(email)

		return users.Update(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("profile updated", "user_id", userID)
	return user, nil
}

// UpdatePassword re-hashes and stores a new password, then revokes every
// other session the user holds so a stolen token dies with the old password.
// The token presented with the current request is spared so the caller
// stays logged in.
func (s *UserService) UpdatePassword(
	ctx context.Context,
	userID uuid.UUID,
	newPassword, currentToken string,
) error {
	err := s.mutateUser(ctx, func(users store.UserStore) error {
		user, err := users.GetByID(ctx, userID)
		if err != nil {
			return err
		}

		user.Password = newPassword
		if err := user.Validate(); err != nil {
			return err
		}

		return users.Update(ctx, user)
	})
	if err != nil {
		return err
	}

	if s.tokens != nil {
		if err := s.tokens.RevokeOthers(ctx, userID, currentToken); err != nil {
			s.logger.Warn("failed to revoke other sessions after password change",
				"error", err, "user_id", userID)
		}
	}

	s.logger.Info("password updated", "user_id", userID)
	return nil
}

// ValidateAvatar checks that an uploaded avatar is a supported image format
// by sniffing its leading bytes, then rewinds the file so it can still be
// stored. It lets handlers reject a bad upload before committing any other
// part of the request.
func ValidateAvatar(file io.ReadSeeker) error {
	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return fmt.Errorf("failed to read avatar: %w", err)
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("failed to rewind avatar: %w", err)
	}

	if _, ok := allowedAvatarTypes[http.DetectContentType(head[:n])]; !ok {
		return ErrUnsupportedImage
	}
	return nil
}

// SaveAvatar stores an uploaded avatar image and records its path on the
// user. The reader must already be size-bounded by the caller; this method
// additionally verifies the payload is a supported image format by sniffing
// its leading bytes.
func (s *UserService) SaveAvatar(
	ctx context.Context,
	userID uuid.UUID,
	file io.Reader,
) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Sniff the content type from the first 512 bytes.
	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, fmt.Errorf("failed to read avatar: %w", err)
	}
	head = head[:n]

	ext, ok := allowedAvatarTypes[http.DetectContentType(head)]
	if !ok {
		return nil, ErrUnsupportedImage
	}

	if err := os.MkdirAll(s.uploadsDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create uploads dir: %w", err)
	}

	avatarPath := filepath.Join(s.uploadsDir, uuid.New().String()+ext)
	out, err := os.Create(avatarPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create avatar file: %w", err)
	}
	defer func() { _ = out.Close() }()

	if _, err := out.Write(head); err != nil {
		return nil, fmt.Errorf("failed to write avatar: %w", err)
	}
	if _, err := io.Copy(out, file); err != nil {
		return nil, fmt.Errorf("failed to write avatar: %w", err)
	}

	oldPath := user.AvatarPath
	user.AvatarPath = avatarPath
	if err := s.users.Update(ctx, user); err != nil {
		_ = os.Remove(avatarPath)
		return nil, err
	}

	if oldPath != "" {
		if err := os.Remove(oldPath); err != nil && !os.IsNotExist(err) {
			s.logger.Warn("failed to remove replaced avatar",
				"error", err, "path", oldPath)
		}
	}

	s.logger.Debug("avatar saved", "user_id", userID, "path", avatarPath)
	return user, nil
}
