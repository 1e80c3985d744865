package usecase

import (
	"context"
	stderrors "errors"
	"net/http"

	"github.com/cairogo-gateway/internal/domain/repository"
	"github.com/cairogo-gateway/internal/favorites"
	"github.com/cairogo-gateway/internal/infrastructure/backend"
	"github.com/cairogo-gateway/internal/pkg/errors"
)

// backendError maps a REST client error to an AppError. notFound is used for
// a 404 answer; nil maps it to ErrAttractionNotFound.
func backendError(err error, notFound *errors.AppError) error {
	if err == nil {
		return nil
	}

	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		return err
	}

	switch {
	case stderrors.Is(err, backend.ErrCircuitOpen):
		return errors.ErrMLUnavailable.Wrap(err)
	case stderrors.Is(err, favorites.ErrNoUser):
		return errors.ErrUnauthorized.Wrap(err)
	case stderrors.Is(err, favorites.ErrInvalidKey):
		return errors.ErrInvalidRequest.Wrap(err)
	case stderrors.Is(err, favorites.ErrNotFavorite):
		return errors.ErrFavoriteNotFound.Wrap(err)
	case stderrors.Is(err, context.Canceled):
		return err
	}

	switch status := backend.StatusOf(err); {
	case status == http.StatusUnauthorized:
		return errors.ErrSessionExpired.Wrap(err)
	case status == http.StatusNotFound:
		if notFound == nil {
			notFound = errors.ErrAttractionNotFound
		}
		return notFound.Wrap(err)
	case status == http.StatusConflict:
		return errors.ErrConflict.Wrap(err)
	case status >= 400 && status < 500:
		return errors.ErrInvalidRequest.Wrap(err)
	default:
		return errors.ErrBackendUnavailable.Wrap(err)
	}
}

// storageError wraps a failed session or ledger write.
func storageError(err error) error {
	if err == nil {
		return nil
	}
	return errors.ErrStorageError.Wrap(err)
}

// requireUser returns the signed-in user of sess.
func requireUser(sess repository.Session) (string, error) {
	if !sess.IsAuthenticated() {
		return "", errors.ErrUnauthorized
	}
	u := sess.User()
	if u == nil || u.ID == "" {
		return "", errors.ErrUnauthorized
	}
	return u.ID, nil
}
