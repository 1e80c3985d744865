package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/cairogo-gateway/internal/pkg/errors"
	"github.com/cairogo-gateway/internal/pkg/utils"
	"github.com/cairogo-gateway/internal/session"
)

const (
	sessionLocal   = "session"
	sessionIDLocal = "session_id"
	rotatorLocal   = "session_rotator"
)

// SessionConfig - cookie that carries the gateway session id
type SessionConfig struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
	// Carry - storage key suffixes that follow the client to a rotated id
	Carry []string
}

type rotator struct {
	manager *session.Manager
	cfg     SessionConfig
	logger  *zap.Logger
}

// Session resolves the session Store of the request from its cookie and
// issues a fresh id when the cookie is missing or malformed.
func Session(manager *session.Manager, cfg SessionConfig, logger *zap.Logger) fiber.Handler {
	r := &rotator{manager: manager, cfg: cfg, logger: logger}
	return func(c *fiber.Ctx) error {
		id := c.Cookies(cfg.CookieName)
		if !manager.ValidID(id) {
			id = manager.NewID()
			setSessionCookie(c, cfg, id)
		}

		st, err := manager.Get(c.Context(), id)
		if err != nil {
			logger.Error("Failed to open session", zap.Error(err))
			return utils.SendError(c, errors.ErrStorageError.Wrap(err))
		}

		c.Locals(sessionLocal, st)
		c.Locals(sessionIDLocal, id)
		c.Locals(rotatorLocal, r)
		return c.Next()
	}
}

func setSessionCookie(c *fiber.Ctx, cfg SessionConfig, id string) {
	c.Cookie(&fiber.Cookie{
		Name:     cfg.CookieName,
		Value:    id,
		Path:     "/",
		Expires:  time.Now().Add(cfg.TTL),
		HTTPOnly: true,
		Secure:   cfg.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// RotateSession runs fn against a Store under a fresh session id. When fn
// succeeds the cookie moves to the new id and the old session is retired,
// otherwise the new one is and the request keeps its id.
func RotateSession(c *fiber.Ctx, fn func(*session.Store) error) error {
	r, ok := c.Locals(rotatorLocal).(*rotator)
	if !ok {
		return errors.ErrInternalServer
	}
	oldID := SessionID(c)

	id, st, err := r.manager.Rotate(c.Context(), oldID, r.cfg.Carry...)
	if err != nil {
		r.logger.Error("Failed to rotate session", zap.Error(err))
		return errors.ErrStorageError.Wrap(err)
	}

	if err := fn(st); err != nil {
		if rerr := r.manager.Retire(c.Context(), id, r.cfg.Carry...); rerr != nil {
			r.logger.Warn("Failed to drop unused session", zap.Error(rerr))
		}
		return err
	}

	if err := r.manager.Retire(c.Context(), oldID, r.cfg.Carry...); err != nil {
		r.logger.Warn("Failed to retire previous session", zap.Error(err))
	}
	setSessionCookie(c, r.cfg, id)
	c.Locals(sessionLocal, st)
	c.Locals(sessionIDLocal, id)
	return nil
}

// SessionFrom returns the Store resolved by Session.
func SessionFrom(c *fiber.Ctx) *session.Store {
	st, _ := c.Locals(sessionLocal).(*session.Store)
	return st
}

// SessionID returns the id of the request's session.
func SessionID(c *fiber.Ctx) string {
	id, _ := c.Locals(sessionIDLocal).(string)
	return id
}
