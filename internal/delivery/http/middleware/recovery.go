package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"
)

// Recovery - middleware для восстановления после паники, паника пишется в лог вместе с запросом
func Recovery(logger *zap.Logger) fiber.Handler {
	return recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
			fields := []zap.Field{
				zap.Any("panic", e),
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Stack("stack"),
			}
			if rid, ok := c.Locals(requestid.ConfigDefault.ContextKey).(string); ok {
				fields = append(fields, zap.String("request_id", rid))
			}
			if sid := SessionID(c); sid != "" {
				fields = append(fields, zap.String("session_id", sid))
			}
			logger.Error("Panic recovered", fields...)
		},
	})
}
