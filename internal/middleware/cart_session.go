package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"github.com/rs/zerolog"
)

// CartSessionCookie names the cookie that carries the signed shopper session id.
const CartSessionCookie = "yaraan_cart"

const cartSessionLocal = "cart_session"

// cartSessionMaxAge keeps a shopper's cart for a year of inactivity.
const cartSessionMaxAge = 365 * 24 * time.Hour

// CartSession assigns every shopper a stable random session id, carried in a
// signed (and, with a block key, encrypted) cookie. A missing or tampered
// cookie starts a new session.
func CartSession(codec *securecookie.SecureCookie, logger *zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var sessionID string
		if raw := c.Cookies(CartSessionCookie); raw != "" {
			if err := codec.Decode(CartSessionCookie, raw, &sessionID); err != nil {
				logger.Debug().Err(err).Msg("Discarding invalid cart session cookie")
				sessionID = ""
			}
		}

		if sessionID == "" {
			sessionID = uuid.New().String()
			encoded, err := codec.Encode(CartSessionCookie, sessionID)
			if err != nil {
				logger.Error().Err(err).Msg("Could not encode cart session cookie")
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"message": "Could not start a cart session",
				})
			}
			c.Cookie(&fiber.Cookie{
				Name:     CartSessionCookie,
				Value:    encoded,
				Path:     "/",
				Expires:  time.Now().Add(cartSessionMaxAge),
				HTTPOnly: true,
				SameSite: fiber.CookieSameSiteLaxMode,
			})
		}

		c.Locals(cartSessionLocal, sessionID)
		return c.Next()
	}
}

// CartSessionID returns the session id set by CartSession.
func CartSessionID(c *fiber.Ctx) string {
	id, _ := c.Locals(cartSessionLocal).(string)
	return id
}

// NewCartSessionCodec builds the cookie codec. Empty keys are replaced with
// random ones, which invalidates existing carts on restart.
func NewCartSessionCodec(hashKey, blockKey string) *securecookie.SecureCookie {
	hk := []byte(hashKey)
	if len(hk) == 0 {
		hk = securecookie.GenerateRandomKey(32)
	}
	var bk []byte
	if blockKey != "" {
		bk = []byte(blockKey)
	}
	codec := securecookie.New(hk, bk)
	codec.MaxAge(int(cartSessionMaxAge.Seconds()))
	return codec
}
