package http

import (
	"net/http"
	"strings"

	"mealdrop/internal/core/domain/model/kernel"
	"mealdrop/internal/core/domain/model/order"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
)

const actorContextKey = "actor"

// Actor is the authenticated caller extracted from the JWT. The core trusts
// these claims and enforces authorization itself; no permission checks happen
// at the transport layer beyond token validity.
type Actor struct {
	UserID kernel.UUID
	Role   order.Role
}

// AuthRequired validates the Bearer token and stores the actor on the echo
// context. Tokens are HS256-signed with "sub" and "role" claims; issuance is
// an upstream concern.
func AuthRequired(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			header := ctx.Request().Header.Get(echo.HeaderAuthorization)
			tokenString, found := strings.CutPrefix(header, "Bearer ")
			if !found || tokenString == "" {
				return unauthorized(ctx, "missing bearer token")
			}

			token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.NewValidationError(
						"unexpected signing method", jwt.ValidationErrorSignatureInvalid)
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				return unauthorized(ctx, "invalid token")
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return unauthorized(ctx, "invalid token claims")
			}

			actor, err := actorFromClaims(claims)
			if err != nil {
				return unauthorized(ctx, "invalid token claims")
			}

			ctx.Set(actorContextKey, actor)
			return next(ctx)
		}
	}
}

func actorFromClaims(claims jwt.MapClaims) (Actor, error) {
	sub, _ := claims["sub"].(string)
	userID, err := kernel.UUIDFromString(sub)
	if err != nil {
		return Actor{}, err
	}

	roleClaim, _ := claims["role"].(string)
	role := order.Role(roleClaim)
	if err = role.Validate(); err != nil {
		return Actor{}, err
	}

	return Actor{UserID: userID, Role: role}, nil
}

func actorFromContext(ctx echo.Context) (Actor, bool) {
	actor, ok := ctx.Get(actorContextKey).(Actor)
	return actor, ok
}

func unauthorized(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusUnauthorized, errorResponse{
		Code:    http.StatusUnauthorized,
		Message: message,
	})
}
