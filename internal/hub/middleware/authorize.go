package middleware

import (
	"fmt"
	"net/http"
	"slices"
	"strings"

	hubErrors "bitbucket.org/crgw/hunit-hub/internal/hub/errors"
	"bitbucket.org/crgw/hunit-hub/internal/tools/responding"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

// AllHotels in the hotelIds claim grants every hotel, including the OneCall routes.
const AllHotels = "*"

type HotelClaims struct {
	HotelIDs []string `json:"hotelIds"`
	jwt.RegisteredClaims
}

func (c *HotelClaims) allows(hotelID string) bool {
	if slices.Contains(c.HotelIDs, AllHotels) {
		return true
	}

	return hotelID != "" && slices.Contains(c.HotelIDs, hotelID)
}

func parseToken(header string, secret []byte) (*HotelClaims, error) {
	raw, found := strings.CutPrefix(header, "Bearer ")
	if !found || raw == "" {
		return nil, hubErrors.ErrorMissingToken
	}

	claims := &HotelClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}

	return claims, nil
}

// AuthorizeHotel restricts hub routes to the hotels listed in an HS256 bearer token.
// Without secret every request is let through.
func AuthorizeHotel(secret string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if secret == "" {
			return
		}

		claims, err := parseToken(ctx.GetHeader("Authorization"), []byte(secret))
		if err != nil {
			responding.HandleError(ctx, http.StatusUnauthorized, "Invalid authorization", err)
			return
		}

		if !claims.allows(ctx.Params.ByName(HotelParam)) {
			responding.HandleError(ctx, http.StatusForbidden, "Hotel not allowed", hubErrors.ErrorHotelNotAllowed)
			return
		}
	}
}
