package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/peacockstore/peacock-api/internal/model"
)

func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
			return
		}

		token, err := jwt.Parse(header[7:], func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid claims"})
			return
		}

		email, _ := claims["sub"].(string)
		if email == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid user"})
			return
		}
		userType, _ := claims["typ"].(string)

		c.Set("userEmail", email)
		c.Set("userType", model.UserType(userType))
		c.Next()
	}
}

// SellerOnly guards the product mutation routes.
func SellerOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetUserType(c) != model.UserTypeSeller {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "sellers only"})
			return
		}
		c.Next()
	}
}

func GetUserEmail(c *gin.Context) string {
	email, _ := c.Get("userEmail")
	e, _ := email.(string)
	return e
}

func GetUserType(c *gin.Context) model.UserType {
	t, _ := c.Get("userType")
	ut, _ := t.(model.UserType)
	return ut
}
