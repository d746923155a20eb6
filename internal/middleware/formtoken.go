package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/user/moviecatalog/internal/utils"
)

// FormTokenField hidden input carrying the token
const FormTokenField = "_token"

// FormTokenTTL lifetime of an issued form token
const FormTokenTTL = 2 * time.Hour

const formIssuerKey = "form_token_issuer"

// ErrFormToken missing, expired or foreign form token
var ErrFormToken = errors.New("invalid form token")

// FormClaims JWT claims binding a token to the form action it was issued for
type FormClaims struct {
	Action string `json:"act"`
	jwt.RegisteredClaims
}

// GenerateFormToken signs a token for action
func GenerateFormToken(secret, action string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &FormClaims{
		Action: action,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// VerifyFormToken checks signature and expiry and that the token was
// issued for action
func VerifyFormToken(secret, tokenString, action string) error {
	if tokenString == "" {
		return ErrFormToken
	}

	token, err := jwt.ParseWithClaims(tokenString, &FormClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFormToken, err)
	}

	claims, ok := token.Claims.(*FormClaims)
	if !ok || !token.Valid {
		return ErrFormToken
	}
	if claims.Action != action {
		return fmt.Errorf("%w: issued for %q", ErrFormToken, claims.Action)
	}
	return nil
}

// FormToken rejects POST requests without a valid token for their path
// and lets handlers issue tokens through FormTokenFor.
func FormToken(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(formIssuerKey, func(action string) string {
			token, err := GenerateFormToken(secret, action, FormTokenTTL)
			if err != nil {
				_ = c.Error(err)
				return ""
			}
			return token
		})

		if c.Request.Method == http.MethodPost {
			if err := VerifyFormToken(secret, c.PostForm(FormTokenField), c.Request.URL.Path); err != nil {
				_ = c.Error(err)
				utils.Forbidden(c, "form expired, reload the page and try again")
				return
			}
		}

		c.Next()
	}
}

// FormTokenFor token for a form posting to action; "" outside FormToken
func FormTokenFor(c *gin.Context, action string) string {
	v, ok := c.Get(formIssuerKey)
	if !ok {
		return ""
	}
	issue, ok := v.(func(string) string)
	if !ok {
		return ""
	}
	return issue(action)
}
