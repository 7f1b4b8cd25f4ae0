package middleware

import (
	"crypto/subtle"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

// CredentialVerifier abstracts how admin credentials are checked, so
// the static env-backed pair can be replaced by a real user store
// without touching the routes.
type CredentialVerifier interface {
	Verify(username, password string) bool
}

type StaticCredentials struct {
	Username string
	Password string
}

var _ CredentialVerifier = StaticCredentials{}

func NewStaticCredentialsFromEnv() StaticCredentials {
	return StaticCredentials{
		Username: os.Getenv("ADMIN_USER"),
		Password: os.Getenv("ADMIN_PASSWORD"),
	}
}

func (s StaticCredentials) Verify(username, password string) bool {
	if s.Username == "" || s.Password == "" {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.Password)) == 1
	return userOK && passOK
}

// RequireAdmin guards the back-office routes with basic auth checked
// through the verifier.
func RequireAdmin(v CredentialVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, password, ok := c.Request.BasicAuth()
		if !ok || !v.Verify(username, password) {
			c.Header("WWW-Authenticate", `Basic realm="admin"`)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}
		c.Next()
	}
}
