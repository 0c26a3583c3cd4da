package auth

import (
	"fmt"
	"strings"
	"time"
)

// TokenPrefix marks every token issued by the mock auth flow.
const TokenPrefix = "mock_token_"

// IssueToken builds an opaque bearer token for the user. The embedded
// timestamp and user id are a naming convention only; nothing parses them
// back out for authorization decisions.
func IssueToken(userID string) string {
	return fmt.Sprintf("%s%d_%s", TokenPrefix, time.Now().UnixMilli(), userID)
}

// ValidateToken reports whether the token looks like one this tracker
// issued. Prefix check only; there is no expiry and no server to revoke
// against.
func ValidateToken(token string) bool {
	return token != "" && strings.HasPrefix(token, TokenPrefix)
}
