package google

// DefaultOAuthScopes are the Google OAuth scopes the emails table needs:
// reading messages and composing/sending replies. Nothing else is requested.
var DefaultOAuthScopes = []string{
	"https://www.googleapis.com/auth/gmail.readonly",
	"https://www.googleapis.com/auth/gmail.compose",
}
