package firebase

import (
	"context"

	"firebase.google.com/go/v4/auth"
)

// AuthClient wraps the Firebase Admin auth client for the admin API. Only
// verification and the admin role claim matter here; user management lives in
// the Firebase console.
type AuthClient struct {
	client *auth.Client
}

func NewAuthClient(client *auth.Client) *AuthClient {
	return &AuthClient{
		client: client,
	}
}

func (f *AuthClient) VerifyToken(ctx context.Context, token string) (*auth.Token, error) {
	return f.client.VerifyIDToken(ctx, token)
}

// IsAdmin checks the custom "admin" claim on a verified token.
func (f *AuthClient) IsAdmin(token *auth.Token) bool {
	if token == nil {
		return false
	}
	admin, ok := token.Claims["admin"].(bool)
	return ok && admin
}

func (f *AuthClient) TestConnection(ctx context.Context) error {
	// A bogus lookup exercises the credential path; "user not found" still
	// proves the connection works.
	_, err := f.client.GetUser(ctx, "healthcheck-probe")
	if err != nil && auth.IsUserNotFound(err) {
		return nil
	}
	return err
}
