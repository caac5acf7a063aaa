package firebase

import (
	"context"

	"firebase.google.com/go/v4/auth"
)

// Identity is the verified assertion handed out by the identity provider.
type Identity struct {
	SubjectID string
	Email     string
	Name      string
	Picture   string
}

type FirebaseAuthClient struct {
	client *auth.Client
}

func NewFirebaseAuthClient(client *auth.Client) *FirebaseAuthClient {
	return &FirebaseAuthClient{
		client: client,
	}
}

// VerifyToken validates the ID token and extracts the profile claims the
// provider attaches to it.
func (f *FirebaseAuthClient) VerifyToken(ctx context.Context, idToken string) (*Identity, error) {
	token, err := f.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, err
	}

	identity := &Identity{
		SubjectID: token.UID,
	}
	if email, ok := token.Claims["email"].(string); ok {
		identity.Email = email
	}
	if name, ok := token.Claims["name"].(string); ok {
		identity.Name = name
	}
	if picture, ok := token.Claims["picture"].(string); ok {
		identity.Picture = picture
	}

	return identity, nil
}
