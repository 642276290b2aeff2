package auth

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
)

// TokenVerifier exchanges an ID token for the opaque user identity
// reference. Tests inject a fake; production uses Firebase.
type TokenVerifier interface {
	Verify(ctx context.Context, idToken string) (string, error)
}

// FirebaseVerifier verifies Firebase ID tokens issued to the mobile
// client.
type FirebaseVerifier struct {
	app *firebase.App
}

// NewFirebaseVerifier initializes the Firebase app. With an empty
// credentials path, application-default credentials are used.
func NewFirebaseVerifier(ctx context.Context, credentialsFile string) (*FirebaseVerifier, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}
	return &FirebaseVerifier{app: app}, nil
}

func (v *FirebaseVerifier) Verify(ctx context.Context, idToken string) (string, error) {
	client, err := v.app.Auth(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get auth client: %w", err)
	}
	token, err := client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return "", fmt.Errorf("failed to verify id token: %w", err)
	}
	return token.UID, nil
}
