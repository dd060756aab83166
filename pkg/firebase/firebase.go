package firebase

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// App bundles the Firebase app and its auth client.
type App struct {
	App        *firebase.App
	AuthClient *auth.Client
}

// InitFirebase initializes the Firebase admin SDK from a credentials file.
func InitFirebase(ctx context.Context, credentialsPath string) (*App, error) {
	opt := option.WithCredentialsFile(credentialsPath)
	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("error initializing firebase app: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("error initializing firebase auth client: %w", err)
	}

	return &App{App: app, AuthClient: authClient}, nil
}
