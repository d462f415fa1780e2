package firebaseapp

import (
	"context"
	"errors"
	"strings"

	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
)

// New inicializa la app de Firebase compartida por Firestore y Auth.
// Sin credentialsFile usa Application Default Credentials (o el emulador).
func New(ctx context.Context, projectID, credentialsFile string) (*firebase.App, error) {
	projectID = strings.TrimSpace(projectID)
	if projectID == "" {
		return nil, errors.New("firebase: project id required")
	}

	var opts []option.ClientOption
	if f := strings.TrimSpace(credentialsFile); f != "" {
		opts = append(opts, option.WithCredentialsFile(f))
	}

	return firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
}
