package bootstrap

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"github.com/servitec-peru/go-admin-backend/config"
)

// FirebaseClients bundles the per-service clients obtained from one
// Firebase app.
type FirebaseClients struct {
	App       *firebase.App
	Firestore *firestore.Client
	Auth      *auth.Client
	Bucket    *storage.BucketHandle
}

// InitFirebase initializes the Firebase Admin SDK and the Firestore,
// Auth and Storage clients the service depends on.
func InitFirebase(ctx context.Context, cfg *config.FirebaseConfig) (*FirebaseClients, error) {
	var opts []option.ClientOption
	if cfg.CredentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsPath))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{
		ProjectID:     cfg.ProjectID,
		StorageBucket: cfg.StorageBucket,
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	firestoreClient, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get Firestore client: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get Auth client: %w", err)
	}

	storageClient, err := app.Storage(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get Storage client: %w", err)
	}

	bucket, err := storageClient.DefaultBucket()
	if err != nil {
		return nil, fmt.Errorf("failed to get storage bucket: %w", err)
	}

	return &FirebaseClients{
		App:       app,
		Firestore: firestoreClient,
		Auth:      authClient,
		Bucket:    bucket,
	}, nil
}
