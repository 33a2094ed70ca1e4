package secrets

import (
	"context"
	"fmt"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// GCPAccessor reads secret versions from Google Secret Manager using
// Application Default Credentials.
type GCPAccessor struct {
	client *secretmanager.Client
}

// NewGCPAccessor dials the Secret Manager API.  Callers must Close it.
func NewGCPAccessor(ctx context.Context) (*GCPAccessor, error) {
	c, err := secretmanager.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("secret manager client: %w", err)
	}
	return &GCPAccessor{client: c}, nil
}

// Access implements Accessor.
func (a *GCPAccessor) Access(ctx context.Context, ref Ref) ([]byte, error) {
	resp, err := a.client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: ref.String(),
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
		}
		return nil, err
	}
	return resp.GetPayload().GetData(), nil
}

// Close releases the underlying gRPC connection.
func (a *GCPAccessor) Close() error { return a.client.Close() }
