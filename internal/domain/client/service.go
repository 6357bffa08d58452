package client

import (
	"context"

	"github.com/cmlabs-hris/opsboard-backend-go/internal/pkg/wizard"
)

type ClientService interface {
	ListClients(ctx context.Context) ([]Client, error)
	GetClient(ctx context.Context, id int64) (Client, error)
	SearchClients(ctx context.Context, name string) ([]Client, error)
	CreateClient(ctx context.Context, req CreateClientRequest) (Client, error)
	// UpdateClient merges the sent fields and re-runs every add-client step
	UpdateClient(ctx context.Context, id int64, req UpdateClientRequest) (Client, error)
	DeleteClient(ctx context.Context, id int64) error
	ValidateStep(ctx context.Context, step int, req CreateClientRequest) (wizard.StepResult, error)
}
