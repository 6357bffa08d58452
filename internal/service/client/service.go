package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/client"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/pkg/wizard"
)

type ClientServiceImpl struct {
	clientRepo  client.ClientRepository
	invalidator dashboard.Invalidator
	logger      *slog.Logger
}

func NewClientService(clientRepo client.ClientRepository, invalidator dashboard.Invalidator, logger *slog.Logger) client.ClientService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ClientServiceImpl{
		clientRepo:  clientRepo,
		invalidator: invalidator,
		logger:      logger.With("component", "client"),
	}
}

func (s *ClientServiceImpl) ListClients(ctx context.Context) ([]client.Client, error) {
	clients, err := s.clientRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	return clients, nil
}

func (s *ClientServiceImpl) GetClient(ctx context.Context, id int64) (client.Client, error) {
	c, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, client.ErrClientNotFound) {
			return client.Client{}, client.ErrClientNotFound
		}
		return client.Client{}, fmt.Errorf("failed to get client: %w", err)
	}
	return c, nil
}

func (s *ClientServiceImpl) SearchClients(ctx context.Context, name string) ([]client.Client, error) {
	if strings.TrimSpace(name) == "" {
		return s.ListClients(ctx)
	}
	clients, err := s.clientRepo.SearchByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to search clients: %w", err)
	}
	return clients, nil
}

// CreateClient walks the form steps in order and stores the client once the last one passes.
// A failing step stops the walk with that step's errors.
func (s *ClientServiceImpl) CreateClient(ctx context.Context, req client.CreateClientRequest) (client.Client, error) {
	var created client.Client
	w, err := wizard.New(client.Steps(), req, func(ctx context.Context, draft client.CreateClientRequest) error {
		var err error
		created, err = s.storeClient(ctx, draft)
		return err
	})
	if err != nil {
		return client.Client{}, err
	}
	if err := w.Run(ctx); err != nil {
		return client.Client{}, err
	}
	return created, nil
}

func (s *ClientServiceImpl) storeClient(ctx context.Context, req client.CreateClientRequest) (client.Client, error) {
	newClient := req.ToClient()

	exists, err := s.clientRepo.ExistsByEmail(ctx, newClient.Email)
	if err != nil {
		return client.Client{}, fmt.Errorf("failed to check client email: %w", err)
	}
	if exists {
		return client.Client{}, client.ErrClientEmailExists
	}

	created, err := s.clientRepo.Create(ctx, newClient)
	if err != nil {
		if errors.Is(err, client.ErrClientEmailExists) {
			return client.Client{}, err
		}
		return client.Client{}, fmt.Errorf("failed to create client: %w", err)
	}

	s.invalidator.Invalidate(dashboard.CollectionClients)
	s.logger.Info("client created", "client_id", created.ID)
	return created, nil
}

func (s *ClientServiceImpl) UpdateClient(ctx context.Context, id int64, req client.UpdateClientRequest) (client.Client, error) {
	existing, err := s.GetClient(ctx, id)
	if err != nil {
		return client.Client{}, err
	}

	draft := client.DraftFrom(existing)
	req.Apply(&draft)

	var saved client.Client
	w, err := wizard.New(client.Steps(), draft, func(ctx context.Context, draft client.CreateClientRequest) error {
		updated := draft.ToClient()
		updated.ID = id
		if !strings.EqualFold(existing.Email, updated.Email) {
			exists, err := s.clientRepo.ExistsByEmail(ctx, updated.Email)
			if err != nil {
				return fmt.Errorf("failed to check client email: %w", err)
			}
			if exists {
				return client.ErrClientEmailExists
			}
		}
		saved, err = s.clientRepo.Update(ctx, updated)
		if err != nil {
			return fmt.Errorf("failed to update client: %w", err)
		}
		return nil
	})
	if err != nil {
		return client.Client{}, err
	}
	if err := w.Run(ctx); err != nil {
		return client.Client{}, err
	}

	s.invalidator.Invalidate(dashboard.CollectionClients)
	s.logger.Info("client updated", "client_id", id)
	return saved, nil
}

func (s *ClientServiceImpl) DeleteClient(ctx context.Context, id int64) error {
	if err := s.clientRepo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, client.ErrClientNotFound), errors.Is(err, client.ErrClientInUse):
			return err
		}
		return fmt.Errorf("failed to delete client: %w", err)
	}

	// tickets lose their client
	s.invalidator.Invalidate(dashboard.CollectionClients, dashboard.CollectionTickets)
	s.logger.Info("client deleted", "client_id", id)
	return nil
}

func (s *ClientServiceImpl) ValidateStep(ctx context.Context, step int, req client.CreateClientRequest) (wizard.StepResult, error) {
	return wizard.Check(client.Steps(), step, req)
}
