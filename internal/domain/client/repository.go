package client

import "context"

type ClientRepository interface {
	List(ctx context.Context) ([]Client, error)
	GetByID(ctx context.Context, id int64) (Client, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// SearchByName matches clients whose name contains name, ignoring case
	SearchByName(ctx context.Context, name string) ([]Client, error)
	Create(ctx context.Context, c Client) (Client, error)
	Update(ctx context.Context, c Client) (Client, error)
	Delete(ctx context.Context, id int64) error
}
