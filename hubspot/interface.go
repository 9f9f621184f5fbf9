package hubspot

import "context"

//go:generate mockgen -source=interface.go -destination=mocks/mock_objects.go -package=mocks

// Objects is the set of calls made against a single CRM object type.
type Objects interface {
	List(ctx context.Context, properties []string, limit int) ([]Object, error)
	Create(ctx context.Context, properties map[string]string) (*Object, error)
	Update(ctx context.Context, id string, properties map[string]string) (*Object, error)
	Delete(ctx context.Context, id string) error
}
