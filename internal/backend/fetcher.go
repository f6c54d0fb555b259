package backend

import (
	"context"

	"github.com/eventora/backoffice/internal/cascade"
)

// DistrictFetcher adapts Client.Districts to the cascade.Fetcher contract.
// Transport errors are absorbed into an unsuccessful envelope so the form
// controller can treat them as a local, recoverable condition.
type DistrictFetcher struct {
	client Client
}

func NewDistrictFetcher(client Client) *DistrictFetcher {
	return &DistrictFetcher{client: client}
}

func (f *DistrictFetcher) FetchChildren(ctx context.Context, cityID int64) (cascade.Result, error) {
	districts, err := f.client.Districts(ctx, cityID)
	if err != nil {
		return cascade.Result{Success: false, Message: err.Error()}, nil
	}

	items := make([]cascade.Option, 0, len(districts))
	for _, d := range districts {
		items = append(items, cascade.Option{ID: d.ID, Name: d.Name})
	}
	return cascade.Result{Success: true, Items: items}, nil
}
