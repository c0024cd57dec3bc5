package admin

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// AdminPort defines the interface for dashboard operations (hexagonal port).
type AdminPort interface {
	GetStats(ctx context.Context) (*Stats, error)
}

// adminAdapter wraps ServiceContainer for type-safe cross-module communication.
type adminAdapter struct {
	container mono.ServiceContainer
}

// NewAdminAdapter creates a new adapter for admin services.
func NewAdminAdapter(container mono.ServiceContainer) AdminPort {
	if container == nil {
		panic("admin adapter requires non-nil ServiceContainer")
	}
	return &adminAdapter{container: container}
}

// GetStats retrieves the dashboard summary via the get-stats service.
func (a *adminAdapter) GetStats(ctx context.Context) (*Stats, error) {
	var resp Stats
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceGetStats,
		json.Marshal,
		json.Unmarshal,
		&GetStatsRequest{},
		&resp,
	); err != nil {
		return nil, fmt.Errorf("get-stats service call failed: %w", err)
	}
	return &resp, nil
}
