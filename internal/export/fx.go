package export

import (
	"github.com/smallbiznis/shopdesk/internal/config"
	"github.com/smallbiznis/shopdesk/internal/export/registry"
	"github.com/smallbiznis/shopdesk/internal/export/service"
	"go.uber.org/fx"
)

var Module = fx.Module("export.service",
	fx.Provide(NewRegistry),
	fx.Provide(service.New),
)

// NewRegistry sizes the artifact registry from the export config at startup.
func NewRegistry(cfg *config.ExportConfigHolder) *registry.Registry {
	return registry.New(cfg.Get().RegistryCapacity, registry.NewMemoryBlobStore())
}
