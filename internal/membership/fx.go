package membership

import (
	"github.com/neighborhq/memberdesk/internal/membership/repository"
	"github.com/neighborhq/memberdesk/internal/membership/service"
	"go.uber.org/fx"
)

var Module = fx.Module("membership.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
