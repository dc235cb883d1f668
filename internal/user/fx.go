package user

import (
	"github.com/smallbiznis/compass/internal/user/repository"
	"github.com/smallbiznis/compass/internal/user/service"
	"go.uber.org/fx"
)

var Module = fx.Module("user.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
