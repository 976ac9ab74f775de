package pricingrule

import (
	"github.com/joshuahuffman02/Keepr-sub014/internal/pricingrule/repository"
	"github.com/joshuahuffman02/Keepr-sub014/internal/pricingrule/service"
	"go.uber.org/fx"
)

var Module = fx.Module("pricingrule",
	fx.Provide(repository.New),
	fx.Provide(service.New),
)
