package assign_package

import (
	"context"

	assignPackage "github.com/Oso5408/ofcoz-booking/internal/usecase/assign_package"
)

type AssignPackageUseCase interface {
	Execute(ctx context.Context, req *assignPackage.Request) (*assignPackage.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
