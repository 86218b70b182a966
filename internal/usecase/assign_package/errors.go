package assign_package

import (
	"fmt"

	"github.com/Oso5408/ofcoz-booking/internal/domain"
)

var (
	ErrInvalidInput = fmt.Errorf("%w: assign_package: invalid input data", domain.ErrValidation)

	ErrInternal = fmt.Errorf("%w: assign_package: internal error", domain.ErrTransient)
)
