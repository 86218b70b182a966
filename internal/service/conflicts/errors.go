package conflicts

import (
	"fmt"

	"github.com/Oso5408/ofcoz-booking/internal/domain"
)

var (
	// ErrInvalidRange is returned when start is not before end
	ErrInvalidRange = fmt.Errorf("%w: conflicts: start must be before end", domain.ErrValidation)

	// ErrUnavailable is returned when the booking store could not be queried
	ErrUnavailable = fmt.Errorf("%w: conflicts: booking store unavailable", domain.ErrTransient)
)
