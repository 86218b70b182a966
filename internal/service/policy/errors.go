package policy

import (
	"fmt"

	"github.com/Oso5408/ofcoz-booking/internal/domain"
)

// ErrHistoryUnavailable is returned when cancellation history could not be loaded
var ErrHistoryUnavailable = fmt.Errorf("%w: policy: cancellation history unavailable", domain.ErrTransient)
