package booking

import (
	"github.com/Oso5408/ofcoz-booking/pkg/dbmetrics"
)

type DBExecutor = dbmetrics.DBExecutor
type TxExecutor = dbmetrics.TxExecutor
