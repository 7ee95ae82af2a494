package prices

import "github.com/m04kA/SMC-TurfBookingService/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor
