package policy

import "github.com/m04kA/SMC-RentalDispatchService/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor
