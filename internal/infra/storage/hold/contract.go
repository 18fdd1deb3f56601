package hold

import "github.com/m04kA/PetBoarding-BookingService/pkg/dbmetrics"

// DBExecutor интерфейс для выполнения запросов (sql.DB, dbmetrics.DB или транзакция)
type DBExecutor = dbmetrics.DBExecutor
