package hold

import "errors"

var (
	// ErrHoldNotFound возвращается, когда временная бронь не найдена
	ErrHoldNotFound = errors.New("hold.repository: hold not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("hold.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("hold.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("hold.repository: failed to scan row")

	// ErrInvalidDate возвращается, если дата в записи не разбирается
	ErrInvalidDate = errors.New("hold.repository: invalid date in hold")
)
