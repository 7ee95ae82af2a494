package prices

import "errors"

var (
	// ErrOverrideNotFound возвращается, когда для часа нет переопределенной цены
	ErrOverrideNotFound = errors.New("prices.repository: price override not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("prices.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("prices.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("prices.repository: failed to scan row")
)
