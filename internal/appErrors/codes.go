package appErrors

// Коды ошибок сгруппированные по доменам
const (
	// Аутентификация и авторизация
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeForbidden          ErrorCode = "FORBIDDEN"
	CodeNoToken            ErrorCode = "NO_TOKEN"
	CodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	CodeTokenExpired       ErrorCode = "TOKEN_EXPIRED"
	CodeAccountNotActive   ErrorCode = "ACCOUNT_NOT_ACTIVE"

	// Валидация
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeMissingFields    ErrorCode = "MISSING_FIELDS"
	CodeWeakPassword     ErrorCode = "WEAK_PASSWORD"
	CodeInvalidRole      ErrorCode = "INVALID_ROLE"

	// Ресурсы
	CodeAccountNotFound       ErrorCode = "ACCOUNT_NOT_FOUND"
	CodeCreditAccountNotFound ErrorCode = "CREDIT_ACCOUNT_NOT_FOUND"

	// Бизнес-логика
	CodeEmailAlreadyExists  ErrorCode = "EMAIL_ALREADY_EXISTS"
	CodeDuplicateUser       ErrorCode = "DUPLICATE_USER"
	CodeInsufficientCredits ErrorCode = "INSUFFICIENT_CREDITS"

	// Системные ошибки
	CodeInternalError     ErrorCode = "INTERNAL_ERROR"
	CodeDatabaseError     ErrorCode = "DATABASE_ERROR"
	CodeRegistrationError ErrorCode = "REGISTRATION_ERROR"
	// CodeConsistencyError — компенсация после частичного провижининга
	// не удалась; требует ручной сверки, в логах отличим от transient-ошибок
	CodeConsistencyError ErrorCode = "CONSISTENCY_ERROR"
)
