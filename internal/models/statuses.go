package models

type AccountRole string
type MirrorStatus string

const (
	AccountRoleKatador   AccountRole = "katador"
	AccountRoleModelo    AccountRole = "modelo"
	AccountRoleAdmin     AccountRole = "admin"
	AccountRoleAgencia   AccountRole = "agencia"
	AccountRoleKPS       AccountRole = "kps"
	AccountRoleModeloKPS AccountRole = "modelo_kps"

	MirrorStatusActivo     MirrorStatus = "activo"
	MirrorStatusSuspendido MirrorStatus = "suspendido"
	MirrorStatusBaneado    MirrorStatus = "baneado"
)

// allowedRoles — допустимые роли при регистрации
var allowedRoles = map[AccountRole]bool{
	AccountRoleKatador:   true,
	AccountRoleModelo:    true,
	AccountRoleAdmin:     true,
	AccountRoleAgencia:   true,
	AccountRoleKPS:       true,
	AccountRoleModeloKPS: true,
}

// IsValidRole проверяет, входит ли роль в допустимый набор
func IsValidRole(role AccountRole) bool {
	return allowedRoles[role]
}

// InitialCreditGrant возвращает стартовое количество кредитов для роли.
// Ненулевой грант получают только роли, приносящие выручку.
func InitialCreditGrant(role AccountRole) int {
	switch role {
	case AccountRoleModelo, AccountRoleKatador:
		return 10
	default:
		return 0
	}
}
