package model

// Role is the closed set of user roles.
type Role string

const (
	RoleAdministrator Role = "Administrator"
	RoleSeller        Role = "Seller"
)

// Operation tags checked by the authorization middleware. Every mutating or
// privileged route names one of these.
const (
	OpProductRead    = "product:read"
	OpProductWrite   = "product:write"
	OpCategoryWrite  = "category:write"
	OpSaleCreate     = "sale:create"
	OpSaleRead       = "sale:read"
	OpPurchaseWrite  = "purchase:write"
	OpPurchaseRead   = "purchase:read"
	OpUserManage     = "user:manage"
	OpJournalRead    = "journal:read"
	OpReportRun      = "report:run"
	OpReceiptRun     = "receipt:run"
)

// rolePolicy is the single place the access rules live. Sellers may read the
// catalog, record sales and print receipts; Administrators may do everything.
var rolePolicy = map[Role]map[string]bool{
	RoleSeller: {
		OpProductRead: true,
		OpSaleCreate:  true,
		OpSaleRead:    true,
		OpReceiptRun:  true,
	},
}

// Valid reports whether r is one of the enumerated roles.
func (r Role) Valid() bool {
	return r == RoleAdministrator || r == RoleSeller
}

// Can reports whether the role may perform the operation.
func (r Role) Can(op string) bool {
	if r == RoleAdministrator {
		return true
	}
	return rolePolicy[r][op]
}
