package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoleValid(t *testing.T) {
	require.True(t, RoleAdministrator.Valid())
	require.True(t, RoleSeller.Valid())
	require.False(t, Role("Manager").Valid())
	require.False(t, Role("").Valid())
}

func TestRolePolicy(t *testing.T) {
	allOps := []string{
		OpProductRead, OpProductWrite, OpCategoryWrite,
		OpSaleCreate, OpSaleRead, OpPurchaseWrite, OpPurchaseRead,
		OpUserManage, OpJournalRead, OpReportRun, OpReceiptRun,
	}

	// Administrators are never denied.
	for _, op := range allOps {
		require.True(t, RoleAdministrator.Can(op), op)
	}

	sellerAllowed := map[string]bool{
		OpProductRead: true,
		OpSaleCreate:  true,
		OpSaleRead:    true,
		OpReceiptRun:  true,
	}
	for _, op := range allOps {
		require.Equal(t, sellerAllowed[op], RoleSeller.Can(op), op)
	}

	// Unknown roles can do nothing.
	for _, op := range allOps {
		require.False(t, Role("Manager").Can(op), op)
	}
}
