package dbpkg

import (
	"context"
	"database/sql"
	"testing"
)

func TestConnFallsBackWithoutTx(t *testing.T) {
	fallback := &sql.DB{}

	if got := Conn(context.Background(), fallback); got != fallback {
		t.Errorf("Conn(context.Background(), fallback) = %v, want fallback", got)
	}
}

func TestConnReturnsCarriedTx(t *testing.T) {
	tx := &sql.Tx{}
	ctx := WithTx(context.Background(), tx)

	if got := Conn(ctx, &sql.DB{}); got != tx {
		t.Errorf("Conn(WithTx(ctx, tx), db) = %v, want tx", got)
	}
}
