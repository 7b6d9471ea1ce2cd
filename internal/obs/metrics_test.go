package obs

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveLedgerOp(t *testing.T) {
	ObserveLedgerOp("transfer", "ok")
	ObserveLedgerOp("transfer", "ok")
	ObserveLedgerOp("transfer", "insufficient_funds")

	if got := testutil.ToFloat64(ledgerOpsTotal.WithLabelValues("transfer", "ok")); got < 2 {
		t.Fatalf("transfer/ok counter = %v, want >= 2", got)
	}
	if got := testutil.ToFloat64(ledgerOpsTotal.WithLabelValues("transfer", "insufficient_funds")); got < 1 {
		t.Fatalf("transfer/insufficient_funds counter = %v, want >= 1", got)
	}
}

func TestSetAccountCount(t *testing.T) {
	SetAccountCount(7)
	if got := testutil.ToFloat64(accountCount); got != 7 {
		t.Fatalf("account gauge = %v, want 7", got)
	}

	expected := strings.NewReader("# HELP umabank_ledger_accounts Number of open accounts in the registry.\n" +
		"# TYPE umabank_ledger_accounts gauge\n" +
		"umabank_ledger_accounts 7\n")
	if err := testutil.CollectAndCompare(accountCount, expected); err != nil {
		t.Fatal(err)
	}
}
