// smoke-bank drives the ledger end to end against a throwaway data
// file: open, transfer, pay a service, then reload and compare. Exits
// non-zero on any divergence.
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"umabank.org/internal/ledger"
	storefile "umabank.org/internal/store/file"
)

func main() {
	dir, err := os.MkdirTemp("", "umabank-smoke-*")
	if err != nil {
		log.Fatalf("temp dir: %v", err)
	}
	defer os.RemoveAll(dir)

	store := storefile.New(filepath.Join(dir, "contas.txt"))
	bank := ledger.NewBank(1000, store)

	alice, err := bank.OpenAccount("Alice Silva", "123456789", "Angolana", "01-01-1990", 100_000_00)
	if err != nil {
		log.Fatalf("open account A: %v", err)
	}
	bruno, err := bank.OpenAccount("Bruno Costa", "987654321", "Angolana", "15-06-1985", 0)
	if err != nil {
		log.Fatalf("open account B: %v", err)
	}

	if err := bank.Transfer(alice, bruno, 420_00); err != nil {
		log.Fatalf("transfer: %v", err)
	}
	if err := bank.PayService(alice, 101); err != nil {
		log.Fatalf("pay service: %v", err)
	}

	a, err := bank.Account(alice)
	if err != nil {
		log.Fatalf("account A: %v", err)
	}
	b, err := bank.Account(bruno)
	if err != nil {
		log.Fatalf("account B: %v", err)
	}
	if a.Balance+b.Balance != 100_000_00-5_000_00 {
		log.Fatalf("conservation failed: %s + %s", a.Balance, b.Balance)
	}

	// Reload from disk and compare snapshots.
	loaded, err := store.Load()
	if err != nil {
		log.Fatalf("reload: %v", err)
	}
	want := bank.Accounts()
	if len(loaded) != len(want) {
		log.Fatalf("reload count: got %d, want %d", len(loaded), len(want))
	}
	for i := range want {
		if loaded[i] != want[i] {
			log.Fatalf("round trip mismatch at %d: %+v != %+v", i, loaded[i], want[i])
		}
	}

	fmt.Printf("✅ bank smoke test passed: accounts=%d,%d\n", alice, bruno)
}
