package file

import (
	"os"
	"path/filepath"
	"testing"

	"umabank.org/internal/ledger"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "contas.txt"))
}

func sampleAccounts() []ledger.Account {
	return []ledger.Account{
		{Number: 1000, Balance: 50000, FullName: "Alice Silva", NationalID: "003456789", Nationality: "Angolana", BirthDate: "12-03-1991", IBAN: ledger.DeriveIBAN(1000)},
		{Number: 1001, Balance: 0, FullName: "Bruno Costa", NationalID: "987654321", Nationality: "Angolana", BirthDate: "15-06-1985", IBAN: ledger.DeriveIBAN(1001)},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := tempStore(t)
	want := sampleAccounts()
	if err := s.Save(want); err != nil {
		t.Fatal(err)
	}
	got, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(want) {
		t.Fatalf("loaded %d accounts, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("account %d mismatch:\n got %+v\nwant %+v", i, got[i], want[i])
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "nope.txt"))
	accounts, err := s.Load()
	if err != nil {
		t.Fatalf("missing file must not error: %v", err)
	}
	if len(accounts) != 0 {
		t.Fatalf("expected empty set, got %v", accounts)
	}
}

func TestLoadSkipsMalformedLines(t *testing.T) {
	s := tempStore(t)
	content := "1000|500.00|Alice Silva|003456789|Angolana|12-03-1991|" + ledger.DeriveIBAN(1000) + "\n" +
		"\n" + // blank line, skipped silently
		"not|enough|fields\n" +
		"abc|500.00|Bad Number|1|2|3|4\n" +
		"1001|NaN|Bad Balance|1|2|3|4\n" +
		"1002|-5.00|Negative|1|2|3|4\n" +
		"1003|0.00|Bruno Costa|987654321|Angolana|15-06-1985|" + ledger.DeriveIBAN(1003) + "\n"
	if err := os.WriteFile(s.Path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	accounts, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(accounts) != 2 {
		t.Fatalf("loaded %d accounts, want 2 (bad lines skipped): %v", len(accounts), accounts)
	}
	if accounts[0].Number != 1000 || accounts[1].Number != 1003 {
		t.Fatalf("wrong survivors: %v", accounts)
	}
}

func TestDelimiterInFieldRoundTrips(t *testing.T) {
	s := tempStore(t)
	want := []ledger.Account{{
		Number:      1000,
		Balance:     100,
		FullName:    `Alice | Silva \ Dias`,
		NationalID:  "003456789",
		Nationality: "Angolana",
		BirthDate:   "12-03-1991",
		IBAN:        ledger.DeriveIBAN(1000),
	}}
	if err := s.Save(want); err != nil {
		t.Fatal(err)
	}
	got, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0] != want[0] {
		t.Fatalf("escaped field did not round-trip: %+v", got)
	}
}

func TestSemicolonDelimiter(t *testing.T) {
	s := &Store{Path: filepath.Join(t.TempDir(), "contas.txt"), Delim: ';'}
	want := sampleAccounts()
	if err := s.Save(want); err != nil {
		t.Fatal(err)
	}
	got, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("semicolon round trip failed: %v", got)
	}
}

func TestSaveOverwrites(t *testing.T) {
	s := tempStore(t)
	if err := s.Save(sampleAccounts()); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(sampleAccounts()[:1]); err != nil {
		t.Fatal(err)
	}
	got, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("save did not rewrite the file in full: %v", got)
	}
}

// A file written without escaping, the way the original exporter did,
// still loads as long as no field embeds the delimiter.
func TestLoadLegacyUnescapedFile(t *testing.T) {
	s := tempStore(t)
	line := "1000|500.00|Alice Silva|003456789|Angolana|12-03-1991|" + ledger.DeriveIBAN(1000) + "\n"
	if err := os.WriteFile(s.Path, []byte(line), 0o644); err != nil {
		t.Fatal(err)
	}
	accounts, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(accounts) != 1 || accounts[0].FullName != "Alice Silva" || accounts[0].Balance != 50000 {
		t.Fatalf("legacy line mis-parsed: %+v", accounts)
	}
}

// The bank persists after every successful mutation, so the file always
// mirrors the registry without an explicit save.
func TestBankAutosave(t *testing.T) {
	s := tempStore(t)
	bank := ledger.NewBank(1000, s)

	n, err := bank.OpenAccount("Alice Silva", "003456789", "Angolana", "12-03-1991", 50000)
	if err != nil {
		t.Fatal(err)
	}
	if err := bank.Deposit(n, 10000); err != nil {
		t.Fatal(err)
	}

	accounts, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(accounts) != 1 || accounts[0].Balance != 60000 {
		t.Fatalf("file does not mirror registry: %+v", accounts)
	}

	// A later process restores the same book and continues the sequence.
	bank2 := ledger.NewBank(1000, s)
	bank2.Restore(accounts)
	n2, _ := bank2.OpenAccount("Bruno Costa", "987654321", "Angolana", "15-06-1985", 0)
	if n2 != n+1 {
		t.Fatalf("restored sequence gave %d, want %d", n2, n+1)
	}
}
