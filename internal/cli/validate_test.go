package cli

import (
	"testing"

	"umabank.org/internal/ledger"
)

func money(v int64) ledger.Money { return ledger.Money(v) }

func TestValidName(t *testing.T) {
	for _, name := range []string{"Alice Silva", "José D'Almeida", "Ana-Maria Conceição"} {
		if !ValidName(name) {
			t.Fatalf("ValidName(%q)=false", name)
		}
	}
	// "Zéu" is three runes even though "é" is two bytes; two-rune
	// names stay out regardless of byte count.
	if !ValidName("Zéu") {
		t.Fatal(`ValidName("Zéu")=false`)
	}
	for _, name := range []string{"", "Al", "Zé", "Alice123", "Alice;Silva", "Ana × Maria", "Ana ÷ Maria"} {
		if ValidName(name) {
			t.Fatalf("ValidName(%q)=true", name)
		}
	}
}

func TestValidNationalID(t *testing.T) {
	for _, bi := range []string{"12345678", "123 456 789", "123-456-789-012-345"} {
		if !ValidNationalID(bi) {
			t.Fatalf("ValidNationalID(%q)=false", bi)
		}
	}
	for _, bi := range []string{"1234567", "1234567890123456", "12345abc", ""} {
		if ValidNationalID(bi) {
			t.Fatalf("ValidNationalID(%q)=true", bi)
		}
	}
}

func TestValidDate(t *testing.T) {
	for _, d := range []string{"01-01-1990", "29-02-2020", "31-12-2024"} {
		if !ValidDate(d) {
			t.Fatalf("ValidDate(%q)=false", d)
		}
	}
	for _, d := range []string{"1990-01-01", "31-02-2020", "29-02-2019", "01-01-1899", "01-01-2025", "1-1-1990", ""} {
		if ValidDate(d) {
			t.Fatalf("ValidDate(%q)=true", d)
		}
	}
}

func TestValidAmount(t *testing.T) {
	for _, v := range []int64{1, 100, 10_000_000_00} {
		if !ValidAmount(money(v)) {
			t.Fatalf("ValidAmount(%d)=false", v)
		}
	}
	for _, v := range []int64{0, -100, 10_000_000_01} {
		if ValidAmount(money(v)) {
			t.Fatalf("ValidAmount(%d)=true", v)
		}
	}
}
