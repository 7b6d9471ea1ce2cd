package ledger

import "fmt"

// Account is one holder's record: a unique number, the identity captured
// at opening, a derived IBAN and a balance. Identity fields and the
// number never change after opening; the balance moves only through
// Deposit and Withdraw.
type Account struct {
	Number      int    `json:"number"`
	Balance     Money  `json:"balance"`
	FullName    string `json:"full_name"`
	NationalID  string `json:"national_id"`
	Nationality string `json:"nationality"`
	BirthDate   string `json:"birth_date"`
	IBAN        string `json:"iban"`
}

// Deposit adds amount to the balance. Non-positive amounts are ignored,
// not rejected: a zero or negative deposit is defined as a no-op.
func (a *Account) Deposit(amount Money) {
	if amount.IsPositive() {
		a.Balance += amount
	}
}

// Withdraw subtracts amount from the balance. This is the only overdraft
// guard in the system; callers rely on it and must not re-check.
func (a *Account) Withdraw(amount Money) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if amount > a.Balance {
		return ErrInsufficientFunds
	}
	a.Balance -= amount
	return nil
}

// DeriveIBAN builds the synthetic Angolan IBAN for an account number:
// fixed check digits and bank code, then the zero-padded number. 25
// characters like a real AO IBAN, but no checksum computation.
func DeriveIBAN(number int) string {
	return fmt.Sprintf("AO060040%017d", number)
}
