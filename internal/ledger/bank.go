package ledger

import (
	"errors"
	"sync"

	"umabank.org/internal/obs"
)

// Store persists the full account set. Implemented by store/file; nil
// disables persistence (tests mostly run without one).
type Store interface {
	Save(accounts []Account) error
}

// Bank owns the account registry and every operation that mutates it.
// Accounts are kept in insertion order, which is also file order, and
// looked up by linear scan; the registry stays small enough that an
// index map would buy nothing observable.
//
// Every successful mutating operation persists the full snapshot before
// returning. A save failure is logged and swallowed: the in-memory
// state is already committed and the next successful save catches up.
type Bank struct {
	mu       sync.RWMutex
	accounts []*Account
	next     int
	start    int
	services map[int]Service
	store    Store
}

// NewBank creates an empty bank. Account numbers are assigned
// monotonically from start and never reused, even after a close.
func NewBank(start int, store Store) *Bank {
	return &Bank{
		next:     start,
		start:    start,
		services: defaultServices(),
		store:    store,
	}
}

// findAccount returns the registry entry for number, or nil.
// Caller must hold mu.
func (b *Bank) findAccount(number int) *Account {
	for _, a := range b.accounts {
		if a.Number == number {
			return a
		}
	}
	return nil
}

// OpenAccount allocates the next account number, derives its IBAN and
// appends the new account to the registry. The initial balance is taken
// as given; the caller validated it.
func (b *Bank) OpenAccount(fullName, nationalID, nationality, birthDate string, initial Money) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	number := b.next
	b.next++
	b.accounts = append(b.accounts, &Account{
		Number:      number,
		Balance:     initial,
		FullName:    fullName,
		NationalID:  nationalID,
		Nationality: nationality,
		BirthDate:   birthDate,
		IBAN:        DeriveIBAN(number),
	})
	b.persistLocked()
	b.observe("open", nil)
	return number, nil
}

// CloseAccount removes the account. The balance is not required to be
// zero; closing a funded account discards whatever it held.
func (b *Bank) CloseAccount(number int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, a := range b.accounts {
		if a.Number == number {
			b.accounts = append(b.accounts[:i], b.accounts[i+1:]...)
			b.persistLocked()
			b.observe("close", nil)
			return nil
		}
	}
	b.observe("close", ErrNotFound)
	return ErrNotFound
}

// Deposit adds amount to the account's balance. The only failure is an
// unknown account: a non-positive amount is a successful no-op and does
// not touch the file.
func (b *Bank) Deposit(number int, amount Money) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	a := b.findAccount(number)
	if a == nil {
		b.observe("deposit", ErrNotFound)
		return ErrNotFound
	}
	if amount.IsPositive() {
		a.Deposit(amount)
		b.persistLocked()
	}
	b.observe("deposit", nil)
	return nil
}

// Withdraw removes amount from the account's balance.
func (b *Bank) Withdraw(number int, amount Money) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	a := b.findAccount(number)
	if a == nil {
		b.observe("withdraw", ErrNotFound)
		return ErrNotFound
	}
	if err := a.Withdraw(amount); err != nil {
		b.observe("withdraw", err)
		return err
	}
	b.persistLocked()
	b.observe("withdraw", nil)
	return nil
}

// Transfer moves amount between two accounts inside one critical
// section. The withdrawal runs first; once it succeeds the deposit
// cannot fail, so a failed transfer never leaves either side changed.
func (b *Bank) Transfer(from, to int, amount Money) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !amount.IsPositive() {
		b.observe("transfer", ErrInvalidAmount)
		return ErrInvalidAmount
	}
	src := b.findAccount(from)
	if src == nil {
		b.observe("transfer", ErrNotFound)
		return ErrNotFound
	}
	dst := b.findAccount(to)
	if dst == nil {
		b.observe("transfer", ErrNotFound)
		return ErrNotFound
	}
	if from == to {
		b.observe("transfer", ErrSameAccount)
		return ErrSameAccount
	}
	if err := src.Withdraw(amount); err != nil {
		b.observe("transfer", err)
		return err
	}
	dst.Deposit(amount)
	b.persistLocked()
	b.observe("transfer", nil)
	return nil
}

// PayService debits the account by the service's fixed catalog price.
func (b *Bank) PayService(number, serviceID int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	a := b.findAccount(number)
	if a == nil {
		b.observe("pay_service", ErrNotFound)
		return ErrNotFound
	}
	svc, ok := b.services[serviceID]
	if !ok {
		b.observe("pay_service", ErrUnknownService)
		return ErrUnknownService
	}
	if err := a.Withdraw(svc.Price); err != nil {
		b.observe("pay_service", err)
		return err
	}
	b.persistLocked()
	b.observe("pay_service", nil)
	return nil
}

// Account returns a copy of one account's current state.
func (b *Bank) Account(number int) (Account, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	a := b.findAccount(number)
	if a == nil {
		return Account{}, ErrNotFound
	}
	return *a, nil
}

// Accounts returns copies of every account in registry order.
func (b *Bank) Accounts() []Account {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.snapshotLocked()
}

// Save writes the current snapshot through the store, reporting the
// error to the caller (unlike the autosave path, which only logs it).
func (b *Bank) Save() error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.store == nil {
		return nil
	}
	return b.store.Save(b.snapshotLocked())
}

// Restore replaces the registry with accounts loaded from storage and
// resets the number sequence to one past the highest number seen, or
// back to the configured start for an empty set. Duplicate numbers keep
// their first occurrence; later ones are dropped with a warning so the
// uniqueness invariant holds even against a hand-edited file.
func (b *Bank) Restore(accounts []Account) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.accounts = b.accounts[:0]
	max := 0
	seen := make(map[int]bool, len(accounts))
	for _, a := range accounts {
		if seen[a.Number] {
			obs.LogEvent(map[string]any{
				"level":   "warn",
				"msg":     "duplicate account number dropped on restore",
				"account": a.Number,
			})
			continue
		}
		seen[a.Number] = true
		cp := a
		b.accounts = append(b.accounts, &cp)
		if a.Number > max {
			max = a.Number
		}
	}
	if len(b.accounts) == 0 {
		b.next = b.start
	} else {
		b.next = max + 1
	}
	obs.SetAccountCount(len(b.accounts))
}

func (b *Bank) snapshotLocked() []Account {
	out := make([]Account, 0, len(b.accounts))
	for _, a := range b.accounts {
		out = append(out, *a)
	}
	return out
}

func (b *Bank) persistLocked() {
	if b.store == nil {
		return
	}
	if err := b.store.Save(b.snapshotLocked()); err != nil {
		obs.LogEvent(map[string]any{
			"level": "warn",
			"msg":   "account snapshot save failed",
			"error": err.Error(),
		})
	}
}

func (b *Bank) observe(op string, err error) {
	obs.ObserveLedgerOp(op, outcomeLabel(err))
	obs.SetAccountCount(len(b.accounts))
}

func outcomeLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, ErrSameAccount):
		return "same_account"
	case errors.Is(err, ErrUnknownService):
		return "unknown_service"
	default:
		return "error"
	}
}
