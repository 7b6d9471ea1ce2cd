// Package file persists the account registry as a flat text file, one
// account per line, seven delimiter-separated fields:
//
//	number|balance|full_name|national_id|nationality|birth_date|iban
//
// The whole file is rewritten on every save. Loading is forgiving: a
// malformed line is skipped with a warning so one bad record cannot
// take the rest of the book down with it.
package file

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"umabank.org/internal/ledger"
	"umabank.org/internal/obs"
)

const fieldCount = 7

// ParseError describes a persisted line that could not be decoded.
type ParseError struct {
	Line   int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

// Store reads and writes the account file. Delim must be a single
// character, chosen once and used for both directions; '|' and ';' are
// the supported choices.
type Store struct {
	Path  string
	Delim byte
}

// New returns a store over path using '|' as the field delimiter.
func New(path string) *Store {
	return &Store{Path: path, Delim: '|'}
}

// Save rewrites the file with every account, one line each, in the
// given order. Not atomic: a crash mid-write can leave a short file.
func (s *Store) Save(accounts []ledger.Account) error {
	f, err := os.Create(s.Path)
	if err != nil {
		return fmt.Errorf("open %s for write: %w", s.Path, err)
	}
	w := bufio.NewWriter(f)
	for _, a := range accounts {
		if _, err := w.WriteString(s.encode(a)); err != nil {
			f.Close()
			return fmt.Errorf("write %s: %w", s.Path, err)
		}
		if err := w.WriteByte('\n'); err != nil {
			f.Close()
			return fmt.Errorf("write %s: %w", s.Path, err)
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", s.Path, err)
	}
	return f.Close()
}

// Load reads every parseable account from the file, preserving file
// order. A missing file is an empty book, not an error. Blank lines are
// skipped silently; malformed lines are skipped with a warning.
func (s *Store) Load() ([]ledger.Account, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open %s: %w", s.Path, err)
	}
	defer f.Close()

	var accounts []ledger.Account
	sc := bufio.NewScanner(f)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		a, err := s.decode(line)
		if err != nil {
			obs.LogEvent(map[string]any{
				"level": "warn",
				"msg":   "skipping malformed account line",
				"file":  s.Path,
				"error": (&ParseError{Line: lineNo, Reason: err.Error()}).Error(),
			})
			continue
		}
		accounts = append(accounts, a)
	}
	if err := sc.Err(); err != nil {
		return accounts, fmt.Errorf("read %s: %w", s.Path, err)
	}
	return accounts, nil
}

func (s *Store) encode(a ledger.Account) string {
	fields := []string{
		strconv.Itoa(a.Number),
		a.Balance.String(),
		a.FullName,
		a.NationalID,
		a.Nationality,
		a.BirthDate,
		a.IBAN,
	}
	for i, f := range fields {
		fields[i] = s.escape(f)
	}
	return strings.Join(fields, string(s.Delim))
}

func (s *Store) decode(line string) (ledger.Account, error) {
	fields := s.splitFields(line)
	if len(fields) != fieldCount {
		return ledger.Account{}, fmt.Errorf("expected %d fields, got %d", fieldCount, len(fields))
	}
	number, err := strconv.Atoi(fields[0])
	if err != nil {
		return ledger.Account{}, fmt.Errorf("account number %q: not an integer", fields[0])
	}
	if number <= 0 {
		return ledger.Account{}, fmt.Errorf("account number %d: must be positive", number)
	}
	balance, err := ledger.ParseMoney(fields[1])
	if err != nil {
		return ledger.Account{}, fmt.Errorf("balance: %v", err)
	}
	if balance < 0 {
		return ledger.Account{}, fmt.Errorf("balance %s: negative", balance)
	}
	return ledger.Account{
		Number:      number,
		Balance:     balance,
		FullName:    fields[2],
		NationalID:  fields[3],
		Nationality: fields[4],
		BirthDate:   fields[5],
		IBAN:        fields[6],
	}, nil
}

// escape backslash-escapes the delimiter and the backslash itself, so a
// free-text field containing the delimiter round-trips instead of
// shifting every field after it.
func (s *Store) escape(field string) string {
	var sb strings.Builder
	for i := 0; i < len(field); i++ {
		c := field[i]
		if c == '\\' || c == s.Delim {
			sb.WriteByte('\\')
		}
		sb.WriteByte(c)
	}
	return sb.String()
}

// splitFields splits on the unescaped delimiter and unescapes each
// field. Lines written without escaping (by older exports) parse the
// same as before as long as no field embeds the delimiter.
func (s *Store) splitFields(line string) []string {
	var fields []string
	var sb strings.Builder
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '\\' && i+1 < len(line):
			i++
			sb.WriteByte(line[i])
		case c == s.Delim:
			fields = append(fields, sb.String())
			sb.Reset()
		default:
			sb.WriteByte(c)
		}
	}
	fields = append(fields, sb.String())
	return fields
}
