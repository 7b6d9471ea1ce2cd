// Package cli is the interactive shell over the ledger. It owns every
// prompt, input check and formatting rule; the ledger only ever sees
// already-validated primitive values.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"umabank.org/internal/audit"
	"umabank.org/internal/ledger"
)

// Shell runs the UMABANK menu loop against a Bank.
type Shell struct {
	bank     *ledger.Bank
	currency string
	in       *bufio.Scanner
	out      io.Writer
}

// New builds a shell reading prompts from in and writing to out.
func New(bank *ledger.Bank, currency string, in io.Reader, out io.Writer) *Shell {
	return &Shell{
		bank:     bank,
		currency: currency,
		in:       bufio.NewScanner(in),
		out:      out,
	}
}

// Run loops over the menu until the user quits, input ends, or the
// context is cancelled. Each operation's outcome is audited.
func (s *Shell) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		s.printMenu()
		choice, ok := s.promptInt("Escolha uma opcao: ")
		if !ok {
			return nil // input closed
		}
		switch choice {
		case 1:
			s.openAccount(ctx)
		case 2:
			s.deposit(ctx)
		case 3:
			s.withdraw(ctx)
		case 4:
			s.showAccount(ctx)
		case 5:
			s.listAccounts()
		case 6:
			s.transfer(ctx)
		case 7:
			s.closeAccount(ctx)
		case 8:
			s.payService(ctx)
		case 0:
			fmt.Fprintln(s.out, "\nObrigado por usar o UMA Banking System!")
			return nil
		default:
			fmt.Fprintln(s.out, "\nOpcao invalida. Tente novamente.")
		}
	}
}

func (s *Shell) printMenu() {
	fmt.Fprintln(s.out, "\n=== UMABANK - Banco Angolano ===")
	fmt.Fprintln(s.out, "1. Abrir Conta")
	fmt.Fprintln(s.out, "2. Depositar")
	fmt.Fprintln(s.out, "3. Levantar")
	fmt.Fprintln(s.out, "4. Consultar Conta")
	fmt.Fprintln(s.out, "5. Listar Todas as Contas")
	fmt.Fprintln(s.out, "6. Transferencia")
	fmt.Fprintln(s.out, "7. Encerrar Conta")
	fmt.Fprintln(s.out, "8. Pagar Servico")
	fmt.Fprintln(s.out, "0. Sair")
}

func (s *Shell) openAccount(ctx context.Context) {
	name, ok := s.promptValidated("Nome completo: ", ValidName,
		"Nome invalido. Use apenas letras e caracteres comuns em nomes.")
	if !ok {
		return
	}
	bi, ok := s.promptValidated("BI: ", ValidNationalID,
		"BI invalido. Deve conter entre 8 e 15 digitos.")
	if !ok {
		return
	}
	nationality, ok := s.promptLine("Nacionalidade: ")
	if !ok {
		return
	}
	birthDate, ok := s.promptValidated("Data de nascimento (DD-MM-AAAA): ", ValidDate,
		"Data invalida. Use o formato DD-MM-AAAA.")
	if !ok {
		return
	}
	initial, ok := s.promptInitialBalance("Saldo inicial: ")
	if !ok {
		return
	}

	number, err := s.bank.OpenAccount(name, bi, nationality, birthDate, initial)
	_ = audit.LogEvent(ctx, "ledger.account_opened", map[string]any{"account": number})
	if err != nil {
		fmt.Fprintln(s.out, "\nErro ao abrir conta.")
		return
	}
	fmt.Fprintf(s.out, "\nConta aberta com sucesso! Numero da conta: %d\n", number)
}

func (s *Shell) deposit(ctx context.Context) {
	number, ok := s.promptInt("Numero da conta: ")
	if !ok {
		return
	}
	amount, ok := s.promptAmount("Valor a depositar: ")
	if !ok {
		return
	}
	err := s.bank.Deposit(number, amount)
	_ = audit.LogEvent(ctx, "ledger.deposit", map[string]any{
		"account": number, "amount": amount.String(), "ok": err == nil,
	})
	if err != nil {
		fmt.Fprintln(s.out, "\nErro ao realizar deposito. Verifique o numero da conta.")
		return
	}
	fmt.Fprintln(s.out, "\nDeposito realizado com sucesso!")
}

func (s *Shell) withdraw(ctx context.Context) {
	number, ok := s.promptInt("Numero da conta: ")
	if !ok {
		return
	}
	amount, ok := s.promptAmount("Valor a levantar: ")
	if !ok {
		return
	}
	err := s.bank.Withdraw(number, amount)
	_ = audit.LogEvent(ctx, "ledger.withdraw", map[string]any{
		"account": number, "amount": amount.String(), "ok": err == nil,
	})
	if err != nil {
		fmt.Fprintln(s.out, "\nErro ao realizar levantamento. Verifique o numero da conta e o saldo.")
		return
	}
	fmt.Fprintln(s.out, "\nLevantamento realizado com sucesso!")
}

func (s *Shell) transfer(ctx context.Context) {
	from, ok := s.promptInt("Conta de origem: ")
	if !ok {
		return
	}
	to, ok := s.promptInt("Conta de destino: ")
	if !ok {
		return
	}
	amount, ok := s.promptAmount("Valor a transferir: ")
	if !ok {
		return
	}
	err := s.bank.Transfer(from, to, amount)
	_ = audit.LogEvent(ctx, "ledger.transfer", map[string]any{
		"from": from, "to": to, "amount": amount.String(), "ok": err == nil,
	})
	if err != nil {
		fmt.Fprintln(s.out, "\nErro ao realizar transferencia. Verifique os numeros das contas e o saldo.")
		return
	}
	fmt.Fprintln(s.out, "\nTransferencia realizada com sucesso!")
}

func (s *Shell) closeAccount(ctx context.Context) {
	number, ok := s.promptInt("Numero da conta a encerrar: ")
	if !ok {
		return
	}
	err := s.bank.CloseAccount(number)
	_ = audit.LogEvent(ctx, "ledger.account_closed", map[string]any{
		"account": number, "ok": err == nil,
	})
	if err != nil {
		fmt.Fprintln(s.out, "\nErro ao encerrar conta. Verifique o numero da conta.")
		return
	}
	fmt.Fprintln(s.out, "\nConta encerrada com sucesso!")
}

func (s *Shell) payService(ctx context.Context) {
	fmt.Fprintln(s.out, "\n--- Servicos Disponiveis ---")
	for _, svc := range s.bank.Services() {
		fmt.Fprintf(s.out, "%d\t%s\t%s\n", svc.ID, svc.Name, s.money(svc.Price))
	}
	number, ok := s.promptInt("Numero da conta: ")
	if !ok {
		return
	}
	serviceID, ok := s.promptInt("ID do servico: ")
	if !ok {
		return
	}
	err := s.bank.PayService(number, serviceID)
	_ = audit.LogEvent(ctx, "ledger.service_paid", map[string]any{
		"account": number, "service": serviceID, "ok": err == nil,
	})
	if err != nil {
		fmt.Fprintln(s.out, "\nErro no pagamento. Verifique a conta, o servico e o saldo.")
		return
	}
	fmt.Fprintln(s.out, "\nPagamento realizado com sucesso!")
}

func (s *Shell) showAccount(ctx context.Context) {
	number, ok := s.promptInt("Numero da conta: ")
	if !ok {
		return
	}
	acc, err := s.bank.Account(number)
	if err != nil {
		fmt.Fprintf(s.out, "\nConta %d nao encontrada.\n", number)
		return
	}
	s.printAccount(acc)
}

func (s *Shell) listAccounts() {
	accounts := s.bank.Accounts()
	if len(accounts) == 0 {
		fmt.Fprintln(s.out, "\nNao ha contas registadas no banco.")
		return
	}
	fmt.Fprintln(s.out, "\n--- Contas no UMABANK ---")
	for _, acc := range accounts {
		s.printAccount(acc)
	}
}

func (s *Shell) printAccount(acc ledger.Account) {
	fmt.Fprintln(s.out, "\n=== DETALHES DA CONTA ===")
	fmt.Fprintf(s.out, "Numero da Conta: %d\n", acc.Number)
	fmt.Fprintf(s.out, "IBAN: %s\n", acc.IBAN)
	fmt.Fprintf(s.out, "Titular: %s\n", acc.FullName)
	fmt.Fprintf(s.out, "BI: %s\n", acc.NationalID)
	fmt.Fprintf(s.out, "Nacionalidade: %s\n", acc.Nationality)
	fmt.Fprintf(s.out, "Data de Nascimento: %s\n", acc.BirthDate)
	fmt.Fprintf(s.out, "Saldo: %s\n", s.money(acc.Balance))
}

func (s *Shell) money(m ledger.Money) string {
	return m.String() + " " + s.currency
}

// promptLine reads one raw input line. ok is false once input is closed.
func (s *Shell) promptLine(prompt string) (string, bool) {
	fmt.Fprint(s.out, prompt)
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

func (s *Shell) promptValidated(prompt string, valid func(string) bool, msg string) (string, bool) {
	for {
		line, ok := s.promptLine(prompt)
		if !ok {
			return "", false
		}
		if valid(line) {
			return line, true
		}
		fmt.Fprintln(s.out, msg)
	}
}

func (s *Shell) promptInt(prompt string) (int, bool) {
	for {
		line, ok := s.promptLine(prompt)
		if !ok {
			return 0, false
		}
		n, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintln(s.out, "Entrada invalida. Por favor, digite um valor valido.")
			continue
		}
		return n, true
	}
}

// promptInitialBalance allows zero, unlike operation amounts.
func (s *Shell) promptInitialBalance(prompt string) (ledger.Money, bool) {
	for {
		line, ok := s.promptLine(prompt)
		if !ok {
			return 0, false
		}
		amount, err := ledger.ParseMoney(line)
		if err != nil || amount < 0 || amount > maxAmount {
			fmt.Fprintln(s.out, "Valor invalido. O valor deve estar entre 0 e 10.000.000.")
			continue
		}
		return amount, true
	}
}

func (s *Shell) promptAmount(prompt string) (ledger.Money, bool) {
	for {
		line, ok := s.promptLine(prompt)
		if !ok {
			return 0, false
		}
		amount, err := ledger.ParseMoney(line)
		if err != nil || !ValidAmount(amount) {
			fmt.Fprintln(s.out, "Valor invalido. O valor deve estar entre 0 e 10.000.000.")
			continue
		}
		return amount, true
	}
}
