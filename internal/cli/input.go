package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	apperrors "bankdesk/internal/errors"

	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// isTerminal is a test seam for term.IsTerminal.
var isTerminal = term.IsTerminal

// errCancelled is returned by the prompt helpers when the user submits an empty answer
var errCancelled = errors.New("cancelled")

// GetSimpleText prints a prompt to w and reads a single line of input from reader.
// The line is trimmed. If EOF occurs after some input was read, the partial
// line is returned.
//
// Example prompt format:
//
//	Prompt text
//	> _
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	line, err := readLine(reader, prompt, w)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetSecret reads a line without echo when fd is a terminal, and falls back
// to a plain line read otherwise (pipes, scripted input). Only the line
// terminator is removed from the answer.
func GetSecret(reader *bufio.Reader, prompt string, w io.Writer, fd int) (string, error) {
	if fd < 0 || !isTerminal(fd) {
		return readLine(reader, prompt, w)
	}

	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	secret, err := readPassword(fd)
	fmt.Fprintln(w)
	if err != nil {
		return "", err
	}
	return string(secret), nil
}

func readLine(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || len(line) == 0) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// ParseAmount converts user input to an amount. An empty answer cancels the
// dialog; anything that is not a finite number is invalid input.
func ParseAmount(text string) (float64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, errCancelled
	}

	amount, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, apperrors.NewInputError(apperrors.ValidationInvalidFormat, "")
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, apperrors.NewInputError(apperrors.ValidationInvalidAmount, "")
	}
	return amount, nil
}

// ParseAccountNumber converts user input to an account number
func ParseAccountNumber(text string) (int64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, errCancelled
	}

	accountNumber, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return 0, apperrors.NewInputError(apperrors.ValidationInvalidFormat, "Please enter a valid account number")
	}
	return accountNumber, nil
}
