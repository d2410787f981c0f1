package sync

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// FormatError reports a feed token that could not be converted to its
// canonical numeric form. Raw keeps the offending value for the caller.
type FormatError struct {
	Field string
	Raw   string
	Err   error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("bad %s value %q: %v", e.Field, e.Raw, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

var nonDigits = regexp.MustCompile(`[^0-9]`)

// NormalizeQuantity переводит токен количества из фида в остаток.
// ">10" и "1" — сентинели поставщика: ">10" значит "больше десяти на
// складе", "1" — последняя штука зарезервирована и не продается.
func NormalizeQuantity(raw string) (int, error) {
	switch raw {
	case ">10":
		return 100, nil
	case "1":
		return 0, nil
	}
	quantity, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &FormatError{Field: "quantity", Raw: raw, Err: err}
	}
	return quantity, nil
}

// NormalizePrice converts a display price like "5'990.00 руб." to an
// integer ruble amount (5990): the first dot cuts off the fractional
// part and whatever follows it, the remaining prefix is stripped of
// every non-digit character.
func NormalizePrice(raw string) (int, error) {
	prefix, _, _ := strings.Cut(raw, ".")
	amount, err := strconv.Atoi(nonDigits.ReplaceAllString(prefix, ""))
	if err != nil {
		return 0, &FormatError{Field: "price", Raw: raw, Err: err}
	}
	return amount, nil
}
