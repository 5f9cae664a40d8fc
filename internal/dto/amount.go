package dto

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/SscSPs/finance_tracker/internal/utils"
	"github.com/shopspring/decimal"
)

// Amount is a user-entered money value. It accepts a JSON number or currency text as typed
// in a form, such as "1.234,56" or "R$ 10,00".
type Amount struct {
	decimal.Decimal
}

// NewAmount wraps d.
func NewAmount(d decimal.Decimal) Amount {
	return Amount{Decimal: d}
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		a.Decimal = decimal.Zero
		return nil
	}
	if len(data) == 0 || data[0] != '"' {
		return a.Decimal.UnmarshalJSON(data)
	}
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return fmt.Errorf("amount: %w", err)
	}
	d, err := utils.ParseCurrency(text)
	if err != nil {
		return fmt.Errorf("amount: %w", err)
	}
	a.Decimal = d
	return nil
}
