package dto_test

import (
	"encoding/json"
	"testing"

	"github.com/SscSPs/finance_tracker/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmount_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"number", `12.5`, "12.5"},
		{"plain string", `"30"`, "30"},
		{"grouped with comma decimal", `"1.234,56"`, "1234.56"},
		{"currency symbol", `"R$ 10,00"`, "10"},
		{"null", `null`, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req struct {
				Amount dto.Amount `json:"amount"`
			}
			require.NoError(t, json.Unmarshal([]byte(`{"amount":`+tt.input+`}`), &req))
			assert.True(t, decimal.RequireFromString(tt.want).Equal(req.Amount.Decimal), "got %s", req.Amount)
		})
	}
}

func TestAmount_UnmarshalJSONRejectsGarbage(t *testing.T) {
	var a dto.Amount
	assert.Error(t, json.Unmarshal([]byte(`"1-2"`), &a))
	assert.Error(t, json.Unmarshal([]byte(`true`), &a))
}

func TestAmount_MarshalsAsDecimal(t *testing.T) {
	out, err := json.Marshal(struct {
		Amount dto.Amount `json:"amount"`
	}{dto.NewAmount(decimal.RequireFromString("10.5"))})
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":"10.5"}`, string(out))
}
