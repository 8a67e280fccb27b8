package envcast

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

type decimalConfig struct {
	Price      decimal.Decimal  `default:"19.99"`
	Commission *decimal.Decimal `env:"COMMISSION"`
}

func TestDecimal(t *testing.T) {
	cfg, err := FromPairs[decimalConfig]([]Pair{{"PRICE", "123.456"}})
	if err != nil {
		t.Fatalf("FromPairs failed: %v", err)
	}

	expected, _ := decimal.NewFromString("123.456")
	if !cfg.Price.Equal(expected) {
		t.Errorf("Price = %v; want %v", cfg.Price, expected)
	}
}

func TestDecimalNegative(t *testing.T) {
	cfg, err := FromPairs[decimalConfig]([]Pair{{"PRICE", "-0.001"}})
	if err != nil {
		t.Fatalf("FromPairs failed: %v", err)
	}

	expected, _ := decimal.NewFromString("-0.001")
	if !cfg.Price.Equal(expected) {
		t.Errorf("Price = %v; want %v", cfg.Price, expected)
	}
}

func TestDecimalDefault(t *testing.T) {
	cfg, err := FromPairs[decimalConfig](nil)
	if err != nil {
		t.Fatalf("FromPairs failed: %v", err)
	}

	expected, _ := decimal.NewFromString("19.99")
	if !cfg.Price.Equal(expected) {
		t.Errorf("Price = %v; want default %v", cfg.Price, expected)
	}
	if cfg.Commission != nil {
		t.Errorf("Commission = %v; want nil", cfg.Commission)
	}
}

func TestDecimalPointer(t *testing.T) {
	cfg, err := FromPairs[decimalConfig]([]Pair{{"COMMISSION", "0.0025"}})
	if err != nil {
		t.Fatalf("FromPairs failed: %v", err)
	}
	if cfg.Commission == nil {
		t.Fatal("Commission should not be nil")
	}

	expected, _ := decimal.NewFromString("0.0025")
	if !cfg.Commission.Equal(expected) {
		t.Errorf("Commission = %v; want %v", cfg.Commission, expected)
	}
}

func TestDecimalInvalid(t *testing.T) {
	_, err := FromPairs[decimalConfig]([]Pair{{"PRICE", "not-a-decimal"}})
	var ce *CoercionError
	if !errors.As(err, &ce) || ce.Cause != InvalidNumber {
		t.Fatalf("error = %v; want CoercionError with InvalidNumber", err)
	}
}
