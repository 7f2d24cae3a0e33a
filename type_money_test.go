package drip

import (
	"testing"
)

func TestMoneyFormat(t *testing.T) {
	testCases := []struct {
		m      Money
		places int32
		want   string
	}{
		{M(dec("1234.56789"), "USD"), 4, "$1,234.5679"},
		{M(dec("1234.5"), "USD"), 2, "$1,234.50"},
		{M(dec("-5.45"), "USD"), 4, "-$5.4500"},
		{M(dec("3.14159"), ""), 2, "3.14"},
	}
	for _, tc := range testCases {
		if got := tc.m.Format(tc.places); got != tc.want {
			t.Errorf("%v.Format(%d) = %q want %q", tc.m.Decimal(), tc.places, got, tc.want)
		}
	}
	if got := USD(44).String(); got != "$44.00" {
		t.Errorf("USD(44).String() = %q", got)
	}
}

func TestMoneyCurrencyMismatch(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("adding USD to EUR should panic")
		}
	}()
	USD(1).Add(M(1, "EUR"))
}

func TestMoneyWeakCurrency(t *testing.T) {
	got := USD(1).Add(M(2, ""))
	if got.Currency() != "USD" || !got.Decimal().Equal(dec("3")) {
		t.Errorf("USD(1)+2 = %v %v", got.Decimal(), got.Currency())
	}
}

func TestMoneyEqual(t *testing.T) {
	if !USD(1.5).Equal(M(dec("1.50"), "USD")) {
		t.Error("1.5 USD should equal 1.50 USD")
	}
	if USD(1.5).Equal(M(dec("1.5"), "EUR")) {
		t.Error("USD should not equal EUR")
	}
	if USD(1.5).Equal(USD(1.4)) {
		t.Error("1.5 USD should not equal 1.4 USD")
	}
}
