package core

import (
	"encoding/json"
	"testing"
)

func TestPeriodValidate(t *testing.T) {
	cases := []struct {
		p  Period
		ok bool
	}{
		{Period{Month: 1, Year: 2025}, true},
		{Period{Month: 12, Year: 2025}, true},
		{Period{Month: 0, Year: 2025}, false},
		{Period{Month: 13, Year: 2025}, false},
		{Period{Month: 6, Year: 0}, false},
	}
	for i, tc := range cases {
		err := tc.p.Validate()
		if tc.ok && err != nil {
			t.Fatalf("case %d expected ok, got %v", i, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestHouseholdValidate(t *testing.T) {
	if err := (Household{ID: 1, Name: "1BHK Room"}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Household{ID: 0, Name: "x"}).Validate(); err == nil {
		t.Fatalf("expected error for missing id")
	}
	if err := (Household{ID: 1, Name: "  "}).Validate(); err == nil {
		t.Fatalf("expected error for blank name")
	}
}

func TestBalanceValidate(t *testing.T) {
	if err := (Balance{User: User{ID: 1, Name: "A"}}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Balance{}).Validate(); err == nil {
		t.Fatalf("expected error for missing user id")
	}
}

func TestAmountUnmarshalJSON(t *testing.T) {
	cases := []struct {
		in  string
		out Amount
		ok  bool
	}{
		{`100`, 100, true},
		{`100.5`, 100.5, true},
		{`"100.50"`, 100.5, true}, // server may return decimal strings
		{`"  12.34 "`, 12.34, true},
		{`-25`, -25, true}, // nets can be negative
		{`null`, 0, true},
		{`""`, 0, true},
		{`"abc"`, 0, false},
		{`{}`, 0, false},
	}
	for _, tc := range cases {
		var a Amount
		err := json.Unmarshal([]byte(tc.in), &a)
		if tc.ok {
			if err != nil || a != tc.out {
				t.Fatalf("%s expected %v, got %v (err=%v)", tc.in, tc.out, a, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%s expected error", tc.in)
			}
		}
	}
}

func TestExpenseDecodesWireFormat(t *testing.T) {
	payload := `{"id":3,"amount":"42.00","description":"Groceries","category":"Food","date":"2025-08-01T00:00:00Z","paid_by":1,"payer_name":"A"}`
	var e Expense
	if err := json.Unmarshal([]byte(payload), &e); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if e.ID != 3 || e.Amount != 42 || e.PaidBy != 1 || e.PayerName != "A" {
		t.Fatalf("unexpected decode result: %+v", e)
	}
	if err := e.Validate(); err != nil {
		t.Fatalf("expected valid expense, got %v", err)
	}
}
