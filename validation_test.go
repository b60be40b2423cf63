package allocation

import (
	"strings"
	"testing"
)

func TestValidateQuote(t *testing.T) {
	tests := []struct {
		name            string
		price, bid, ask float64
		wantContains    []string
	}{
		{
			name:  "clean quote",
			price: 100, bid: 99.5, ask: 100.5,
		},
		{
			name:  "crossed market",
			price: 102, bid: 105, ask: 100,
			wantContains: []string{
				"bid price ($105.00) is higher than ask price ($100.00)",
				"bid price ($105.00) is higher than market price ($102.00)",
				"ask price ($100.00) is lower than market price ($102.00)",
			},
		},
		{
			name:  "large spread",
			price: 100, bid: 96, ask: 104,
			wantContains: []string{"large spread: 8.0%"},
		},
		{
			name:  "missing bid skips bid checks",
			price: 100, bid: 0, ask: 90,
			wantContains: []string{"ask price ($90.00) is lower than market price ($100.00)"},
		},
		{
			name:  "missing bid and ask",
			price: 100, bid: 0, ask: 0,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ValidateQuote("VTI", M(tc.price, usd), M(tc.bid, usd), M(tc.ask, usd))
			if len(got) != len(tc.wantContains) {
				t.Fatalf("ValidateQuote() = %v, want %d anomalies", got, len(tc.wantContains))
			}
			for i, want := range tc.wantContains {
				if !strings.Contains(got[i].Message, want) {
					t.Errorf("anomaly[%d] = %q, want it to contain %q", i, got[i].Message, want)
				}
			}
		})
	}
}

func TestAnomalyString(t *testing.T) {
	a := Anomaly{Ticker: "VTI", Message: "large spread: 8.0%"}
	if got, want := a.String(), "VTI: large spread: 8.0%"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
