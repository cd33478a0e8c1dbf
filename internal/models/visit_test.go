package models

import (
	"encoding/json"
	"testing"
)

func TestNewCountResponse(t *testing.T) {
	tests := []struct {
		visits uint64
		want   string
	}{
		{0, `{"count":"0"}`},
		{1, `{"count":"1"}`},
		{18446744073709551615, `{"count":"18446744073709551615"}`},
	}

	for _, tt := range tests {
		body, err := json.Marshal(NewCountResponse(tt.visits))
		if err != nil {
			t.Fatalf("Marshal failed: %v", err)
		}
		if string(body) != tt.want {
			t.Errorf("Expected %s, got %s", tt.want, body)
		}
	}
}
