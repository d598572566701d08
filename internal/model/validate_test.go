package model

import "testing"

func TestValidateSessionJSON(t *testing.T) {
	valid := `{
		"id": "s1",
		"latex": "\\documentclass{article}",
		"messages": [{"role": "user", "content": "hi"}],
		"checkpoints": [{"label": "Before: hi", "latex": "old"}]
	}`
	if err := ValidateSessionJSON([]byte(valid)); err != nil {
		t.Errorf("valid record rejected: %v", err)
	}
}

func TestValidateSessionJSONRejections(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"missing id", `{"latex": "", "messages": [], "checkpoints": []}`},
		{"empty id", `{"id": "", "latex": "", "messages": [], "checkpoints": []}`},
		{"latex wrong type", `{"id": "s1", "latex": 42, "messages": [], "checkpoints": []}`},
		{"bad role", `{"id": "s1", "latex": "", "messages": [{"role": "system", "content": "x"}], "checkpoints": []}`},
		{"message missing content", `{"id": "s1", "latex": "", "messages": [{"role": "user"}], "checkpoints": []}`},
		{"not an object", `[1, 2, 3]`},
		{"not json", `{{{`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := ValidateSessionJSON([]byte(tc.raw)); err == nil {
				t.Errorf("expected rejection for %s", tc.name)
			}
		})
	}
}
