package ai

import "testing"

func TestStripCodeFences(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "latex fence",
			in:   "```latex\n\\documentclass{article}\n```",
			want: "\\documentclass{article}",
		},
		{
			name: "bare fence",
			in:   "```\nhello\nworld\n```",
			want: "hello\nworld",
		},
		{
			name: "no fence",
			in:   "\\documentclass{article}",
			want: "\\documentclass{article}",
		},
		{
			name: "missing trailing fence",
			in:   "```latex\n\\documentclass{article}",
			want: "\\documentclass{article}",
		},
		{
			name: "fence inside body is kept",
			in:   "plain text with ``` in the middle",
			want: "plain text with ``` in the middle",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := StripCodeFences(tc.in); got != tc.want {
				t.Errorf("StripCodeFences(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
