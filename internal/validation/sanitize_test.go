package validation

import "testing"

func TestSanitizeString(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"script tag", "  <script>alert(1)</script>Hello  ", "alert(1)Hello"},
		{"nested tags", "<div><b>negrito</b></div>", "negrito"},
		{"control chars", "linha\x00um\x1f fim", "linhaum fim"},
		{"c1 range", "caf\u0085é", "café"},
		{"plain", "sem mudanças", "sem mudanças"},
		{"only whitespace", "   \t ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeString(tt.in); got != tt.want {
				t.Errorf("SanitizeString(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSanitizeStringIdempotent(t *testing.T) {
	in := "  <b>Olá</b> mundo\x07  "
	once := SanitizeString(in)
	twice := SanitizeString(once)
	if once != twice {
		t.Errorf("sanitization not idempotent: %q != %q", once, twice)
	}
}

func TestSanitizeInput(t *testing.T) {
	title := " <i>Tarefa</i> "
	desc := "descrição\x00"
	in := TaskInput{Title: &title, Description: &desc}

	out := SanitizeInput(in)
	if *out.Title != "Tarefa" {
		t.Errorf("Title = %q", *out.Title)
	}
	if *out.Description != "descrição" {
		t.Errorf("Description = %q", *out.Description)
	}
	// original payload untouched
	if *in.Title != " <i>Tarefa</i> " {
		t.Error("SanitizeInput must not mutate its argument")
	}
	if out.Status != nil {
		t.Error("absent fields stay absent")
	}
}
