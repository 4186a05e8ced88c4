package slug

import (
	"regexp"
	"strings"
	"testing"
)

// TestGenerate exercises the slug generator with typical casino names and
// page titles, special characters, unicode, and boundary conditions.
func TestGenerate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		// --- Normal titles ---
		{name: "simple two words", input: "Hello World", want: "hello-world"},
		{name: "casino name", input: "Lucky Star Casino", want: "lucky-star-casino"},
		{name: "title with year", input: "Best Casinos 2026", want: "best-casinos-2026"},
		{name: "single word", input: "About", want: "about"},

		// --- Special characters ---
		{name: "punctuation marks", input: "Hello, World! How's it going?", want: "hello-world-hows-it-going"},
		{name: "ampersand", input: "Slots & Table Games", want: "slots-table-games"},
		{name: "dots removed", input: "Casino.com Review", want: "casinocom-review"},
		{name: "percent and plus", input: "100% Bonus + 50 Spins", want: "100-bonus-50-spins"},

		// --- Underscores and hyphens ---
		{name: "underscores become hyphens", input: "snake_case_title", want: "snake-case-title"},
		{name: "mixed separators collapse", input: "a _-_ b", want: "a-b"},
		{name: "leading and trailing hyphens", input: "--hello--", want: "hello"},
		{name: "leading and trailing spaces", input: "  padded  ", want: "padded"},
		{name: "tabs and newlines", input: "one\ttwo\nthree", want: "one-two-three"},

		// --- Unicode ---
		{name: "accented characters stripped", input: "Café Résumé", want: "caf-rsum"},
		{name: "only unicode chars", input: "日本語", want: ""},

		// --- Edge cases ---
		{name: "empty string", input: "", want: ""},
		{name: "only spaces", input: "   ", want: ""},
		{name: "only hyphens", input: "---", want: ""},
		{name: "only special characters", input: "!@#$%^&*()", want: ""},
		{name: "already a slug", input: "already-a-slug", want: "already-a-slug"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Generate(tt.input)
			if got != tt.want {
				t.Errorf("Generate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// TestGenerateIdempotent verifies that slugifying a slug yields the same slug.
func TestGenerateIdempotent(t *testing.T) {
	inputs := []string{"Lucky Star Casino", "  Mixed_Case -- Title ", "Über Bonus!"}
	for _, in := range inputs {
		once := Generate(in)
		if twice := Generate(once); twice != once {
			t.Errorf("Generate not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

var mintedID = regexp.MustCompile(`^casino-lucky-star-[0-9a-f]{12}$`)

func TestMintID(t *testing.T) {
	t.Run("embeds kind and slug", func(t *testing.T) {
		id := MintID("casino", "Lucky Star")
		if !mintedID.MatchString(id) {
			t.Errorf("MintID = %q, does not match %s", id, mintedID)
		}
	})

	t.Run("empty name omits slug segment", func(t *testing.T) {
		id := MintID("page", "!!!")
		if !strings.HasPrefix(id, "page-") || len(id) != len("page-")+12 {
			t.Errorf("MintID = %q, want page-<12 hex>", id)
		}
	})

	t.Run("repeated calls do not collide", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 1000; i++ {
			id := MintID("casino", "Same Name")
			if seen[id] {
				t.Fatalf("duplicate id after %d calls: %s", i, id)
			}
			seen[id] = true
		}
	})
}
