package arabic

import (
	"math/rand"
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"
)

// ═══════════════════════════════════════════════════════════════════════════════
// STEMMER TESTS
// ═══════════════════════════════════════════════════════════════════════════════

func TestStem(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		// Prefixes
		{"al", "الكتاب", "كتاب"},
		{"wal", "والكتب", "كتب"},
		{"bal", "بالقلم", "قلم"},
		{"fal", "فالولد", "ولد"},

		// Suffixes
		{"ta marbuta", "مدرسة", "مدرس"},
		{"possessive ha", "كتابه", "كتاب"},
		{"masculine plural un", "يكتبون", "يكتب"},

		// Both
		{"al and un", "المعلمون", "معلم"},
		{"al and in", "المسلمين", "مسلم"},
		{"al and at", "الطالبات", "طالب"},

		// At most one of each
		{"single suffix only", "معلماته", "معلمات"},
		{"single prefix only", "الالكتاب", "الكتاب"},

		// Length guard
		{"three letters untouched", "كتب", "كتب"},
		{"short word with prefix shape", "الم", "الم"},
		{"empty", "", ""},
		{"guard looks at the input only", "الون", ""},

		// No affix
		{"no affix", "قلم", "قلم"},
		{"four letters no affix", "مكتب", "مكتب"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Stem(tt.input)
			if got != tt.want {
				t.Errorf("Stem(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestStem_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	letters := []rune("ابتثجحخدذرزسشصضطظعغفقكلمنهوية")

	for i := 0; i < 2000; i++ {
		n := rng.Intn(9)
		word := make([]rune, n)
		for j := range word {
			word[j] = letters[rng.Intn(len(letters))]
		}
		w := string(word)
		got := Stem(w)

		if n < minStemLength && got != w {
			t.Fatalf("Stem(%q) = %q, short words must be unchanged", w, got)
		}
		if utf8.RuneCountInString(got) > n {
			t.Fatalf("Stem(%q) = %q grew", w, got)
		}
		// What remains is a contiguous piece of the input.
		if !strings.Contains(w, got) {
			t.Fatalf("Stem(%q) = %q is not a substring of the input", w, got)
		}
		// At most 3 leading and 2 trailing code points go away.
		if removed := n - utf8.RuneCountInString(got); removed > 5 {
			t.Fatalf("Stem(%q) = %q removed %d code points", w, got, removed)
		}
	}
}

func TestAffixTables(t *testing.T) {
	wantPrefixes := []string{"ال", "وال", "بال", "فال"}
	wantSuffixes := []string{"ون", "ين", "ات", "ه", "ة"}

	if got := Prefixes(); !reflect.DeepEqual(got, wantPrefixes) {
		t.Errorf("Prefixes() = %q, want %q", got, wantPrefixes)
	}
	if got := Suffixes(); !reflect.DeepEqual(got, wantSuffixes) {
		t.Errorf("Suffixes() = %q, want %q", got, wantSuffixes)
	}

	p := Prefixes()
	p[0] = "x"
	s := Suffixes()
	s[0] = "x"

	if Stem("الكتاب") != "كتاب" || Stem("يكتبون") != "يكتب" {
		t.Error("mutating the returned tables changed stemming")
	}
}

func BenchmarkStem(b *testing.B) {
	words := []string{"الكتاب", "والمعلمون", "مدرسة", "كتب", "بالقلم"}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Stem(words[i%len(words)])
	}
}
