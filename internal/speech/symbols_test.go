package speech

import "testing"

func TestSymbolTable_SubstituteExcludesSpace(t *testing.T) {
	st := NewSymbolTable()
	st.Set(32, "space") // must be ignored per policy
	st.Set('#', "pound")

	got := st.Substitute("a b#c")
	want := "a b pound c"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestSymbolTable_CharacterAlwaysSubstitutes(t *testing.T) {
	st := NewSymbolTable()
	st.Set('@', "at")

	word, ok := st.Character('@')
	if !ok || word != "at" {
		t.Fatalf("expected (at, true), got (%q, %v)", word, ok)
	}
	if _, ok := st.Character('!'); ok {
		t.Fatal("expected no mapping for unconfigured character")
	}
}

func TestSymbolTable_DeleteRebuilds(t *testing.T) {
	st := NewSymbolTable()
	st.Set('$', "dollar")
	if got := st.Substitute("$5"); got != " dollar 5" {
		t.Fatalf("unexpected substitution before delete: %q", got)
	}
	st.Delete('$')
	if got := st.Substitute("$5"); got != "$5" {
		t.Fatalf("expected no substitution after delete, got %q", got)
	}
}

func TestCompressRepeats(t *testing.T) {
	got := CompressRepeats("----hello==world!", "-=!#")
	want := "4 -hello2 =world!"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestCompressRepeats_SingleCharUnaffected(t *testing.T) {
	got := CompressRepeats("-hello-", "-=!#")
	if got != "-hello-" {
		t.Fatalf("expected unaffected single chars, got %q", got)
	}
}

func TestCompressRepeats_OtherCharsPassThrough(t *testing.T) {
	got := CompressRepeats("aaa---bbb", "-")
	want := "aaa3 -bbb"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
