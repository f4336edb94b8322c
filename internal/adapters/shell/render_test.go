package shell

import "testing"

func TestRender_PlainTokensUnquoted(t *testing.T) {
	got := Render([]string{"c++", "-c", "-o", "a.o", "a.cpp"})
	want := "c++ -c -o a.o a.cpp"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestRender_QuotesMetacharacters(t *testing.T) {
	got := Render([]string{"echo", "a&&b"})
	want := "echo 'a&&b'"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestRender_QuotesLeadingEqualsAndHash(t *testing.T) {
	if got, want := Render([]string{"x", "=y"}), "x '=y'"; got != want {
		t.Fatalf("got %q want %q", got, want)
	}
	if got, want := Render([]string{"x", "#y"}), "x '#y'"; got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestRender_EscapesEmbeddedSingleQuotes(t *testing.T) {
	got := Render([]string{"echo", "it's"})
	want := `echo 'it'\''s'`
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}
