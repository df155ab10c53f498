package seotext

import "testing"

func TestFilterTextCustom(t *testing.T) {
	cases := []struct {
		name, in, want string
	}{
		{"empty", "   ", ""},
		{"amp run collapses", "Tom &amp;amp;amp; Co", "Tom & Co"},
		{"single escaped amp", "Tom &amp; Co", "Tom & Co"},
		{"numeric apostrophe", "it&#39;s fine", "it's fine"},
		{"angle entities", "5 &gt; 3 &lt; 7", "5 > 3 < 7"},
		{"quotes and dashes", "&ldquo;hi&rdquo; &ndash; bye &mdash; end", `"hi" - bye -- end`},
		{"latin junk", "word&Acirc;&nbsp;next", "word  next"},
		{"plain text untouched", "Plumbing & Repair", "Plumbing & Repair"},
		// Dropping the junk byte forms a real entity mid-pass; the later
		// table steps must still decode it.
		{"deletion forms nbsp", "a&nb&#153;sp;b", "a b"},
		{"deletion forms rsquo", "don&rsqu&#128;o;t", "don't"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FilterTextCustom(tc.in); got != tc.want {
				t.Fatalf("FilterTextCustom(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestFilterTextCustom_Idempotent(t *testing.T) {
	for _, in := range []string{
		"it&#39;s &gt; &ldquo;done&rdquo;",
		// Entities formed mid-pass fully decode in one application, so the
		// second application finds nothing left to rewrite.
		"a&nb&#153;sp;b",
		"don&rsqu&#128;o;t",
	} {
		once := FilterTextCustom(in)
		if twice := FilterTextCustom(once); twice != once {
			t.Fatalf("second pass changed output for %q: %q -> %q", in, once, twice)
		}
	}
}

func TestTextCustom(t *testing.T) {
	// The apostrophe strip runs after the &#39; decode, so decoded
	// apostrophes are stripped too.
	if got := TextCustom("Bob's test: done"); got != "Bobs test done" {
		t.Fatalf("TextCustom = %q", got)
	}
	if got := TextCustom("It&#39;s fine"); got != "Its fine" {
		t.Fatalf("TextCustom = %q", got)
	}
	if got := TextCustom("a &amp;amp;amp; b"); got != "a & b" {
		t.Fatalf("TextCustom amp run = %q", got)
	}
}

func TestToASCII(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Bob's Plumbing", "Bobs Plumbing"},
		{"Tom & Jerry", "Tom Jerry"},
		{"Tom &amp; Jerry", "Tom Jerry"},
		{"AT&T Store", "ATT Store"},
	}
	for _, tc := range cases {
		if got := ToASCII(tc.in); got != tc.want {
			t.Errorf("ToASCII(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSlug(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Plumbing Repair", "plumbing-repair"},
		{"Bob's  Plumbing & Heating", "bobs-plumbing-heating"},
		{"  spaced   out  ", "spaced-out"},
		{"Already-Hyphenated Title", "already-hyphenated-title"},
		{"100% Guaranteed!", "100-guaranteed"},
	}
	for _, tc := range cases {
		if got := Slug(tc.in); got != tc.want {
			t.Errorf("Slug(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCleanTitle(t *testing.T) {
	if got := CleanTitle("plumbing repair dallas"); got != "Plumbing Repair Dallas" {
		t.Fatalf("lowercase input: %q", got)
	}
	// Deliberate capitalization passes through unchanged.
	if got := CleanTitle("ACME plumbing"); got != "ACME plumbing" {
		t.Fatalf("mixed case input: %q", got)
	}
	if got := CleanTitle("  padded  "); got != "Padded" {
		t.Fatalf("trim: %q", got)
	}
}

func TestStripTags(t *testing.T) {
	if got := StripTags(`<p>Hello <a href="x">world</a></p>`); got != "Hello world" {
		t.Fatalf("StripTags = %q", got)
	}
}

func TestFirstWords(t *testing.T) {
	if got := FirstWords("one two  three\nfour five", 3); got != "one two three" {
		t.Fatalf("FirstWords = %q", got)
	}
	if got := FirstWords("one two", 5); got != "one two" {
		t.Fatalf("short input = %q", got)
	}
}
