package gemini

import (
	"strings"
	"testing"
)

func TestSanitizeOracleTextRemovesInlineParenthesizedDisclaimer(t *testing.T) {
	t.Parallel()

	in := "استارتاپ ایکس ۵ میلیون دلار جذب کرد\n(Note: This translation is a machine translation and may contain errors.) متن اصلی خبر ادامه دارد."
	out := SanitizeOracleText(in)
	if out == "" {
		t.Fatal("got empty output")
	}
	if strings.Contains(strings.ToLower(out), "note:") {
		t.Errorf("output still contains disclaimer: %q", out)
	}
	if !strings.Contains(out, "متن اصلی خبر ادامه دارد") {
		t.Errorf("expected content preserved after disclaimer removal, got: %q", out)
	}
}

func TestSanitizeOracleTextRemovesFullLineNote(t *testing.T) {
	t.Parallel()

	in := "Note: This translation is a machine translation and may contain errors.\nخبر واقعی اینجاست."
	out := SanitizeOracleText(in)
	if strings.Contains(strings.ToLower(out), "note:") {
		t.Errorf("disclaimer line was not removed: %q", out)
	}
	if !strings.Contains(out, "خبر واقعی اینجاست") {
		t.Errorf("expected content line to remain: %q", out)
	}
}

func TestSanitizeOracleTextRemovesBracketedDisclaimer(t *testing.T) {
	t.Parallel()

	in := "[Note: Machine translation] این یک خط آزمایشی است."
	out := SanitizeOracleText(in)
	if strings.Contains(strings.ToLower(out), "note") {
		t.Errorf("bracketed disclaimer was not removed: %q", out)
	}
	if !strings.Contains(out, "این یک خط آزمایشی است") {
		t.Errorf("expected text preserved, got %q", out)
	}
}

func TestSanitizeOracleTextKeepsFooter(t *testing.T) {
	t.Parallel()

	in := "💎 خبر مهم\n\nمتن خبر.\n\n🆔 @techionn"
	out := SanitizeOracleText(in)
	if !strings.HasSuffix(out, "🆔 @techionn") {
		t.Errorf("channel footer must survive sanitation, got %q", out)
	}
}
