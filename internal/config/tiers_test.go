package config

import "testing"

func TestResolveExplicitWinsOverNickname(t *testing.T) {
	rules := DefaultTierRules()
	if got := rules.Resolve("senior", "Household Membership"); got != "Senior" {
		t.Fatalf("explicit metadata must win, got %q", got)
	}
}

func TestResolveFallsBackToNickname(t *testing.T) {
	rules := DefaultTierRules()
	cases := map[string]string{
		"Household Membership 2026": "Household",
		"Family Plan":               "Household",
		"individual":                "Individual",
		"Senior Discount":           "Senior",
		"STUDENT membership":        "Student",
	}
	for nickname, want := range cases {
		if got := rules.Resolve("", nickname); got != want {
			t.Fatalf("Resolve(%q) = %q, want %q", nickname, got, want)
		}
	}
}

func TestResolveUnmappableReturnsEmpty(t *testing.T) {
	rules := DefaultTierRules()
	if got := rules.Resolve("", "Legacy Plan"); got != "" {
		t.Fatalf("unmappable nickname must return empty, got %q", got)
	}
	if got := rules.Resolve("", ""); got != "" {
		t.Fatalf("empty input must return empty, got %q", got)
	}
}

func TestStaticHolderServesFixedRules(t *testing.T) {
	custom := TierRules{Rules: []TierRule{{Keyword: "patron", Tier: "Household"}}}
	holder := NewStaticTierRulesHolder(custom)
	if got := holder.Current().Resolve("", "Patron 2026"); got != "Household" {
		t.Fatalf("custom rule not applied, got %q", got)
	}
}
