package config

import (
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// TierRule maps a keyword found in Stripe price metadata or nicknames
// to a canonical membership tier label.
type TierRule struct {
	Keyword string `mapstructure:"keyword"`
	Tier    string `mapstructure:"tier"`
}

type TierRules struct {
	Rules []TierRule `mapstructure:"rules"`
}

// DefaultTierRules covers the price nicknames observed in the live
// Stripe account. The matching is a heuristic, which is why it lives
// in config rather than code.
func DefaultTierRules() TierRules {
	return TierRules{
		Rules: []TierRule{
			{Keyword: "household", Tier: "Household"},
			{Keyword: "family", Tier: "Household"},
			{Keyword: "individual", Tier: "Individual"},
			{Keyword: "senior", Tier: "Senior"},
			{Keyword: "student", Tier: "Student"},
		},
	}
}

// Resolve maps raw price context to a tier label. The explicit value
// (price metadata) wins over the nickname. Returns "" when nothing
// matches; callers store an absent tier rather than guessing.
func (t TierRules) Resolve(explicit, nickname string) string {
	for _, candidate := range []string{explicit, nickname} {
		candidate = strings.ToLower(strings.TrimSpace(candidate))
		if candidate == "" {
			continue
		}
		for _, rule := range t.Rules {
			keyword := strings.ToLower(strings.TrimSpace(rule.Keyword))
			if keyword == "" {
				continue
			}
			if candidate == keyword || strings.Contains(candidate, keyword) {
				return rule.Tier
			}
		}
	}
	return ""
}

// TierRulesHolder holds the active tier rules and swaps them atomically
// when the config file changes on disk.
type TierRulesHolder struct {
	current atomic.Value // holds TierRules
}

func NewTierRulesHolder() (*TierRulesHolder, error) {
	v := viper.New()

	v.SetConfigName("tiers")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/memberdesk")
	v.AddConfigPath(".")

	v.SetEnvPrefix("MEMBERDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	holder := &TierRulesHolder{}

	load := func() TierRules {
		var rules TierRules
		if err := v.UnmarshalKey("tiers", &rules); err != nil || len(rules.Rules) == 0 {
			return DefaultTierRules()
		}
		return rules
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		holder.current.Store(DefaultTierRules())
		return holder, nil
	}

	holder.current.Store(load())

	v.OnConfigChange(func(fsnotify.Event) {
		holder.current.Store(load())
	})
	v.WatchConfig()

	return holder, nil
}

// NewStaticTierRulesHolder returns a holder with fixed rules and no
// file watching. Used by tests and the linker CLI.
func NewStaticTierRulesHolder(rules TierRules) *TierRulesHolder {
	holder := &TierRulesHolder{}
	holder.current.Store(rules)
	return holder
}

func (h *TierRulesHolder) Current() TierRules {
	if value, ok := h.current.Load().(TierRules); ok {
		return value
	}
	return DefaultTierRules()
}
