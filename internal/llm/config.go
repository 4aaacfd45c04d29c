package llm

// ModelTier represents the capability level of a model.
type ModelTier string

const (
	// TierLite is for trivial classification and extraction.
	TierLite ModelTier = "lite"
	// TierStandard covers extraction, proposal rewriting and follow-up
	// suggestions.
	TierStandard ModelTier = "standard"
	// TierAdvanced is for the full job analysis, which needs reasoning
	// over the whole posting plus profile context.
	TierAdvanced ModelTier = "advanced"
)

// Provider represents an LLM provider.
type Provider string

// Supported providers.
const (
	ProviderGemini Provider = "gemini"
)

// Config holds the model configuration.
type Config struct {
	Provider Provider
	Models   map[ModelTier]string
}

// DefaultConfig returns the default configuration (Gemini).
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
	}
}

// WithOverrides returns a copy of the config with per-tier model overrides
// applied. Unknown tier names are ignored.
func (c *Config) WithOverrides(overrides map[string]string) *Config {
	next := &Config{Provider: c.Provider, Models: make(map[ModelTier]string, len(c.Models))}
	for k, v := range c.Models {
		next.Models[k] = v
	}
	for tier, model := range overrides {
		switch ModelTier(tier) {
		case TierLite, TierStandard, TierAdvanced:
			next.Models[ModelTier(tier)] = model
		}
	}
	return next
}

// GetModel returns the model name for a tier, falling back through standard
// and lite when the tier is unconfigured.
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}
