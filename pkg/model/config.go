package model

// FeatureConfig is the application-level feature configuration served by the
// backend. It is read-only and scoped to one request.
type FeatureConfig struct {
	BillingEnabled       bool   `json:"billing_enabled"`
	CalendarEnabled      bool   `json:"calendar_enabled"`
	SupportEnabled       bool   `json:"support_enabled"`
	TranscriptionEnabled bool   `json:"transcription_enabled"`
	SupportEmail         string `json:"support_email,omitempty" validate:"omitempty,email"`
}

// DisabledFeatures is the configuration used when the backend cannot be asked:
// every optional feature switched off.
func DisabledFeatures() FeatureConfig {
	return FeatureConfig{}
}
