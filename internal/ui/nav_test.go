package ui

import (
	"testing"

	"github.com/me/botdash/pkg/model"
)

func labels(items []navItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Label
	}
	return out
}

func TestNavFor(t *testing.T) {
	user := &model.Session{User: model.SessionUser{Role: model.RoleUser}}
	admin := &model.Session{User: model.SessionUser{Role: model.RoleAdmin}}
	all := model.FeatureConfig{BillingEnabled: true, CalendarEnabled: true, SupportEnabled: true, TranscriptionEnabled: true}

	tests := []struct {
		name string
		sess *model.Session
		cfg  model.FeatureConfig
		want []string
	}{
		{"signed out", nil, all, nil},
		{"user all features", user, all, []string{"Bots", "Transcripts", "Calendar", "Team", "Billing", "Support"}},
		{"user no features", user, model.DisabledFeatures(), []string{"Bots", "Team"}},
		{"admin", admin, model.DisabledFeatures(), []string{"Bots", "Team", "Admin"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := labels(navFor(tt.sess, tt.cfg, "/bots"))
			if len(got) != len(tt.want) {
				t.Fatalf("nav = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("nav[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestNavFor_Active(t *testing.T) {
	admin := &model.Session{User: model.SessionUser{Role: model.RoleAdmin}}
	for _, it := range navFor(admin, model.DisabledFeatures(), "/admin/teams/7") {
		if it.Active != (it.Href == "/admin") {
			t.Errorf("%s active = %v", it.Label, it.Active)
		}
	}
}
