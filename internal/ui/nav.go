package ui

import (
	"strings"

	"github.com/me/botdash/pkg/model"
)

type navItem struct {
	Label  string
	Href   string
	Active bool
}

// navFor lists the navigation entries a session may see. Entries of
// disabled features are hidden; their pages answer 404.
func navFor(sess *model.Session, cfg model.FeatureConfig, path string) []navItem {
	if sess == nil {
		return nil
	}
	items := []navItem{{Label: "Bots", Href: "/bots"}}
	if cfg.TranscriptionEnabled {
		items = append(items, navItem{Label: "Transcripts", Href: "/transcripts"})
	}
	if cfg.CalendarEnabled {
		items = append(items, navItem{Label: "Calendar", Href: "/calendar"})
	}
	items = append(items, navItem{Label: "Team", Href: "/team"})
	if cfg.BillingEnabled {
		items = append(items, navItem{Label: "Billing", Href: "/billing"})
	}
	if cfg.SupportEnabled {
		items = append(items, navItem{Label: "Support", Href: "/support"})
	}
	if sess.IsAdmin() {
		items = append(items, navItem{Label: "Admin", Href: "/admin"})
	}

	for i := range items {
		items[i].Active = path == items[i].Href || strings.HasPrefix(path, items[i].Href+"/")
	}
	return items
}
