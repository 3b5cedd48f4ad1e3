package loaders

import (
	"context"

	"github.com/me/botdash/internal/backend"
	"github.com/me/botdash/internal/schema"
	"github.com/me/botdash/pkg/model"
)

func (l *Loaders) botParams(f schema.BotFilters) params {
	q := params{}
	q.page(f.Page, l.pageSize)
	q.set("status", joinList(f.Status))
	q.set("meeting_platform", joinList(f.MeetingPlatform))
	q.setTime("created_after", f.CreatedAfter)
	q.setTime("created_before", f.CreatedBefore)
	q.set("bot_uuid", f.BotUUID)
	return q
}

// ListBots loads one page of the caller's bots. A nil filter loads the first
// unfiltered page.
func (l *Loaders) ListBots(ctx context.Context, cookie string, f *schema.BotFilters) (model.ListResponse[model.Bot], error) {
	if f == nil {
		f = &schema.BotFilters{}
	}
	return backend.Fetch[model.ListResponse[model.Bot]](ctx, l.client, "/bots", l.opts(cookie, "bots", l.botParams(*f)))
}

// GetBot loads a single bot by its UUID.
func (l *Loaders) GetBot(ctx context.Context, cookie, id string) (model.Bot, error) {
	resp, err := backend.Fetch[model.DetailResponse[model.Bot]](ctx, l.client, detailPath("/bots", id), l.opts(cookie, "bot", nil))
	if err != nil {
		return model.Bot{}, err
	}
	return resp.Data, nil
}

// ListTranscripts loads one page of bots and keeps those that produced a
// transcript. The backend has no such filter, so a page may hold fewer rows
// than the page size; the cursors still walk the underlying bot list.
func (l *Loaders) ListTranscripts(ctx context.Context, cookie string, f *schema.TranscriptFilters) (model.ListResponse[model.Bot], error) {
	if f == nil {
		f = &schema.TranscriptFilters{}
	}
	q := params{}
	q.page(f.Page, l.pageSize)
	q.set("meeting_platform", joinList(f.Platform))
	q.setTime("created_after", f.CreatedAfter)
	q.setTime("created_before", f.CreatedBefore)

	resp, err := backend.Fetch[model.ListResponse[model.Bot]](ctx, l.client, "/bots", l.opts(cookie, "transcripts", q))
	if err != nil {
		return resp, err
	}

	kept := make([]model.Bot, 0, len(resp.Data))
	for _, b := range resp.Data {
		if b.HasArtifact(model.ArtifactTranscription) {
			kept = append(kept, b)
		}
	}
	resp.Data = kept
	return resp, nil
}
