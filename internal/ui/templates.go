package ui

import (
	"fmt"
	"html/template"
	"io"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// Template functions available in all templates.
var templateFuncs = template.FuncMap{
	"formatTime": func(t time.Time) string {
		if t.IsZero() {
			return "-"
		}
		return t.UTC().Format("2006-01-02 15:04 MST")
	},
	"formatTimePtr": func(t *time.Time) string {
		if t == nil || t.IsZero() {
			return "-"
		}
		return t.UTC().Format("2006-01-02 15:04 MST")
	},
	"formatDate": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.UTC().Format("2006-01-02")
	},
	// dateValue fills an <input type="date">.
	"dateValue": func(t *time.Time) string {
		if t == nil {
			return ""
		}
		return t.UTC().Format("2006-01-02")
	},
	"ago": func(t time.Time) string {
		if t.IsZero() {
			return "-"
		}
		return humanize.Time(t)
	},
	"duration": func(d time.Duration) string {
		if d <= 0 {
			return "-"
		}
		return d.Round(time.Second).String()
	},
	"comma": func(n int) string {
		return humanize.Comma(int64(n))
	},
	"hours": func(h float64) string {
		return humanize.FormatFloat("#,###.#", h)
	},
	"label": func(v any) string {
		s := strings.ReplaceAll(fmt.Sprint(v), "_", " ")
		if s == "" {
			return ""
		}
		return strings.ToUpper(s[:1]) + s[1:]
	},
	"statusColor": func(v any) string {
		switch fmt.Sprint(v) {
		case "queued", "open":
			return "bg-yellow-100 text-yellow-800"
		case "joining", "in_call", "recording", "in_progress":
			return "bg-blue-100 text-blue-800"
		case "processing":
			return "bg-indigo-100 text-indigo-800"
		case "completed", "resolved":
			return "bg-green-100 text-green-800"
		case "failed":
			return "bg-red-100 text-red-800"
		default:
			return "bg-gray-100 text-gray-800"
		}
	},
	// selected reports whether a filter list holds v.
	"selected": func(list any, v any) bool {
		rv := reflect.ValueOf(list)
		if rv.Kind() != reflect.Slice {
			return false
		}
		want := fmt.Sprint(v)
		for i := 0; i < rv.Len(); i++ {
			if fmt.Sprint(rv.Index(i).Interface()) == want {
				return true
			}
		}
		return false
	},
	"truncate": func(s string, n int) string {
		if len(s) <= n {
			return s
		}
		return s[:n] + "..."
	},
}

// renderTemplate renders one block of a page template: "layout" for the full
// page or "results" for the fragment htmx swaps in.
func renderTemplate(w io.Writer, name, block string, data map[string]any) error {
	content, ok := pageTemplates[name]
	if !ok {
		content, ok = templates[name]
	}
	if !ok {
		return fmt.Errorf("template not found: %s", name)
	}
	layout, ok := templates["layout"]
	if !ok {
		return fmt.Errorf("layout template not found")
	}

	tmpl, err := template.New("layout").Funcs(templateFuncs).Parse(layout)
	if err != nil {
		return fmt.Errorf("parse layout: %w", err)
	}
	if _, err = tmpl.New(name).Parse(content); err != nil {
		return fmt.Errorf("parse content: %w", err)
	}

	// Add shared components.
	for compName, compContent := range templates {
		if strings.HasPrefix(compName, "components/") {
			if _, err = tmpl.New(filepath.Base(compName)).Parse(compContent); err != nil {
				return fmt.Errorf("parse component %s: %w", compName, err)
			}
		}
	}

	if tmpl.Lookup(block) == nil {
		return fmt.Errorf("template %s has no %q block", name, block)
	}
	return tmpl.ExecuteTemplate(w, block, data)
}

// templates holds the layout, the shared components and the pages outside the
// dashboard. Page templates define "content" and, for lists, the "results"
// block.
var templates = map[string]string{
	"layout": `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
    <script src="https://unpkg.com/htmx.org@1.9.10"></script>
    <script src="https://cdn.tailwindcss.com"></script>
    <link rel="stylesheet" href="/static/css/app.css">
    <style>
        .htmx-indicator { display: none; }
        .htmx-request .htmx-indicator { display: flex; }
        .htmx-request.htmx-indicator { display: flex; }
    </style>
    <script>
        // Let the error panel replace the results table.
        document.addEventListener("htmx:beforeSwap", function (evt) {
            if (evt.detail.xhr.status === 500) {
                evt.detail.shouldSwap = true;
                evt.detail.isError = false;
            }
        });
    </script>
</head>
<body class="bg-gray-50 min-h-screen">
    {{if .Session}}
    <nav class="bg-white shadow-sm border-b">
        <div class="max-w-7xl mx-auto px-4 sm:px-6 lg:px-8">
            <div class="flex justify-between h-16">
                <div class="flex">
                    <a href="/" class="flex items-center px-2 py-2 text-xl font-bold text-indigo-600">botdash</a>
                    <div class="hidden sm:ml-6 sm:flex sm:space-x-8">
                        {{range .Nav}}
                        <a href="{{.Href}}" class="{{if .Active}}border-indigo-500 text-gray-900{{else}}border-transparent text-gray-500 hover:border-gray-300 hover:text-gray-700{{end}} inline-flex items-center px-1 pt-1 border-b-2 text-sm font-medium">{{.Label}}</a>
                        {{end}}
                    </div>
                </div>
                <div class="flex items-center">
                    <span class="text-sm text-gray-500 mr-4">{{.Session.DisplayName}}</span>
                    <form action="/sign-out" method="POST">
                        <button type="submit" class="text-sm text-gray-500 hover:text-gray-700">Sign out</button>
                    </form>
                </div>
            </div>
        </div>
    </nav>
    {{end}}

    <main class="max-w-7xl mx-auto py-6 sm:px-6 lg:px-8">
        {{template "content" .}}
    </main>
</body>
</html>`,

	"components/heading": `<div class="flex justify-between items-center mb-6">
    <h1 class="text-2xl font-semibold text-gray-900">{{.Heading}}</h1>
</div>`,

	"components/loading": `<div id="loading" class="htmx-indicator items-center justify-center py-3 text-sm text-gray-500">
    <svg class="animate-spin h-4 w-4 mr-2 text-indigo-600" viewBox="0 0 24 24" fill="none"><circle cx="12" cy="12" r="10" stroke="currentColor" stroke-width="4" class="opacity-25"></circle><path fill="currentColor" d="M4 12a8 8 0 018-8v4a4 4 0 00-4 4H4z" class="opacity-75"></path></svg>
    Loading...
</div>`,

	"components/pagination": `{{if or .HasPrev .HasNext}}
<div class="mt-4 flex justify-between items-center">
    {{if .HasPrev}}
    <a href="{{.PrevURL}}" rel="prev" hx-get="{{.PrevURL}}" hx-target="#results" hx-swap="outerHTML" hx-push-url="true" hx-indicator="#loading"
       class="inline-flex items-center px-4 py-2 border border-gray-300 text-sm font-medium rounded-md text-gray-700 bg-white hover:bg-gray-50">
        Previous
    </a>
    {{else}}
    <span></span>
    {{end}}
    <span class="text-sm text-gray-500">{{.Count}} on this page</span>
    {{if .HasNext}}
    <a href="{{.NextURL}}" rel="next" hx-get="{{.NextURL}}" hx-target="#results" hx-swap="outerHTML" hx-push-url="true" hx-indicator="#loading"
       class="inline-flex items-center px-4 py-2 border border-gray-300 text-sm font-medium rounded-md text-gray-700 bg-white hover:bg-gray-50">
        Next
    </a>
    {{else}}
    <span></span>
    {{end}}
</div>
{{end}}`,

	"components/status": `<span class="inline-flex items-center px-2 py-0.5 rounded text-xs font-medium {{statusColor .}}">{{label .}}</span>`,

	// bot-filters is shared by the bots, transcripts and admin bots pages.
	"components/bot-filters": `<form id="filters" action="{{.Path}}" method="GET"
      hx-get="{{.Path}}" hx-target="#results" hx-swap="outerHTML" hx-push-url="true"
      hx-trigger="change, submit" hx-indicator="#loading"
      class="bg-white shadow sm:rounded-md p-4 mb-4 grid grid-cols-1 gap-4 md:grid-cols-4">
    {{if .Statuses}}{{if ne .Path "/transcripts"}}
    <fieldset>
        <legend class="text-xs font-medium text-gray-500 uppercase">Status</legend>
        {{range .Statuses}}
        <label class="flex items-center text-sm text-gray-700">
            <input type="checkbox" name="status" value="{{.}}" class="mr-2" {{if selected $.Filters.Status .}}checked{{end}}>{{label .}}
        </label>
        {{end}}
    </fieldset>
    {{end}}{{end}}
    <fieldset>
        <legend class="text-xs font-medium text-gray-500 uppercase">Platform</legend>
        {{$name := "meetingPlatform"}}{{if eq .Path "/transcripts"}}{{$name = "platform"}}{{end}}
        {{range .Platforms}}
        <label class="flex items-center text-sm text-gray-700">
            <input type="checkbox" name="{{$name}}" value="{{.}}" class="mr-2"
                {{if eq $.Path "/transcripts"}}{{if selected $.Filters.Platform .}}checked{{end}}{{else}}{{if selected $.Filters.MeetingPlatform .}}checked{{end}}{{end}}>{{.Label}}
        </label>
        {{end}}
    </fieldset>
    <div class="space-y-2">
        <label class="block text-xs font-medium text-gray-500 uppercase">Created after
            <input type="date" name="createdAfter" value="{{dateValue .Filters.CreatedAfter}}" class="mt-1 block w-full border-gray-300 rounded-md text-sm">
        </label>
        <label class="block text-xs font-medium text-gray-500 uppercase">Created before
            <input type="date" name="createdBefore" value="{{dateValue .Filters.CreatedBefore}}" class="mt-1 block w-full border-gray-300 rounded-md text-sm">
        </label>
    </div>
    <div class="space-y-2">
        {{if ne .Path "/transcripts"}}
        <label class="block text-xs font-medium text-gray-500 uppercase">Bot UUID
            <input type="text" name="botUuid" value="{{.Filters.BotUUID}}" placeholder="00000000-0000-0000-0000-000000000000" class="mt-1 block w-full border-gray-300 rounded-md text-sm">
        </label>
        {{end}}
        {{if eq .Path "/admin/bots"}}
        <label class="block text-xs font-medium text-gray-500 uppercase">Team id
            <input type="number" min="1" name="teamId" value="{{with .Filters.TeamID}}{{.}}{{end}}" class="mt-1 block w-full border-gray-300 rounded-md text-sm">
        </label>
        {{end}}
        <a href="{{.Path}}" class="inline-block text-sm text-indigo-600 hover:text-indigo-500">Clear filters</a>
    </div>
</form>`,

	"components/bot-table": `<div class="bg-white shadow overflow-hidden sm:rounded-md">
    <table class="min-w-full divide-y divide-gray-200">
        <thead class="bg-gray-50">
            <tr>
                <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase">Bot</th>
                <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase">Platform</th>
                <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase">Status</th>
                <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase">Duration</th>
                <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase">Created</th>
            </tr>
        </thead>
        <tbody class="divide-y divide-gray-200">
            {{range .}}
            <tr class="hover:bg-gray-50">
                <td class="px-6 py-4 text-sm">
                    <a href="/bots/{{.UUID}}" class="font-medium text-indigo-600 hover:text-indigo-500">{{.Name}}</a>
                    <div class="text-xs text-gray-400 font-mono">{{.UUID}}</div>
                </td>
                <td class="px-6 py-4 text-sm text-gray-700">{{.Platform.Label}}</td>
                <td class="px-6 py-4 text-sm">{{template "status" .Status}}</td>
                <td class="px-6 py-4 text-sm text-gray-700">{{duration .Duration}}</td>
                <td class="px-6 py-4 text-sm text-gray-500" title="{{formatTime .CreatedAt}}">{{ago .CreatedAt}}</td>
            </tr>
            {{else}}
            <tr><td colspan="5" class="px-6 py-8 text-center text-gray-500">No bots match these filters.</td></tr>
            {{end}}
        </tbody>
    </table>
</div>`,

	"components/ticket-filters": `<form id="filters" action="{{.Path}}" method="GET"
      hx-get="{{.Path}}" hx-target="#results" hx-swap="outerHTML" hx-push-url="true"
      hx-trigger="change, submit" hx-indicator="#loading"
      class="bg-white shadow sm:rounded-md p-4 mb-4 flex flex-wrap gap-4 items-end">
    {{range .TicketStatuses}}
    <label class="flex items-center text-sm text-gray-700">
        <input type="checkbox" name="status" value="{{.}}" class="mr-2" {{if selected $.Filters.Status .}}checked{{end}}>{{label .}}
    </label>
    {{end}}
    {{if eq .Path "/admin/tickets"}}
    <label class="text-xs font-medium text-gray-500 uppercase">Team id
        <input type="number" min="1" name="teamId" value="{{with .Filters.TeamID}}{{.}}{{end}}" class="ml-2 border-gray-300 rounded-md text-sm">
    </label>
    {{end}}
    <a href="{{.Path}}" class="text-sm text-indigo-600 hover:text-indigo-500">Clear filters</a>
</form>`,

	"components/ticket-table": `<div class="bg-white shadow overflow-hidden sm:rounded-md">
    <ul class="divide-y divide-gray-200">
        {{range .Items}}
        <li class="px-4 py-4 sm:px-6 hover:bg-gray-50">
            <div class="flex items-center justify-between">
                <a href="{{$.Path}}/{{.UUID}}" class="text-sm font-medium text-indigo-600 hover:text-indigo-500 truncate">{{.Subject}}</a>
                {{template "status" .Status}}
            </div>
            <div class="mt-2 text-sm text-gray-500">
                {{if .TeamName}}<span>{{.TeamName}}</span><span class="mx-2">&bull;</span>{{end}}
                <span>{{.CreatedBy}}</span><span class="mx-2">&bull;</span>
                <span>Opened {{ago .CreatedAt}}</span>
            </div>
        </li>
        {{else}}
        <li class="px-4 py-8 text-center text-gray-500">No tickets found.</li>
        {{end}}
    </ul>
</div>`,

	"components/ticket-thread": `<div class="bg-white shadow sm:rounded-lg mb-6">
    <div class="px-4 py-5 sm:px-6 flex justify-between items-center">
        <div>
            <h2 class="text-lg font-medium text-gray-900">{{.Subject}}</h2>
            <p class="mt-1 text-sm text-gray-500">{{.CreatedBy}}{{if .TeamName}} &bull; {{.TeamName}}{{end}} &bull; opened {{formatTime .CreatedAt}}</p>
        </div>
        {{template "status" .Status}}
    </div>
</div>
<ul class="space-y-4">
    {{range .Messages}}
    <li class="rounded-lg p-4 {{if .FromStaff}}bg-indigo-50{{else}}bg-white shadow{{end}}">
        <div class="flex justify-between text-xs text-gray-500">
            <span class="font-medium text-gray-700">{{.Author}}{{if .FromStaff}} (support){{end}}</span>
            <span>{{formatTime .CreatedAt}}</span>
        </div>
        <p class="mt-2 text-sm text-gray-800 whitespace-pre-line">{{.Body}}</p>
    </li>
    {{else}}
    <li class="text-sm text-gray-500">No messages yet.</li>
    {{end}}
</ul>`,

	"sign-in": `{{define "content"}}
<div class="min-h-screen flex items-center justify-center bg-gray-50 py-12 px-4 sm:px-6 lg:px-8">
    <div class="max-w-md w-full space-y-8">
        <div>
            <h2 class="mt-6 text-center text-3xl font-extrabold text-gray-900">botdash</h2>
            <p class="mt-2 text-center text-sm text-gray-600">Sign in to manage your meeting bots</p>
        </div>
        {{if .Error}}
        <div class="rounded-md bg-red-50 p-4">
            <div class="text-sm text-red-700">{{.Error}}</div>
        </div>
        {{end}}
        <form class="mt-8 space-y-6" action="/sign-in" method="POST">
            <input type="hidden" name="redirectTo" value="{{.RedirectTo}}">
            <div class="rounded-md shadow-sm -space-y-px">
                <div>
                    <label for="email" class="sr-only">Email address</label>
                    <input id="email" name="email" type="email" autocomplete="email" required
                           class="appearance-none rounded-none relative block w-full px-3 py-2 border border-gray-300 placeholder-gray-500 text-gray-900 rounded-t-md focus:outline-none focus:ring-indigo-500 focus:border-indigo-500 focus:z-10 sm:text-sm"
                           placeholder="Email address">
                </div>
                <div>
                    <label for="password" class="sr-only">Password</label>
                    <input id="password" name="password" type="password" autocomplete="current-password" required
                           class="appearance-none rounded-none relative block w-full px-3 py-2 border border-gray-300 placeholder-gray-500 text-gray-900 rounded-b-md focus:outline-none focus:ring-indigo-500 focus:border-indigo-500 focus:z-10 sm:text-sm"
                           placeholder="Password">
                </div>
            </div>
            <div>
                <button type="submit"
                        class="group relative w-full flex justify-center py-2 px-4 border border-transparent text-sm font-medium rounded-md text-white bg-indigo-600 hover:bg-indigo-700 focus:outline-none focus:ring-2 focus:ring-offset-2 focus:ring-indigo-500">
                    Sign in
                </button>
            </div>
        </form>
    </div>
</div>
{{end}}`,

	"error": `{{define "content"}}
<div class="px-4 py-16 sm:px-0 text-center">
    <h1 class="text-2xl font-semibold text-gray-900">{{.Heading}}</h1>
    <p class="mt-2 text-gray-500">{{.Message}}</p>
    <div class="mt-6 space-x-4">
        {{if .RetryURL}}
        <a href="{{.RetryURL}}" class="inline-flex items-center px-4 py-2 border border-transparent text-sm font-medium rounded-md text-white bg-indigo-600 hover:bg-indigo-700">Try again</a>
        {{end}}
        <a href="/" class="text-indigo-600 hover:text-indigo-500">Go home</a>
    </div>
</div>
{{end}}
{{define "results"}}
<div id="results" class="rounded-md bg-red-50 p-6 text-center">
    <p class="text-sm text-red-700">{{.Message}}</p>
    {{if .RetryURL}}
    <a href="{{.RetryURL}}" class="mt-3 inline-block text-sm font-medium text-red-700 underline">Try again</a>
    {{end}}
</div>
{{end}}`,
}
