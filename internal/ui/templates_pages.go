package ui

// pageTemplates holds the dashboard and back-office pages.
var pageTemplates = map[string]string{
	"bots/list": `{{define "content"}}
<div class="px-4 sm:px-0">
    {{template "heading" .}}
    {{template "bot-filters" .}}
    {{template "loading" .}}
    {{template "results" .}}
</div>
{{end}}
{{define "results"}}
<div id="results">
    {{template "bot-table" .Items}}
    {{template "pagination" .Pagination}}
</div>
{{end}}`,

	"bots/detail": `{{define "content"}}
<div class="px-4 sm:px-0">
    {{with .Item}}
    <div class="mb-6">
        <a href="/bots" class="text-sm text-indigo-600 hover:text-indigo-500">&larr; Back to bots</a>
        <div class="mt-2 flex items-center justify-between">
            <h1 class="text-2xl font-semibold text-gray-900">{{.Name}}</h1>
            {{template "status" .Status}}
        </div>
        <p class="mt-1 text-sm text-gray-500 font-mono">{{.UUID}}</p>
    </div>

    {{if .ErrorMessage}}
    <div class="rounded-md bg-red-50 p-4 mb-6">
        <p class="text-sm text-red-700">{{.ErrorMessage}}</p>
    </div>
    {{end}}

    <div class="bg-white shadow overflow-hidden sm:rounded-lg mb-6">
        <dl class="divide-y divide-gray-200">
            <div class="px-4 py-4 sm:grid sm:grid-cols-3 sm:gap-4 sm:px-6">
                <dt class="text-sm font-medium text-gray-500">Meeting</dt>
                <dd class="mt-1 text-sm text-gray-900 sm:mt-0 sm:col-span-2 break-all">{{.MeetingURL}}</dd>
            </div>
            <div class="px-4 py-4 sm:grid sm:grid-cols-3 sm:gap-4 sm:px-6">
                <dt class="text-sm font-medium text-gray-500">Platform</dt>
                <dd class="mt-1 text-sm text-gray-900 sm:mt-0 sm:col-span-2">{{.Platform.Label}}</dd>
            </div>
            <div class="px-4 py-4 sm:grid sm:grid-cols-3 sm:gap-4 sm:px-6">
                <dt class="text-sm font-medium text-gray-500">Duration</dt>
                <dd class="mt-1 text-sm text-gray-900 sm:mt-0 sm:col-span-2">{{duration .Duration}}</dd>
            </div>
            <div class="px-4 py-4 sm:grid sm:grid-cols-3 sm:gap-4 sm:px-6">
                <dt class="text-sm font-medium text-gray-500">Created</dt>
                <dd class="mt-1 text-sm text-gray-900 sm:mt-0 sm:col-span-2">{{formatTime .CreatedAt}} ({{ago .CreatedAt}})</dd>
            </div>
            <div class="px-4 py-4 sm:grid sm:grid-cols-3 sm:gap-4 sm:px-6">
                <dt class="text-sm font-medium text-gray-500">Ended</dt>
                <dd class="mt-1 text-sm text-gray-900 sm:mt-0 sm:col-span-2">{{formatTimePtr .EndedAt}}</dd>
            </div>
        </dl>
    </div>

    <h2 class="text-lg font-medium text-gray-900 mb-2">Artifacts</h2>
    <div class="bg-white shadow overflow-hidden sm:rounded-md">
        <ul class="divide-y divide-gray-200">
            {{range .Artifacts}}
            <li class="px-4 py-3 sm:px-6 flex justify-between text-sm">
                <span class="text-gray-700">{{label .Type}}</span>
                {{if .URL}}<a href="{{.URL}}" class="text-indigo-600 hover:text-indigo-500" rel="noopener">Download</a>{{else}}<span class="text-gray-400">Not available</span>{{end}}
            </li>
            {{else}}
            <li class="px-4 py-6 text-center text-sm text-gray-500">{{if .Status.IsTerminal}}No artifacts were produced.{{else}}Artifacts appear once the meeting ends.{{end}}</li>
            {{end}}
        </ul>
    </div>
    {{end}}
</div>
{{end}}`,

	"transcripts/list": `{{define "content"}}
<div class="px-4 sm:px-0">
    {{template "heading" .}}
    {{template "bot-filters" .}}
    {{template "loading" .}}
    {{template "results" .}}
</div>
{{end}}
{{define "results"}}
<div id="results">
    <div class="bg-white shadow overflow-hidden sm:rounded-md">
        <ul class="divide-y divide-gray-200">
            {{range .Items}}
            <li class="px-4 py-4 sm:px-6 flex items-center justify-between hover:bg-gray-50">
                <div>
                    <a href="/bots/{{.UUID}}" class="text-sm font-medium text-indigo-600 hover:text-indigo-500">{{.Name}}</a>
                    <p class="text-xs text-gray-500">{{.Platform.Label}} &bull; {{formatTime .CreatedAt}} &bull; {{duration .Duration}}</p>
                </div>
                {{with .Artifact "transcription"}}{{if .URL}}
                <a href="{{.URL}}" class="text-sm text-indigo-600 hover:text-indigo-500" rel="noopener">Transcript</a>
                {{end}}{{end}}
            </li>
            {{else}}
            <li class="px-4 py-8 text-center text-gray-500">No transcripts yet.</li>
            {{end}}
        </ul>
    </div>
    {{template "pagination" .Pagination}}
</div>
{{end}}`,

	"calendar/list": `{{define "content"}}
<div class="px-4 sm:px-0">
    {{template "heading" .}}
    <form id="filters" action="{{.Path}}" method="GET"
          hx-get="{{.Path}}" hx-target="#results" hx-swap="outerHTML" hx-push-url="true"
          hx-trigger="change, submit" hx-indicator="#loading"
          class="bg-white shadow sm:rounded-md p-4 mb-4 flex flex-wrap gap-4 items-end">
        <label class="text-xs font-medium text-gray-500 uppercase">From
            <input type="date" name="startDate" value="{{dateValue .Filters.StartDate}}" class="mt-1 block border-gray-300 rounded-md text-sm">
        </label>
        <label class="text-xs font-medium text-gray-500 uppercase">To
            <input type="date" name="endDate" value="{{dateValue .Filters.EndDate}}" class="mt-1 block border-gray-300 rounded-md text-sm">
        </label>
        <label class="text-xs font-medium text-gray-500 uppercase">Search
            <input type="search" name="search" value="{{.Filters.Search}}" class="mt-1 block border-gray-300 rounded-md text-sm">
        </label>
        <a href="{{.Path}}" class="text-sm text-indigo-600 hover:text-indigo-500">Clear filters</a>
    </form>
    {{template "loading" .}}
    {{template "results" .}}
</div>
{{end}}
{{define "results"}}
<div id="results">
    <div class="bg-white shadow overflow-hidden sm:rounded-md">
        <ul class="divide-y divide-gray-200">
            {{range .Items}}
            <li class="px-4 py-4 sm:px-6">
                <div class="flex items-center justify-between">
                    <p class="text-sm font-medium text-gray-900">{{.Name}}</p>
                    {{if .BotScheduled}}
                    <span class="inline-flex items-center px-2 py-0.5 rounded text-xs font-medium bg-green-100 text-green-800">Bot scheduled</span>
                    {{end}}
                </div>
                <p class="mt-1 text-sm text-gray-500">
                    {{if .AllDay}}{{formatDate .StartTime}} &bull; All day{{else}}{{formatTime .StartTime}} - {{formatTime .EndTime}}{{end}}
                    {{if .Platform}} &bull; {{.Platform.Label}}{{end}}
                    {{if .CalendarEmail}} &bull; {{.CalendarEmail}}{{end}}
                </p>
                {{if .BotUUID}}<a href="/bots/{{.BotUUID}}" class="text-xs text-indigo-600 hover:text-indigo-500">View bot</a>{{end}}
            </li>
            {{else}}
            <li class="px-4 py-8 text-center text-gray-500">No events in this range.</li>
            {{end}}
        </ul>
    </div>
    {{template "pagination" .Pagination}}
</div>
{{end}}`,

	"team/show": `{{define "content"}}
<div class="px-4 sm:px-0">
    {{with .Team}}
    <div class="bg-white shadow sm:rounded-lg mb-6 px-4 py-5 sm:px-6">
        <h1 class="text-2xl font-semibold text-gray-900">{{.Name}}</h1>
        <p class="mt-1 text-sm text-gray-500">{{label .Plan}} plan &bull; {{comma .MemberCount}} members &bull; {{comma .BotCount}} bots &bull; since {{formatDate .CreatedAt}}</p>
    </div>
    {{end}}
    <h2 class="text-lg font-medium text-gray-900 mb-2">Members</h2>
    {{template "loading" .}}
    {{template "results" .}}
</div>
{{end}}
{{define "results"}}
<div id="results">
    <div class="bg-white shadow overflow-hidden sm:rounded-md">
        <table class="min-w-full divide-y divide-gray-200">
            <thead class="bg-gray-50">
                <tr>
                    <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase">Member</th>
                    <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase">Role</th>
                    <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase">Joined</th>
                </tr>
            </thead>
            <tbody class="divide-y divide-gray-200">
                {{range .Items}}
                <tr>
                    <td class="px-6 py-4 text-sm text-gray-900">{{if .Name}}{{.Name}} <span class="text-gray-500">&lt;{{.Email}}&gt;</span>{{else}}{{.Email}}{{end}}</td>
                    <td class="px-6 py-4 text-sm text-gray-700">{{label .Role}}</td>
                    <td class="px-6 py-4 text-sm text-gray-500">{{formatDate .JoinedAt}}</td>
                </tr>
                {{else}}
                <tr><td colspan="3" class="px-6 py-8 text-center text-gray-500">No members.</td></tr>
                {{end}}
            </tbody>
        </table>
    </div>
    {{template "pagination" .Pagination}}
</div>
{{end}}`,

	"billing/show": `{{define "content"}}
<div class="px-4 sm:px-0">
    {{template "heading" .}}
    {{$team := .Team}}
    {{if eq $team.State.String "loaded"}}
    {{with $team.Value}}<p class="mb-4 text-sm text-gray-500">{{.Name}} &bull; {{comma .BotCount}} bots</p>{{end}}
    {{else}}
    <p class="mb-4 text-sm text-gray-400">Team details are unavailable.</p>
    {{end}}
    {{with .Usage}}
    <div class="bg-white shadow sm:rounded-lg px-4 py-5 sm:px-6">
        <h2 class="text-lg font-medium text-gray-900">{{label .Plan}} plan</h2>
        <p class="mt-1 text-sm text-gray-500">Billing period {{formatDate .PeriodStart}} to {{formatDate .PeriodEnd}}</p>
        <div class="mt-4">
            <div class="flex justify-between text-sm text-gray-700">
                <span>Bot hours</span>
                <span>{{hours .BotHoursUsed}}{{if gt .BotHoursLimit 0.0}} of {{hours .BotHoursLimit}}{{end}}</span>
            </div>
            {{if gt .BotHoursLimit 0.0}}
            <div class="mt-2 w-full bg-gray-200 rounded-full h-2">
                <div class="{{if ge .Percent 90}}bg-red-500{{else}}bg-indigo-600{{end}} h-2 rounded-full" style="width: {{.Percent}}%"></div>
            </div>
            <p class="mt-1 text-xs text-gray-500">{{.Percent}}% used</p>
            {{else}}
            <p class="mt-1 text-xs text-gray-500">Unmetered</p>
            {{end}}
        </div>
    </div>
    {{end}}
    {{if .Config.SupportEmail}}
    <p class="mt-4 text-sm text-gray-500">Questions about your bill? Write to <a href="mailto:{{.Config.SupportEmail}}" class="text-indigo-600">{{.Config.SupportEmail}}</a>.</p>
    {{end}}
</div>
{{end}}`,

	"support/list": `{{define "content"}}
<div class="px-4 sm:px-0">
    {{template "heading" .}}
    {{template "ticket-filters" .}}
    {{template "loading" .}}
    {{template "results" .}}
</div>
{{end}}
{{define "results"}}
<div id="results">
    {{template "ticket-table" .}}
    {{template "pagination" .Pagination}}
</div>
{{end}}`,

	"support/detail": `{{define "content"}}
<div class="px-4 sm:px-0">
    <a href="/support" class="text-sm text-indigo-600 hover:text-indigo-500">&larr; Back to support</a>
    <div class="mt-2">{{template "ticket-thread" .Item}}</div>
</div>
{{end}}`,

	"admin/teams": `{{define "content"}}
<div class="px-4 sm:px-0">
    {{template "heading" .}}
    <form id="filters" action="{{.Path}}" method="GET"
          hx-get="{{.Path}}" hx-target="#results" hx-swap="outerHTML" hx-push-url="true"
          hx-trigger="input changed delay:300ms, submit" hx-indicator="#loading"
          class="mb-4">
        <input type="search" name="search" value="{{.Filters.Search}}" placeholder="Search teams" class="block w-full md:w-1/3 border-gray-300 rounded-md text-sm">
    </form>
    {{template "loading" .}}
    {{template "results" .}}
</div>
{{end}}
{{define "results"}}
<div id="results">
    <div class="bg-white shadow overflow-hidden sm:rounded-md">
        <table class="min-w-full divide-y divide-gray-200">
            <thead class="bg-gray-50">
                <tr>
                    <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase">Team</th>
                    <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase">Plan</th>
                    <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase">Members</th>
                    <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase">Bots</th>
                    <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase">Created</th>
                </tr>
            </thead>
            <tbody class="divide-y divide-gray-200">
                {{range .Items}}
                <tr class="hover:bg-gray-50">
                    <td class="px-6 py-4 text-sm"><a href="/admin/teams/{{.ID}}" class="font-medium text-indigo-600 hover:text-indigo-500">{{.Name}}</a></td>
                    <td class="px-6 py-4 text-sm text-gray-700">{{label .Plan}}</td>
                    <td class="px-6 py-4 text-sm text-gray-700">{{comma .MemberCount}}</td>
                    <td class="px-6 py-4 text-sm text-gray-700">{{comma .BotCount}}</td>
                    <td class="px-6 py-4 text-sm text-gray-500">{{formatDate .CreatedAt}}</td>
                </tr>
                {{else}}
                <tr><td colspan="5" class="px-6 py-8 text-center text-gray-500">No teams found.</td></tr>
                {{end}}
            </tbody>
        </table>
    </div>
    {{template "pagination" .Pagination}}
</div>
{{end}}`,

	"admin/team": `{{define "content"}}
<div class="px-4 sm:px-0">
    <a href="/admin/teams" class="text-sm text-indigo-600 hover:text-indigo-500">&larr; All teams</a>
    {{with .Item}}
    <div class="mt-2 bg-white shadow sm:rounded-lg mb-6 px-4 py-5 sm:px-6">
        <h1 class="text-2xl font-semibold text-gray-900">{{.Name}}</h1>
        <p class="mt-1 text-sm text-gray-500">#{{.ID}} &bull; {{label .Plan}} plan{{if .OwnerEmail}} &bull; owner {{.OwnerEmail}}{{end}}</p>
        <p class="mt-1 text-sm text-gray-500">{{comma .MemberCount}} members &bull; {{comma .BotCount}} bots &bull; created {{formatDate .CreatedAt}}</p>
        <div class="mt-3 space-x-4 text-sm">
            <a href="/admin/bots?teamId={{.ID}}" class="text-indigo-600 hover:text-indigo-500">All bots</a>
            <a href="/admin/tickets?teamId={{.ID}}" class="text-indigo-600 hover:text-indigo-500">Tickets</a>
        </div>
    </div>
    {{end}}
    <h2 class="text-lg font-medium text-gray-900 mb-2">Recent bots</h2>
    {{$bots := .RecentBots}}
    {{if eq $bots.State.String "loaded"}}
    {{template "bot-table" $bots.Value.Data}}
    {{else}}
    <div class="rounded-md bg-yellow-50 p-4 text-sm text-yellow-800">Recent bots could not be loaded.</div>
    {{end}}
</div>
{{end}}`,

	"admin/users": `{{define "content"}}
<div class="px-4 sm:px-0">
    {{template "heading" .}}
    <form id="filters" action="{{.Path}}" method="GET"
          hx-get="{{.Path}}" hx-target="#results" hx-swap="outerHTML" hx-push-url="true"
          hx-trigger="change, submit" hx-indicator="#loading"
          class="mb-4 flex flex-wrap gap-4">
        <input type="search" name="search" value="{{.Filters.Search}}" placeholder="Search by name or email" class="border-gray-300 rounded-md text-sm">
        <select name="role" class="border-gray-300 rounded-md text-sm">
            <option value="">Any role</option>
            {{range .Roles}}
            <option value="{{.}}" {{if eq (print .) (print $.Filters.Role)}}selected{{end}}>{{label .}}</option>
            {{end}}
        </select>
    </form>
    {{template "loading" .}}
    {{template "results" .}}
</div>
{{end}}
{{define "results"}}
<div id="results">
    <div class="bg-white shadow overflow-hidden sm:rounded-md">
        <table class="min-w-full divide-y divide-gray-200">
            <thead class="bg-gray-50">
                <tr>
                    <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase">User</th>
                    <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase">Role</th>
                    <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase">Team</th>
                    <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase">Last seen</th>
                </tr>
            </thead>
            <tbody class="divide-y divide-gray-200">
                {{range .Items}}
                <tr class="hover:bg-gray-50">
                    <td class="px-6 py-4 text-sm">
                        <a href="/admin/users/{{.ID}}" class="font-medium text-indigo-600 hover:text-indigo-500">{{if .Name}}{{.Name}}{{else}}{{.Email}}{{end}}</a>
                        {{if .Banned}}<span class="ml-2 inline-flex px-2 py-0.5 rounded text-xs font-medium bg-red-100 text-red-800">Banned</span>{{end}}
                        <div class="text-xs text-gray-500">{{.Email}}</div>
                    </td>
                    <td class="px-6 py-4 text-sm text-gray-700">{{label .Role}}</td>
                    <td class="px-6 py-4 text-sm text-gray-700">{{with .TeamID}}<a href="/admin/teams/{{.}}" class="text-indigo-600">{{end}}{{.TeamName}}{{with .TeamID}}</a>{{end}}</td>
                    <td class="px-6 py-4 text-sm text-gray-500">{{with .LastSeenAt}}{{ago .}}{{else}}-{{end}}</td>
                </tr>
                {{else}}
                <tr><td colspan="4" class="px-6 py-8 text-center text-gray-500">No users found.</td></tr>
                {{end}}
            </tbody>
        </table>
    </div>
    {{template "pagination" .Pagination}}
</div>
{{end}}`,

	"admin/user": `{{define "content"}}
<div class="px-4 sm:px-0">
    <a href="/admin/users" class="text-sm text-indigo-600 hover:text-indigo-500">&larr; All users</a>
    {{with .Item}}
    <div class="mt-2 bg-white shadow overflow-hidden sm:rounded-lg">
        <div class="px-4 py-5 sm:px-6">
            <h1 class="text-2xl font-semibold text-gray-900">{{if .Name}}{{.Name}}{{else}}{{.Email}}{{end}}</h1>
            <p class="mt-1 text-sm text-gray-500">#{{.ID}} &bull; {{.Email}}</p>
        </div>
        <dl class="divide-y divide-gray-200 border-t">
            <div class="px-4 py-4 sm:grid sm:grid-cols-3 sm:px-6">
                <dt class="text-sm font-medium text-gray-500">Role</dt>
                <dd class="text-sm text-gray-900 sm:col-span-2">{{label .Role}}</dd>
            </div>
            <div class="px-4 py-4 sm:grid sm:grid-cols-3 sm:px-6">
                <dt class="text-sm font-medium text-gray-500">Team</dt>
                <dd class="text-sm text-gray-900 sm:col-span-2">{{with .TeamID}}<a href="/admin/teams/{{.}}" class="text-indigo-600">#{{.}}</a>{{else}}-{{end}} {{.TeamName}}</dd>
            </div>
            <div class="px-4 py-4 sm:grid sm:grid-cols-3 sm:px-6">
                <dt class="text-sm font-medium text-gray-500">Status</dt>
                <dd class="text-sm sm:col-span-2">{{if .Banned}}<span class="text-red-700">Banned{{if .BanReason}}: {{.BanReason}}{{end}}</span>{{else}}<span class="text-green-700">Active</span>{{end}}</dd>
            </div>
            <div class="px-4 py-4 sm:grid sm:grid-cols-3 sm:px-6">
                <dt class="text-sm font-medium text-gray-500">Created</dt>
                <dd class="text-sm text-gray-900 sm:col-span-2">{{formatTime .CreatedAt}}</dd>
            </div>
            <div class="px-4 py-4 sm:grid sm:grid-cols-3 sm:px-6">
                <dt class="text-sm font-medium text-gray-500">Last seen</dt>
                <dd class="text-sm text-gray-900 sm:col-span-2">{{formatTimePtr .LastSeenAt}}</dd>
            </div>
        </dl>
    </div>
    {{end}}
</div>
{{end}}`,

	"admin/bots": `{{define "content"}}
<div class="px-4 sm:px-0">
    {{template "heading" .}}
    {{template "bot-filters" .}}
    {{template "loading" .}}
    {{template "results" .}}
</div>
{{end}}
{{define "results"}}
<div id="results">
    {{template "bot-table" .Items}}
    {{template "pagination" .Pagination}}
</div>
{{end}}`,

	"admin/tickets": `{{define "content"}}
<div class="px-4 sm:px-0">
    {{template "heading" .}}
    {{template "ticket-filters" .}}
    {{template "loading" .}}
    {{template "results" .}}
</div>
{{end}}
{{define "results"}}
<div id="results">
    {{template "ticket-table" .}}
    {{template "pagination" .Pagination}}
</div>
{{end}}`,

	"admin/ticket": `{{define "content"}}
<div class="px-4 sm:px-0">
    <a href="/admin/tickets" class="text-sm text-indigo-600 hover:text-indigo-500">&larr; All tickets</a>
    {{with .Item}}{{if .TeamID}}<a href="/admin/teams/{{.TeamID}}" class="ml-4 text-sm text-indigo-600 hover:text-indigo-500">Team #{{.TeamID}}</a>{{end}}{{end}}
    <div class="mt-2">{{template "ticket-thread" .Item}}</div>
</div>
{{end}}`,
}
