package compile

import (
	"testing"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/require"
)

func compileTestLogger() log.Logger {
	return log.NewNopLogger()
}

func TestCompileGroupsByEntity(t *testing.T) {
	sources := []Source{
		{Key: "my-site.http.type", Value: "http"},
		{Key: "my-site.http.url", Value: "https://example.com"},
		{Key: "other.ping.type", Value: "ping"},
		{Key: "other.ping.hostname", Value: "10.0.0.1"},
	}

	entities, err := Compile(sources, Defaults{}, nil, NewRenderer(), compileTestLogger())
	require.NoError(t, err)
	require.Len(t, entities, 2)

	byID := map[string]Entity{}
	for _, e := range entities {
		byID[e.ID] = e
		require.Equal(t, "monitor", e.EntityType)
	}
	require.Equal(t, "http", byID["my-site"].Fields["type"])
	require.Equal(t, "https://example.com", byID["my-site"].Fields["url"])
	require.Equal(t, "ping", byID["other"].Fields["type"])
}

func TestCompileDispatchesLiteralTypeTokens(t *testing.T) {
	sources := []Source{
		{Key: "slack.notification.url", Value: "https://hooks.example.com"},
		{Key: "prod.docker_host.docker_daemon", Value: "unix:///var/run/docker.sock"},
	}

	entities, err := Compile(sources, Defaults{}, nil, NewRenderer(), compileTestLogger())
	require.NoError(t, err)
	require.Len(t, entities, 2)

	byID := map[string]Entity{}
	for _, e := range entities {
		byID[e.ID] = e
	}
	require.Equal(t, "notification", byID["slack"].EntityType)
	require.Equal(t, "docker_host", byID["prod"].EntityType)
}

func TestCompileAppliesDefaults(t *testing.T) {
	sources := []Source{
		{Key: "my-site.http.url", Value: "https://example.com"},
	}
	defaults := Defaults{
		Wildcard: map[string]any{"interval": "60"},
		ByType:   map[string]map[string]any{"http": {"retryInterval": "30"}},
	}

	entities, err := Compile(sources, defaults, nil, NewRenderer(), compileTestLogger())
	require.NoError(t, err)
	require.Len(t, entities, 1)
	require.Equal(t, int64(60), entities[0].Fields["interval"])
	require.Equal(t, int64(30), entities[0].Fields["retryInterval"])
}

func TestCompileExpandsTemplates(t *testing.T) {
	t.Setenv("SITE_HOST", "example.com")
	sources := []Source{
		{Key: "my-site.http.type", Value: "http"},
		{Key: "my-site.http.url", Value: `https://{{ get_env "SITE_HOST" "fallback" }}`},
	}

	entities, err := Compile(sources, Defaults{}, nil, NewRenderer(), compileTestLogger())
	require.NoError(t, err)
	require.Equal(t, "https://example.com", entities[0].Fields["url"])
}

func TestCompileExpandsSnippets(t *testing.T) {
	snippets := map[string]string{
		"http": "type: http\nname: {{ index .args 0 }}\nurl: {{ index .args 1 }}",
	}
	sources := []Source{
		{Key: "__http.svc", Value: `"Svc", "https://svc"`},
	}

	entities, err := Compile(sources, Defaults{}, snippets, NewRenderer(), compileTestLogger())
	require.NoError(t, err)
	require.Len(t, entities, 1)
	require.Equal(t, "svc", entities[0].ID)
	require.Equal(t, "monitor", entities[0].EntityType)
	require.Equal(t, "http", entities[0].Fields["type"])
	require.Equal(t, "Svc", entities[0].Fields["name"])
	require.Equal(t, "https://svc", entities[0].Fields["url"])
}

func TestCompileSnippetUnknownNameIsIgnored(t *testing.T) {
	sources := []Source{
		{Key: "__missing.svc", Value: `"a"`},
	}

	entities, err := Compile(sources, Defaults{}, map[string]string{}, NewRenderer(), compileTestLogger())
	require.NoError(t, err)
	require.Empty(t, entities)
}

func TestCompileSnippetMalformedArgsIsIgnored(t *testing.T) {
	snippets := map[string]string{"http": "type: http"}
	sources := []Source{
		{Key: "__http.svc", Value: `not valid json`},
	}

	entities, err := Compile(sources, Defaults{}, snippets, NewRenderer(), compileTestLogger())
	require.NoError(t, err)
	require.Empty(t, entities)
}

func TestToMonitorBuildsAttributes(t *testing.T) {
	e := Entity{EntityType: "monitor", ID: "my-site", Fields: map[string]any{
		"type": "http",
		"url":  "https://example.com",
	}}
	m, err := ToMonitor(e)
	require.NoError(t, err)
	require.Equal(t, "my-site", m.Name)
	require.Equal(t, "https://example.com", m.Attributes["url"])
}
