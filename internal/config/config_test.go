package config

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	// Invariant that all default configurations are equal.
	expected, err := newDefault()
	require.NoError(t, err)
	got := Default()
	opts := cmpopts.EquateEmpty()
	require.True(
		t,
		cmp.Equal(expected, got, opts),
		"%s",
		cmp.Diff(expected, got, opts),
	)
	require.NotEmpty(t, got.Notes.Dir)
}

func TestDefault_Copy(t *testing.T) {
	cfg := Default()
	cfg.Notes.Include[0] = "changed"
	require.Equal(t, "**/*.md", Default().Notes.Include[0])
}

func Test_parseYAML(t *testing.T) {
	testCases := []struct {
		name           string
		rawConfig      string
		expectedConfig *Config
		errorSubstring string
	}{
		{
			name:           "full config v1alpha1",
			rawConfig:      testConfigV1alpha1Raw,
			expectedConfig: testConfigV1alpha1,
		},
		{
			name: "only dir",
			rawConfig: `version: v1alpha1
notes:
  dir: /home/user/notes
`,
			expectedConfig: &Config{
				Version: "v1alpha1",
				Notes:   ConfigNotes{Dir: "/home/user/notes"},
			},
		},
		{
			name: "validate patterns",
			rawConfig: `version: v1alpha1
notes:
  include:
    - "[abc"
`,
			errorSubstring: `failed to validate v1alpha1 config: notes: invalid pattern "[abc"`,
		},
		{
			name: "validate identity",
			rawConfig: `version: v1alpha1
identity: sometimes
`,
			errorSubstring: `failed to validate v1alpha1 config: identity: invalid value "sometimes"`,
		},
		{
			name: "validate concurrency",
			rawConfig: `version: v1alpha1
format:
  concurrency: -1
`,
			errorSubstring: "failed to validate v1alpha1 config: format.concurrency: must not be negative",
		},
		{
			name:           "unknown version",
			rawConfig:      "version: v2\n",
			errorSubstring: "unknown version: v2",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			config, err := ParseYAML([]byte(tc.rawConfig))

			if tc.errorSubstring != "" {
				require.Error(t, err)
				require.Contains(t, err.Error(), tc.errorSubstring)
				return
			}

			require.NoError(t, err)

			if diff := cmp.Diff(tc.expectedConfig, config, cmpopts.EquateEmpty()); diff != "" {
				t.Fatalf("unexpected result diff: %s", diff)
			}
		})
	}
}

var (
	testConfigV1alpha1Raw = `version: v1alpha1

notes:
  dir: /home/user/notes
  include:
    - "**/*.md"
  exclude:
    - "archive/**"

identity: note

format:
  concurrency: 4

preview:
  width: 100

log:
  enabled: true
  path: /tmp/scribble.log
  verbose: true
`
	testConfigV1alpha1 = &Config{
		Version: "v1alpha1",
		Notes: ConfigNotes{
			Dir:     "/home/user/notes",
			Include: []string{"**/*.md"},
			Exclude: []string{"archive/**"},
		},
		Identity: "note",
		Format:   ConfigFormat{Concurrency: 4},
		Preview:  ConfigPreview{Width: 100},
		Log: ConfigLog{
			Enabled: true,
			Path:    "/tmp/scribble.log",
			Verbose: true,
		},
	}
)
