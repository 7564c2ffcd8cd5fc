package source

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marchblue/cascade/pkg/workspace"
)

func workspaceParser(t *testing.T) *Parser {
	t.Helper()
	ctx := workspace.Detect([]string{"@acme/core", "@acme/ui", "tools"})
	return NewParser(ctx)
}

func singleParser(t *testing.T) *Parser {
	t.Helper()
	return NewParser(workspace.Detect(nil))
}

func TestParse_Variants(t *testing.T) {
	p := workspaceParser(t)

	tests := []struct {
		spec string
		want Source
	}{
		{"^1.2.0", RegistrySemver{Range: "^1.2.0"}},
		{">=1.0.0 <2.0.0", RegistrySemver{Range: ">=1.0.0 <2.0.0"}},
		{"1.2.3", RegistrySemver{Range: "1.2.3"}},
		{"*", RegistrySemver{Range: "*"}},
		{"@scope/name@^1.0.0", Scoped{Name: "@scope/name", Range: "^1.0.0"}},
		{"npm:left-pad@^2.0.0", CrossRegistryNpm{Name: "left-pad", Range: "^2.0.0"}},
		{"npm:left-pad", CrossRegistryNpm{Name: "left-pad"}},
		{"npm:@other/name@~3.1.0", CrossRegistryNpm{Name: "@other/name", Range: "~3.1.0"}},
		{"jsr:@std/path@^1.0.0", CrossRegistryJsr{Name: "@std/path", Range: "^1.0.0"}},
		{"workspace:*", WorkspaceAny{}},
		{"workspace:^", WorkspaceCompatible{}},
		{"workspace:~", WorkspacePatch{}},
		{"workspace:1.2.3", WorkspaceExact{Range: "1.2.3"}},
		{"workspace:^1.2.0", WorkspaceExact{Range: "^1.2.0"}},
		{"workspace:../packages/core", WorkspacePath{Path: "../packages/core"}},
		{"workspace:core@^1.0.0", WorkspaceAlias{Alias: "core", Name: "core", Constraint: "^1.0.0"}},
		{"workspace:@acme/core@~2.0.0", WorkspaceAlias{Alias: "@acme/core", Name: "@acme/core", Constraint: "~2.0.0"}},
		{"file:../local-lib", LocalFile{Path: "../local-lib"}},
		{"link:../local-lib", LocalFile{Path: "../local-lib", Link: true}},
		{"git+https://github.com/acme/lib.git#v2.1.0", GitRepo{Repo: "git+https://github.com/acme/lib.git", Reference: "v2.1.0"}},
		{"git+ssh://git@github.com/acme/lib.git", GitRepo{Repo: "git+ssh://git@github.com/acme/lib.git"}},
		{"git://github.com/acme/lib.git", GitRepo{Repo: "git://github.com/acme/lib.git"}},
		{"acme/lib#main", GitHubShorthand{User: "acme", Repo: "lib", Reference: "main"}},
		{"acme/lib", GitHubShorthand{User: "acme", Repo: "lib"}},
		{"https://example.com/pkg-1.0.0.tgz", UrlTarball{URL: "https://example.com/pkg-1.0.0.tgz"}},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := p.Parse(tt.spec)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Parsing a canonical string and re-serializing it is the identity.
func TestParse_CanonicalRoundTrip(t *testing.T) {
	p := workspaceParser(t)

	specs := []string{
		"^1.2.0",
		"@scope/name@^1.0.0",
		"npm:left-pad@^2.0.0",
		"jsr:@std/path@^1.0.0",
		"workspace:*",
		"workspace:^",
		"workspace:~",
		"workspace:1.2.3",
		"workspace:../packages/core",
		"workspace:core@^1.0.0",
		"file:../local-lib",
		"link:../local-lib",
		"git+https://github.com/acme/lib.git#v2.1.0",
		"acme/lib#main",
		"https://example.com/pkg-1.0.0.tgz",
	}
	for _, spec := range specs {
		src, err := p.Parse(spec)
		require.NoError(t, err, "spec %q", spec)
		assert.Equal(t, spec, src.String(), "spec %q", spec)

		again, err := p.Parse(src.String())
		require.NoError(t, err)
		assert.Equal(t, src, again, "spec %q", spec)
	}
}

// The github: prefix is accepted on input but dropped from the canonical
// form.
func TestParse_GithubPrefixNormalized(t *testing.T) {
	p := workspaceParser(t)
	src, err := p.Parse("github:acme/lib#main")
	require.NoError(t, err)
	assert.Equal(t, GitHubShorthand{User: "acme", Repo: "lib", Reference: "main"}, src)
	assert.Equal(t, "acme/lib#main", src.String())
}

func TestParse_WorkspaceRejectedOutsideWorkspace(t *testing.T) {
	p := singleParser(t)
	for _, spec := range []string{"workspace:*", "workspace:^1.2.0", "workspace:../core"} {
		_, err := p.Parse(spec)
		assert.ErrorIs(t, err, ErrUnsupportedProtocol, "spec %q", spec)
	}
}

func TestParse_Errors(t *testing.T) {
	p := workspaceParser(t)

	tests := []struct {
		spec string
		want error
	}{
		{"", ErrMalformedSpecifier},
		{"   ", ErrMalformedSpecifier},
		{"workspace:", ErrMalformedSpecifier},
		{"workspace:not a range", ErrInvalidRange},
		{"workspace:core@", ErrInvalidRange},
		{"npm:", ErrMalformedSpecifier},
		{"npm:name@not a range", ErrInvalidRange},
		{"@scope/name", ErrMalformedSpecifier},
		{"@scope/name@garbage!!", ErrInvalidRange},
		{"not a range", ErrInvalidRange},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			_, err := p.Parse(tt.spec)
			assert.ErrorIs(t, err, tt.want)

			var parseErr *ParseError
			require.True(t, errors.As(err, &parseErr))
		})
	}
}

// The parser is deterministic: repeat parses (including cache hits on the
// range validator) return identical results.
func TestParse_Deterministic(t *testing.T) {
	p := workspaceParser(t)
	for i := 0; i < 3; i++ {
		src, err := p.Parse("^1.2.0")
		require.NoError(t, err)
		assert.Equal(t, RegistrySemver{Range: "^1.2.0"}, src)

		_, err = p.Parse("not a range")
		assert.ErrorIs(t, err, ErrInvalidRange)
	}
}

func TestIsWorkspaceProtocol(t *testing.T) {
	assert.True(t, IsWorkspaceProtocol(WorkspaceAny{}))
	assert.True(t, IsWorkspaceProtocol(WorkspaceExact{Range: "1.2.3"}))
	assert.True(t, IsWorkspaceProtocol(WorkspacePath{Path: "../x"}))
	assert.False(t, IsWorkspaceProtocol(RegistrySemver{Range: "^1.0.0"}))
	assert.False(t, IsWorkspaceProtocol(LocalFile{Path: "../x"}))
}
