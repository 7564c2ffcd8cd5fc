package source

// Source is a typed dependency specifier. The union is closed: every
// variant is defined in this file and consumers switch exhaustively over
// the concrete types. String returns the canonical specifier; parsing a
// canonical string and re-serializing it is the identity.
type Source interface {
	String() string
	isSource()
}

// RegistrySemver is a plain registry range such as "^1.2.0" or
// ">=1.0.0 <2.0.0".
type RegistrySemver struct {
	Range string
}

// Scoped is a scoped registry alias of the form "@scope/name@range", used
// when a dependency key aliases a differently named scoped package.
type Scoped struct {
	Name  string // "@scope/name"
	Range string
}

// CrossRegistryNpm is an npm: alias pointing at a (possibly renamed)
// package on the npm registry: "npm:name@range" or "npm:name".
type CrossRegistryNpm struct {
	Name  string
	Range string // empty when the alias carries no range
}

// CrossRegistryJsr is a jsr: alias pointing at a package on the JSR
// registry: "jsr:@scope/name@range" or "jsr:@scope/name".
type CrossRegistryJsr struct {
	Name  string
	Range string
}

// WorkspaceAny is "workspace:*": any version of the sibling package.
type WorkspaceAny struct{}

// WorkspaceCompatible is "workspace:^": caret range on the sibling's
// current version.
type WorkspaceCompatible struct{}

// WorkspacePatch is "workspace:~": tilde range on the sibling's current
// version.
type WorkspacePatch struct{}

// WorkspaceExact is "workspace:<range>": an explicit range against the
// sibling package, e.g. "workspace:1.2.3" or "workspace:^1.2.0".
type WorkspaceExact struct {
	Range string
}

// WorkspacePath is "workspace:<path>": a sibling referenced by relative
// directory instead of version.
type WorkspacePath struct {
	Path string
}

// WorkspaceAlias is "workspace:<name>@<constraint>": the dependency key
// aliases a differently named sibling package.
type WorkspaceAlias struct {
	Alias      string // aliased sibling name as written
	Name       string
	Constraint string
}

// LocalFile is "file:<path>" or "link:<path>".
type LocalFile struct {
	Path string
	Link bool // link: instead of file:
}

// GitRepo is a git URL with an optional committish: "git+https://...#ref",
// "git+ssh://...", or "git://...".
type GitRepo struct {
	Repo      string // URL as written, without the #reference
	Reference string // empty when no committish given
}

// GitHubShorthand is "user/repo" with an optional "#ref". The "github:"
// prefix is accepted on input and dropped from the canonical form.
type GitHubShorthand struct {
	User      string
	Repo      string
	Reference string
}

// UrlTarball is a direct http(s) tarball URL.
type UrlTarball struct {
	URL string
}

func (RegistrySemver) isSource()      {}
func (Scoped) isSource()              {}
func (CrossRegistryNpm) isSource()    {}
func (CrossRegistryJsr) isSource()    {}
func (WorkspaceAny) isSource()        {}
func (WorkspaceCompatible) isSource() {}
func (WorkspacePatch) isSource()      {}
func (WorkspaceExact) isSource()      {}
func (WorkspacePath) isSource()       {}
func (WorkspaceAlias) isSource()      {}
func (LocalFile) isSource()           {}
func (GitRepo) isSource()             {}
func (GitHubShorthand) isSource()     {}
func (UrlTarball) isSource()          {}

func (s RegistrySemver) String() string { return s.Range }

func (s Scoped) String() string { return s.Name + "@" + s.Range }

func (s CrossRegistryNpm) String() string {
	if s.Range == "" {
		return "npm:" + s.Name
	}
	return "npm:" + s.Name + "@" + s.Range
}

func (s CrossRegistryJsr) String() string {
	if s.Range == "" {
		return "jsr:" + s.Name
	}
	return "jsr:" + s.Name + "@" + s.Range
}

func (WorkspaceAny) String() string        { return "workspace:*" }
func (WorkspaceCompatible) String() string { return "workspace:^" }
func (WorkspacePatch) String() string      { return "workspace:~" }

func (s WorkspaceExact) String() string { return "workspace:" + s.Range }

func (s WorkspacePath) String() string { return "workspace:" + s.Path }

func (s WorkspaceAlias) String() string {
	return "workspace:" + s.Name + "@" + s.Constraint
}

func (s LocalFile) String() string {
	if s.Link {
		return "link:" + s.Path
	}
	return "file:" + s.Path
}

func (s GitRepo) String() string {
	if s.Reference == "" {
		return s.Repo
	}
	return s.Repo + "#" + s.Reference
}

func (s GitHubShorthand) String() string {
	out := s.User + "/" + s.Repo
	if s.Reference != "" {
		out += "#" + s.Reference
	}
	return out
}

func (s UrlTarball) String() string { return s.URL }

// IsWorkspaceProtocol reports whether src is any workspace: variant.
func IsWorkspaceProtocol(src Source) bool {
	switch src.(type) {
	case WorkspaceAny, WorkspaceCompatible, WorkspacePatch,
		WorkspaceExact, WorkspacePath, WorkspaceAlias:
		return true
	}
	return false
}
