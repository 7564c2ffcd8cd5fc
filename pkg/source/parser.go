package source

import (
	"regexp"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/marchblue/cascade/pkg/semver"
	"github.com/marchblue/cascade/pkg/workspace"
)

// rangeCacheSize bounds the memoized range validations. Workspaces repeat
// the same handful of range strings across hundreds of edges.
const rangeCacheSize = 512

var githubShorthandRe = regexp.MustCompile(
	`^([A-Za-z0-9][A-Za-z0-9_.-]*)/([A-Za-z0-9][A-Za-z0-9_.-]*)(?:#(.+))?$`)

// Parser parses raw dependency specifiers for one project context.
//
// Parsing has no side effects beyond an internal bounded cache of range
// validations; the same input always yields the same result.
type Parser struct {
	ctx    workspace.Context
	ranges *lru.Cache[string, bool]
}

// NewParser creates a parser bound to the given project context.
func NewParser(ctx workspace.Context) *Parser {
	ranges, _ := lru.New[string, bool](rangeCacheSize) // only fails for size <= 0
	return &Parser{ctx: ctx, ranges: ranges}
}

func (p *Parser) validRange(raw string) bool {
	if ok, hit := p.ranges.Get(raw); hit {
		return ok
	}
	ok := semver.ValidRange(raw)
	p.ranges.Add(raw, ok)
	return ok
}

// Parse parses one raw specifier. Protocols are recognized by structural
// prefix in fixed precedence: workspace: > npm: > jsr: > git > file:/link:
// > http(s) tarball > scoped alias > bare semver range. Failures return a
// *ParseError carrying the offending specifier.
func (p *Parser) Parse(raw string) (Source, error) {
	spec := strings.TrimSpace(raw)
	if spec == "" {
		return nil, newParseError(raw, ErrMalformedSpecifier)
	}

	switch {
	case strings.HasPrefix(spec, "workspace:"):
		return p.parseWorkspace(spec)

	case strings.HasPrefix(spec, "npm:"):
		name, rng, err := p.splitAlias(spec, strings.TrimPrefix(spec, "npm:"))
		if err != nil {
			return nil, err
		}
		return CrossRegistryNpm{Name: name, Range: rng}, nil

	case strings.HasPrefix(spec, "jsr:"):
		name, rng, err := p.splitAlias(spec, strings.TrimPrefix(spec, "jsr:"))
		if err != nil {
			return nil, err
		}
		return CrossRegistryJsr{Name: name, Range: rng}, nil

	case strings.HasPrefix(spec, "git+"), strings.HasPrefix(spec, "git://"):
		repo, ref := splitReference(spec)
		return GitRepo{Repo: repo, Reference: ref}, nil

	case strings.HasPrefix(spec, "github:"):
		return parseShorthand(spec, strings.TrimPrefix(spec, "github:"))

	case githubShorthandRe.MatchString(spec):
		return parseShorthand(spec, spec)

	case strings.HasPrefix(spec, "file:"):
		return LocalFile{Path: strings.TrimPrefix(spec, "file:")}, nil

	case strings.HasPrefix(spec, "link:"):
		return LocalFile{Path: strings.TrimPrefix(spec, "link:"), Link: true}, nil

	case strings.HasPrefix(spec, "http://"), strings.HasPrefix(spec, "https://"):
		return UrlTarball{URL: spec}, nil

	case strings.HasPrefix(spec, "@"):
		name, rng, err := p.splitAlias(spec, spec)
		if err != nil {
			return nil, err
		}
		if rng == "" {
			return nil, newParseError(spec, ErrMalformedSpecifier)
		}
		return Scoped{Name: name, Range: rng}, nil

	default:
		if !p.validRange(spec) {
			return nil, newParseError(spec, ErrInvalidRange)
		}
		return RegistrySemver{Range: spec}, nil
	}
}

func (p *Parser) parseWorkspace(spec string) (Source, error) {
	if !p.ctx.IsWorkspace() {
		return nil, newParseError(spec, ErrUnsupportedProtocol)
	}

	rest := strings.TrimPrefix(spec, "workspace:")
	switch rest {
	case "*":
		return WorkspaceAny{}, nil
	case "^":
		return WorkspaceCompatible{}, nil
	case "~":
		return WorkspacePatch{}, nil
	case "":
		return nil, newParseError(spec, ErrMalformedSpecifier)
	}

	if strings.HasPrefix(rest, "./") || strings.HasPrefix(rest, "../") || strings.HasPrefix(rest, "/") {
		return WorkspacePath{Path: rest}, nil
	}

	// "workspace:name@constraint" aliases a differently named sibling.
	// LastIndex keeps scoped names ("@acme/core@^1.2.0") intact.
	if idx := strings.LastIndex(rest, "@"); idx > 0 {
		name, constraint := rest[:idx], rest[idx+1:]
		if constraint == "" || !p.validRange(constraint) {
			return nil, newParseError(spec, ErrInvalidRange)
		}
		return WorkspaceAlias{Alias: name, Name: name, Constraint: constraint}, nil
	}

	if !p.validRange(rest) {
		return nil, newParseError(spec, ErrInvalidRange)
	}
	return WorkspaceExact{Range: rest}, nil
}

// splitAlias splits "name@range" (or a bare "name") and validates the
// range when present. Scoped names keep their leading @.
func (p *Parser) splitAlias(spec, rest string) (name, rng string, err error) {
	if rest == "" {
		return "", "", newParseError(spec, ErrMalformedSpecifier)
	}
	idx := strings.LastIndex(rest, "@")
	if idx <= 0 {
		return rest, "", nil
	}
	name, rng = rest[:idx], rest[idx+1:]
	if rng == "" || !p.validRange(rng) {
		return "", "", newParseError(spec, ErrInvalidRange)
	}
	return name, rng, nil
}

func parseShorthand(spec, rest string) (Source, error) {
	m := githubShorthandRe.FindStringSubmatch(rest)
	if m == nil {
		return nil, newParseError(spec, ErrMalformedSpecifier)
	}
	return GitHubShorthand{User: m[1], Repo: m[2], Reference: m[3]}, nil
}

func splitReference(spec string) (repo, ref string) {
	if idx := strings.Index(spec, "#"); idx >= 0 {
		return spec[:idx], spec[idx+1:]
	}
	return spec, ""
}
