package classify

import (
	"sort"

	"github.com/marchblue/cascade/pkg/graph"
	"github.com/marchblue/cascade/pkg/source"
	"github.com/marchblue/cascade/pkg/workspace"
)

// ReferenceKind describes how an internal dependency is referenced.
type ReferenceKind int

const (
	RefNone ReferenceKind = iota // external edges carry no reference kind
	RefWorkspaceProtocol
	RefLocalFile
	RefRegistryVersion
	RefOther
)

func (k ReferenceKind) String() string {
	return []string{"none", "workspace-protocol", "local-file", "registry-version", "other"}[k]
}

// Advisory warnings attached to unusual internal references.
const (
	WarnRegistryReference  = "internal dependency referenced by registry range; consider the workspace: protocol"
	WarnLocalFileReference = "internal dependency referenced by local path; consider the workspace: protocol"
	WarnUnusualReference   = "unusual reference type for an internal package"
	WarnNonMemberWorkspace = "workspace: specifier names a package that is not a workspace member"
)

// Classification is the label for one edge: internal with reference
// metadata, or external. Warning is advisory and never blocks resolution.
type Classification struct {
	Internal      bool
	Reference     ReferenceKind
	RegistryRange string // set when Reference is RefRegistryVersion
	Warning       string
}

// EdgeKey identifies an edge in the classification map.
type EdgeKey struct {
	Consumer   string
	Dependency string
	Kind       graph.EdgeKind
}

// Classify labels every edge of the graph, including edges to unknown
// names, for the given project context.
func Classify(g *graph.Graph, ctx workspace.Context) map[EdgeKey]Classification {
	out := make(map[EdgeKey]Classification)
	for _, e := range g.Edges() {
		out[keyOf(e)] = classifyEdge(e, ctx)
	}
	for _, e := range g.ExternalEdges() {
		out[keyOf(e)] = classifyEdge(e, ctx)
	}
	return out
}

// SortedKeys returns the map's keys in deterministic order.
func SortedKeys(classes map[EdgeKey]Classification) []EdgeKey {
	keys := make([]EdgeKey, 0, len(classes))
	for k := range classes {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Consumer != keys[j].Consumer {
			return keys[i].Consumer < keys[j].Consumer
		}
		if keys[i].Dependency != keys[j].Dependency {
			return keys[i].Dependency < keys[j].Dependency
		}
		return keys[i].Kind < keys[j].Kind
	})
	return keys
}

func keyOf(e graph.Edge) EdgeKey {
	return EdgeKey{Consumer: e.Consumer, Dependency: e.Dependency, Kind: e.Kind}
}

func classifyEdge(e graph.Edge, ctx workspace.Context) Classification {
	if !ctx.IsWorkspace() {
		// Single-package repositories have no naming convention for
		// internal packages; only a local path is internal.
		if _, ok := e.Source.(source.LocalFile); ok {
			return Classification{Internal: true, Reference: RefLocalFile}
		}
		return Classification{}
	}

	if !ctx.IsMember(e.Dependency) {
		// A workspace: specifier naming a non-member is a data
		// inconsistency; surface it but classify as external.
		if source.IsWorkspaceProtocol(e.Source) {
			return Classification{Warning: WarnNonMemberWorkspace}
		}
		return Classification{}
	}

	switch src := e.Source.(type) {
	case source.WorkspaceAny, source.WorkspaceCompatible, source.WorkspacePatch,
		source.WorkspaceExact, source.WorkspacePath, source.WorkspaceAlias:
		return Classification{Internal: true, Reference: RefWorkspaceProtocol}
	case source.RegistrySemver:
		return Classification{
			Internal:      true,
			Reference:     RefRegistryVersion,
			RegistryRange: src.Range,
			Warning:       WarnRegistryReference,
		}
	case source.LocalFile:
		return Classification{
			Internal:  true,
			Reference: RefLocalFile,
			Warning:   WarnLocalFileReference,
		}
	default:
		return Classification{
			Internal:  true,
			Reference: RefOther,
			Warning:   WarnUnusualReference,
		}
	}
}
