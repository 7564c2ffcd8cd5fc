package workspace

import "sort"

// Kind distinguishes single-package repositories from workspaces.
type Kind int

const (
	Single Kind = iota
	Workspace
)

func (k Kind) String() string {
	return []string{"single", "workspace"}[k]
}

// Context is the detected project context. The zero value is a
// single-package context.
type Context struct {
	kind    Kind
	members map[string]struct{}
}

// Detect builds a project context from the set of workspace member package
// names. A non-empty set means workspace context; an empty (or nil) set
// means single-package context.
func Detect(memberNames []string) Context {
	if len(memberNames) == 0 {
		return Context{kind: Single}
	}
	members := make(map[string]struct{}, len(memberNames))
	for _, name := range memberNames {
		members[name] = struct{}{}
	}
	return Context{kind: Workspace, members: members}
}

func (c Context) Kind() Kind        { return c.kind }
func (c Context) IsWorkspace() bool { return c.kind == Workspace }

// IsMember reports whether name is a workspace member. Always false in
// single-package context.
func (c Context) IsMember(name string) bool {
	_, ok := c.members[name]
	return ok
}

// Members returns the member names in lexicographic order.
func (c Context) Members() []string {
	names := make([]string, 0, len(c.members))
	for name := range c.members {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
