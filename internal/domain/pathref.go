package domain

import (
	"regexp"
	"strings"
	"unicode"
)

// PathRef is either a LocalPath or a RemotePath
type PathRef interface {
	// Arg renders the reference as a single rclone argument
	Arg() string
	isPathRef()
}

// LocalPath is a path on the local filesystem
type LocalPath struct {
	Path string
}

// RemotePath is a path on a configured rclone remote ("name:path")
type RemotePath struct {
	Remote string
	Path   string
}

func (LocalPath) isPathRef()  {}
func (RemotePath) isPathRef() {}

// Arg returns the bare path
func (p LocalPath) Arg() string { return p.Path }

// Arg returns "remote:path"
func (p RemotePath) Arg() string { return p.Remote + ":" + p.Path }

// RenderRef renders a possibly absent reference; nil renders as ""
func RenderRef(ref PathRef) string {
	if ref == nil {
		return ""
	}
	return ref.Arg()
}

var remoteNameRegex = regexp.MustCompile(`^[A-Za-z0-9_][\w-]*$`)

// IsRemoteName reports whether name is a valid rclone remote name
func IsRemoteName(name string) bool {
	return remoteNameRegex.MatchString(name)
}

// PathResolver decides whether a positional argument names a remote.
//
// With DriveLetters set, "X:" prefixes are Windows drive letters and never
// remotes.
type PathResolver struct {
	DriveLetters bool
}

// DefaultPathResolver honors drive letters
var DefaultPathResolver = PathResolver{DriveLetters: true}

// Resolve classifies a single positional token
func (r PathResolver) Resolve(token string) PathRef {
	colon := strings.IndexByte(token, ':')
	if colon <= 0 {
		return LocalPath{Path: token}
	}

	if r.DriveLetters && colon == 1 && unicode.IsLetter(rune(token[0])) {
		return LocalPath{Path: token}
	}

	name := token[:colon]
	if !IsRemoteName(name) {
		return LocalPath{Path: token}
	}
	return RemotePath{Remote: name, Path: token[colon+1:]}
}
