package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPathResolver_Resolve(t *testing.T) {
	tests := []struct {
		token string
		want  PathRef
	}{
		{"/data/restore", LocalPath{Path: "/data/restore"}},
		{`C:\src`, LocalPath{Path: `C:\src`}},
		{"C:", LocalPath{Path: "C:"}},
		{"d:relative", LocalPath{Path: "d:relative"}},
		{":leading-colon", LocalPath{Path: ":leading-colon"}},
		{"myremote:backups/", RemotePath{Remote: "myremote", Path: "backups/"}},
		{"remote:", RemotePath{Remote: "remote", Path: ""}},
		{"s3-east_1:bucket/key:with:colons", RemotePath{Remote: "s3-east_1", Path: "bucket/key:with:colons"}},
		{"1:foo", RemotePath{Remote: "1", Path: "foo"}},
		{"_x:y", RemotePath{Remote: "_x", Path: "y"}},
		{"my remote:x", LocalPath{Path: "my remote:x"}},
		{"a.b:c", LocalPath{Path: "a.b:c"}},
		{"-bad:x", LocalPath{Path: "-bad:x"}},
		{"", LocalPath{Path: ""}},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got := DefaultPathResolver.Resolve(tt.token)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Resolve(%q) mismatch (-want +got):\n%s", tt.token, diff)
			}
		})
	}
}

func TestPathResolver_DriveLettersDisabled(t *testing.T) {
	r := PathResolver{DriveLetters: false}

	got := r.Resolve(`C:\src`)
	want := RemotePath{Remote: "C", Path: `\src`}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	if _, ok := r.Resolve("/abs/path").(LocalPath); !ok {
		t.Errorf("expected /abs/path to stay local")
	}
}

func TestRenderRef(t *testing.T) {
	if got := RenderRef(nil); got != "" {
		t.Errorf("expected empty string for nil ref, got %q", got)
	}
	if got := RenderRef(RemotePath{Remote: "gdrive", Path: "a/b"}); got != "gdrive:a/b" {
		t.Errorf("expected gdrive:a/b, got %s", got)
	}
	if got := RenderRef(LocalPath{Path: `C:\x`}); got != `C:\x` {
		t.Errorf(`expected C:\x, got %s`, got)
	}
}
