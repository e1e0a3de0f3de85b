// Package revision reports the source revision a book was generated from.
package revision

import (
	"log/slog"

	ggit "github.com/go-git/go-git/v5"

	"git.home.luguber.info/inful/bookgen/internal/logfields"
)

// Info describes the checked-out revision of a working tree.
type Info struct {
	Commit string `json:"commit"`
	Branch string `json:"branch,omitempty"`
}

// Short returns the abbreviated commit hash.
func (i Info) Short() string {
	if len(i.Commit) > 8 {
		return i.Commit[:8]
	}
	return i.Commit
}

// Lookup finds the repository containing dir and returns its HEAD. It is best
// effort: outside a repository, or with an unborn HEAD, it returns a zero Info.
func Lookup(dir string) Info {
	repo, err := ggit.PlainOpenWithOptions(dir, &ggit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		slog.Debug("No git repository for revision lookup", logfields.Path(dir), logfields.Error(err))
		return Info{}
	}
	ref, err := repo.Head()
	if err != nil {
		slog.Debug("Failed to resolve HEAD", logfields.Path(dir), logfields.Error(err))
		return Info{}
	}
	info := Info{Commit: ref.Hash().String()}
	if ref.Name().IsBranch() {
		info.Branch = ref.Name().Short()
	}
	return info
}
