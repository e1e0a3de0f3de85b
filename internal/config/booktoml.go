package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"git.home.luguber.info/inful/bookgen/internal/foundation/errors"
)

// bookTOML is the subset of mdBook's book.toml we read.
type bookTOML struct {
	Book struct {
		Src string `toml:"src"`
	} `toml:"book"`
}

// srcFromBookTOML returns the [book] src directory declared in
// <bookDir>/book.toml, or DefaultSrcDir when the file or key is absent.
func srcFromBookTOML(bookDir string) (string, error) {
	path := filepath.Join(bookDir, "book.toml")
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultSrcDir, nil
	}
	if err != nil {
		return "", errors.WrapError(err, errors.CategoryConfig, "failed to read book.toml").
			Fatal().
			WithContext("path", path).
			Build()
	}
	var bt bookTOML
	if err := toml.Unmarshal(data, &bt); err != nil {
		return "", errors.WrapError(err, errors.CategoryConfig, "failed to parse book.toml").
			Fatal().
			WithContext("path", path).
			Build()
	}
	if bt.Book.Src == "" {
		return DefaultSrcDir, nil
	}
	return bt.Book.Src, nil
}
