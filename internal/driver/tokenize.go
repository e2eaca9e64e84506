package driver

import (
	"rcc/internal/lexer"
	"rcc/internal/source"
	"rcc/internal/token"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
}

// Tokenize lexes the file at path. On a lexer error the FileSet and File are
// still returned so the caller can render the location.
func Tokenize(path string) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(id)
	toks, err := lexer.Tokenize(file)
	return &TokenizeResult{FileSet: fs, File: file, Tokens: toks}, err
}
