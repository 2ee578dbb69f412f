// Package pgrest translates a single PostgreSQL SELECT statement into an
// equivalent PostgREST request description, then renders that description
// as an HTTP request or client-library source text.
package pgrest

import (
	"github.com/pgrest-dev/pgrest/engine/lower"
	"github.com/pgrest-dev/pgrest/engine/model"
	"github.com/pgrest-dev/pgrest/engine/render"
)

// Translate parses and lowers sql into the request model. sql must be a
// single PostgreSQL SELECT statement; anything else returns an
// *errors.Error (engine/errors) of kind Unsupported or Unimplemented, or of
// kind Parsing when sql does not parse.
func Translate(sql string) (*model.Statement, error) {
	return lower.Lower(sql)
}

// RenderHTTP lowers sql and renders it as a PostgREST HTTP request
// description.
func RenderHTTP(sql string, opts render.Options) (*render.HTTPRequest, error) {
	stmt, err := Translate(sql)
	if err != nil {
		return nil, err
	}
	return render.RenderHTTP(stmt, opts)
}

// RenderClientCode lowers sql and renders it as client-library source text.
func RenderClientCode(sql string) (string, error) {
	stmt, err := Translate(sql)
	if err != nil {
		return "", err
	}
	return render.ClientCode(stmt)
}
