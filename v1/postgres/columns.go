package postgres

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm/clause"
)

// columnPattern accepts identifiers such as name, created_at, createdAt and
// author.name.
var columnPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)*$`)

func column(name string) (clause.Column, error) {
	if !columnPattern.MatchString(name) {
		return clause.Column{}, fmt.Errorf("%w: %q", ErrInvalidColumn, name)
	}
	return clause.Column{Name: name}, nil
}

// quoteColumn quotes every part of a dotted column for use in raw SQL.
func quoteColumn(name string) (string, error) {
	if !columnPattern.MatchString(name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidColumn, name)
	}
	parts := strings.Split(name, ".")
	for i, p := range parts {
		parts[i] = pq.QuoteIdentifier(p)
	}
	return strings.Join(parts, "."), nil
}
