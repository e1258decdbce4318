package queryparser

import (
	"go.uber.org/fx"

	"github.com/Aleph-Alpha/querystd/v1/observability"
)

// FXModule is an fx.Module that provides a *Parser.
//
// Usage:
//
//	app := fx.New(
//	    logger.FXModule,
//	    metrics.FXModule, // provides an observability.Observer
//	    queryparser.FXModule,
//	    fx.Provide(
//	        queryparser.DefaultConfig,
//	        func(l *logger.LoggerClient) queryparser.Logger { return l },
//	    ),
//	)
var FXModule = fx.Module("queryparser",
	fx.Provide(
		NewParserWithDI,
	),
)

// ParserParams groups the dependencies needed to create a Parser.
type ParserParams struct {
	fx.In

	Config   Config
	Logger   Logger                 `optional:"true"`
	Observer observability.Observer `optional:"true"`
	Coercer  IdentifierCoercer      `optional:"true"`
}

// NewParserWithDI creates a Parser from injected dependencies. Missing
// optional dependencies fall back to the same defaults as NewParser.
func NewParserWithDI(params ParserParams) *Parser {
	p := NewParser(params.Config, params.Logger)
	if params.Coercer != nil {
		p.WithIdentifierCoercer(params.Coercer)
	}
	if params.Observer != nil {
		p.WithObserver(params.Observer)
	}
	return p
}
