package queryparser

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/Aleph-Alpha/querystd/v1/observability"
)

// Logger defines the interface for logging within the queryparser package.
// It matches std/v1/logger so a LoggerClient can be passed directly.

//go:generate mockgen -source=setup.go -destination=mock_logger.go -package=queryparser
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
	Fatal(msg string, err error, fields ...map[string]interface{})
}

// Parser interprets raw request parameters into a Query.
//
// A Parser only holds configuration. Parse is safe for concurrent use once
// the With* options have been applied.
type Parser struct {
	cfg      Config
	logger   Logger
	coercer  IdentifierCoercer
	observer observability.Observer
}

// NewParser creates a Parser. Zero fields of cfg take their defaults and a
// nil logger disables logging; diagnostics are still recorded on the Query.
func NewParser(cfg Config, logger Logger) *Parser {
	return &Parser{
		cfg:     cfg.withDefaults(),
		logger:  logger,
		coercer: ObjectIDCoercer{},
	}
}

// WithIdentifierCoercer replaces the identifier coercer used by the nested
// and condition compilers. A nil coercer restores the default.
func (p *Parser) WithIdentifierCoercer(coercer IdentifierCoercer) *Parser {
	if coercer == nil {
		coercer = ObjectIDCoercer{}
	}
	p.coercer = coercer
	return p
}

// WithObserver attaches an observer that is notified about every parse and
// every diagnostic. Returns the parser for chaining.
func (p *Parser) WithObserver(observer observability.Observer) *Parser {
	p.observer = observer
	return p
}

// Config returns the effective configuration.
func (p *Parser) Config() Config {
	return p.cfg
}

var defaultParser = NewParser(DefaultConfig(), nil)

// Parse interprets params with the default configuration and no logger.
func Parse(params Params) *Query {
	return defaultParser.Parse(params)
}

// Parse interprets params. It never fails: a parameter that cannot be
// interpreted contributes nothing (or its documented fallback) and is
// reported in Query.Diagnostics.
//
// The filter is assembled in a fixed order, later stages overwriting earlier
// ones on key collision: pass-through parameters, nested, condition, regex.
// The soft delete predicate is written last so no input can shadow it.
func (p *Parser) Parse(params Params) *Query {
	start := time.Now()
	diags := &diagnostics{}

	filter := params.passThrough()
	if _, ok := filter[p.cfg.SoftDeleteField]; ok {
		p.debug("ignoring caller supplied soft delete value", map[string]interface{}{
			"field": p.cfg.SoftDeleteField,
		})
	}

	stages := []struct {
		param   string
		compile func(any, *diagnostics) bson.M
	}{
		{KeyNested, p.compileNested},
		{KeyCondition, p.compileCondition},
		{KeyRegex, p.compileRegex},
	}
	for _, stage := range stages {
		var fragment bson.M
		p.guard(stage.param, diags, func() {
			fragment = stage.compile(params[stage.param], diags)
		})
		for k, v := range fragment {
			filter[k] = v
		}
	}

	for k := range filter {
		if IsReserved(k) {
			delete(filter, k)
		}
	}
	filter[p.cfg.SoftDeleteField] = false

	q := &Query{
		filter: filter,
		hints:  make(map[string]any),
	}

	p.guard(KeySort, diags, func() {
		q.sort = p.resolveSort(params[KeySort], diags)
	})
	if q.sort == nil {
		q.sort = p.defaultSort()
	}
	p.guard(KeySelection, diags, func() {
		q.selection = resolveSelection(params[KeySelection], diags)
		q.projection = projectionOf(q.selection)
	})
	p.guard(KeyPopulation, diags, func() {
		q.population = resolvePopulation(params[KeyPopulation], diags)
	})
	q.search, q.hasSearch = resolveSearch(params[KeySearch])
	q.getAll = Truthy(params[KeyAll])

	for _, key := range hintKeys {
		if v, ok := params[key]; ok {
			q.hints[key] = cloneValue(v)
		}
	}

	q.diagnostics = diags.items
	p.report(q, time.Since(start))
	return q
}

// guard runs one stage and turns a panic into an ErrInternal diagnostic.
func (p *Parser) guard(param string, diags *diagnostics, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			diags.addf(param, ErrInternal, "%v", r)
		}
	}()
	fn()
}

func (p *Parser) report(q *Query, duration time.Duration) {
	for _, d := range q.diagnostics {
		p.warn("query parameter degraded", d, map[string]interface{}{
			"param":  d.Param,
			"reason": ReasonCode(d.Reason),
			"detail": d.Detail,
		})
		p.observeOperation("diagnostic", d.Param, ReasonCode(d.Reason), 0, d, 1, nil)
	}

	p.observeOperation("parse", "", "", duration, nil, int64(len(q.filter)), map[string]interface{}{
		"diagnostics": len(q.diagnostics),
	})
}

func (p *Parser) debug(msg string, fields map[string]interface{}) {
	if p.logger == nil {
		return
	}
	p.logger.Debug(msg, nil, p.withService(fields))
}

func (p *Parser) warn(msg string, err error, fields map[string]interface{}) {
	if p.logger == nil {
		return
	}
	p.logger.Warn(msg, err, p.withService(fields))
}

func (p *Parser) withService(fields map[string]interface{}) map[string]interface{} {
	if p.cfg.ServiceName == "" {
		return fields
	}
	if fields == nil {
		fields = make(map[string]interface{}, 1)
	}
	fields["service"] = p.cfg.ServiceName
	return fields
}
