// Package service holds the actions: every operation validates its input,
// calls the repositories and reports a result.Result. Errors and panics from
// below never cross this boundary.
package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/gblsmlo/lemind/internal/core/database"
	"github.com/gblsmlo/lemind/internal/core/result"
	"github.com/gblsmlo/lemind/internal/core/validate"
)

var errUnknown = errors.New("unknown error")

var actionResults = prometheus.NewCounterVec(
	prometheus.CounterOpts{Name: "crm_action_results_total", Help: "Outcome of service actions"},
	[]string{"entity", "op", "outcome"},
)

func init() { prometheus.MustRegister(actionResults) }

// actor classifies and records the outcome of the actions of one entity.
type actor struct {
	entity string // "Contact"
	one    string // "contact"
	many   string // "contacts"
	log    *zap.Logger
}

func newActor(entity, plural string, l *zap.Logger) actor {
	if l == nil {
		l = zap.NewNop()
	}
	return actor{entity: entity, one: strings.ToLower(entity), many: plural, log: l}
}

func (a *actor) notFound() result.Failure {
	return result.Failure{Kind: result.NotFound, Message: a.entity + " not found"}
}

func (a *actor) idRequired() result.Failure {
	return result.Failure{Kind: result.Validation, Message: a.entity + " ID is required"}
}

func (a *actor) forbidden(msg string) result.Failure {
	return result.Failure{Kind: result.Authorization, Message: msg}
}

// classify maps an error returned by a repository onto the failure taxonomy.
func (a *actor) classify(op, target string, err error) result.Failure {
	switch {
	case database.IsUniqueViolation(err):
		return result.Failure{
			Kind:    result.Validation,
			Message: fmt.Sprintf("%s conflicts with an existing record", a.entity),
			Err:     err,
		}
	case database.IsStoreError(err):
		return result.Failure{Kind: result.Database, Message: err.Error(), Err: err}
	default:
		return result.Failure{
			Kind:    result.Unknown,
			Message: fmt.Sprintf("Failed to %s %s: %v", op, target, err),
			Err:     err,
		}
	}
}

func invalid(err error) result.Failure {
	f := result.Failure{Kind: result.Validation, Message: err.Error(), Err: err}
	var ve *validate.Error
	if errors.As(err, &ve) {
		f.Details = ve.Issues
	}
	return f
}

func failed[O any](a *actor, op, target string, err error) result.Result[O] {
	return result.Fail[O](a.classify(op, target, err))
}

// settle runs deferred at the end of every action. It turns a panic into a
// failure and records the outcome.
func settle[O any](a *actor, op, target string, rec any, res *result.Result[O]) {
	if rec != nil {
		if err, ok := rec.(error); ok {
			*res = result.Fail[O](a.classify(op, target, err))
		} else {
			*res = result.Fail[O](result.Failure{
				Kind:    result.Unknown,
				Message: fmt.Sprintf("Failed to %s %s", op, target),
				Err:     errUnknown,
				Details: fmt.Sprint(rec),
			})
		}
		a.log.Error("action panicked", zap.String("entity", a.one), zap.String("op", op), zap.Any("panic", rec))
	}
	a.observe(op, *res)
}

func (a *actor) observe(op string, res interface {
	IsSuccess() bool
	Kind() result.Kind
	Message() string
}) {
	outcome := "success"
	if !res.IsSuccess() {
		outcome = string(res.Kind())
	}
	actionResults.WithLabelValues(a.one, op, outcome).Inc()

	switch res.Kind() {
	case "":
	case result.Database, result.Unknown:
		a.log.Error("action failed", zap.String("entity", a.one), zap.String("op", op),
			zap.String("kind", outcome), zap.String("msg", res.Message()))
	default:
		a.log.Debug("action rejected", zap.String("entity", a.one), zap.String("op", op),
			zap.String("kind", outcome), zap.String("msg", res.Message()))
	}
}
