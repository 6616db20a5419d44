package sqlbuilder

import "errors"

var (
	ErrUnknownDialect  = errors.New("sqlbuilder: unknown dialect")
	ErrMissingParam    = errors.New("sqlbuilder: missing query parameter")
	ErrNothingToCommit = errors.New("sqlbuilder: nothing to commit")
	ErrAmbiguousCommit = errors.New("sqlbuilder: more than one statement to commit")
	ErrNoTable         = errors.New("sqlbuilder: no table")
	ErrNoColumns       = errors.New("sqlbuilder: no columns")
	ErrParamConflict   = errors.New("sqlbuilder: subquery parameter conflicts with an outer value")
)
