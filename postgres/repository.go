package postgres

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/ec-win-24/nexuspoint/core"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the query surface shared by pgxpool.Pool and pgx.Tx.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Relation is a named, eagerly loadable relation of an entity. Loading runs
// against the fetched entity after the row itself has been read.
type Relation[E any] struct {
	Name string
	Load func(ctx context.Context, db Querier, entity *E) error
}

// Table describes the persistence schema of an entity type: its table,
// columns, key and declared relations. Values extracts the column values of
// an entity for INSERT and UPDATE statements.
type Table[E any] struct {
	Name      string
	KeyColumn string
	// Columns lists every column, key included, in SELECT order. The order
	// must match the db tags used by pgx row collection.
	Columns   []string
	Values    func(entity *E) map[string]any
	Relations []Relation[E]
}

func (t Table[E]) relation(name string) (Relation[E], bool) {
	for _, relation := range t.Relations {
		if relation.Name == name {
			return relation, true
		}
	}
	return Relation[E]{}, false
}

// Repository is a generic store for domain type D persisted as entity E.
// It is stateless across calls: conversion goes through the injected Mapper,
// staged writes go to the injected UnitOfWork, and expected outcomes are
// returned as core.Result values rather than errors.
type Repository[D any, E any] struct {
	db     Querier
	table  Table[E]
	mapper Mapper[D, E]
	uow    *UnitOfWork
}

func NewRepository[D any, E any](
	db Querier,
	table Table[E],
	mapper Mapper[D, E],
	uow *UnitOfWork,
) *Repository[D, E] {
	return &Repository[D, E]{db: db, table: table, mapper: mapper, uow: uow}
}

// Create implements core.Repository.Create: INSERT the converted entity and
// return the round-tripped domain record with status 201.
func (r *Repository[D, E]) Create(ctx context.Context, domain *D) core.Result[*D] {
	if domain == nil {
		return core.Failure[*D](core.NullValue, http.StatusBadRequest)
	}
	entity, err := r.mapper.ToEntity(domain)
	if err != nil || entity == nil {
		return core.Failure[*D](
			core.NewOperationFailedError("could not convert the record to its entity"),
			http.StatusInternalServerError,
		)
	}

	values := r.table.Values(entity)
	placeholders := make([]string, len(r.table.Columns))
	args := make([]any, len(r.table.Columns))
	for i, column := range r.table.Columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = values[column]
	}
	sql := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		r.table.Name,
		strings.Join(r.table.Columns, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(r.table.Columns, ", "),
	)

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return r.storeFailure(err)
	}
	created, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[E])
	if err != nil {
		return r.storeFailure(err)
	}

	createdDomain, err := r.mapper.ToDomain(&created)
	if err != nil || createdDomain == nil {
		return core.Failure[*D](
			core.NewOperationFailedError("could not convert the created entity back to a record"),
			http.StatusInternalServerError,
		)
	}
	return core.SuccessWithStatus(createdDomain, http.StatusCreated)
}

// Get implements core.Repository.Get. Includes are translated before the
// predicate so configuration errors surface first; a query that matches
// nothing is a success with an absent value and status 404.
func (r *Repository[D, E]) Get(
	ctx context.Context,
	spec core.Specification,
	opts ...core.QueryOption,
) core.Result[*D] {
	cfg := core.ApplyQueryOptions(opts)
	relations, err := r.resolveIncludes(cfg.Includes)
	if err != nil {
		return core.Failure[*D](core.NewOperationInvalidError(err.Error()), http.StatusBadRequest)
	}
	where, args, err := compileSpecification(spec, r.mapper.Column)
	if err != nil {
		return core.Failure[*D](core.NewOperationInvalidError(err.Error()), http.StatusBadRequest)
	}

	sql := fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s LIMIT 1",
		strings.Join(r.table.Columns, ", "),
		r.table.Name,
		where,
	)
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return r.storeFailure(err)
	}
	entity, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[E])
	if errors.Is(err, pgx.ErrNoRows) {
		return core.SuccessWithStatus[*D](nil, http.StatusNotFound)
	}
	if err != nil {
		return r.storeFailure(err)
	}

	if err := r.loadRelations(ctx, relations, &entity); err != nil {
		return r.storeFailure(err)
	}
	domain, err := r.mapper.ToDomain(&entity)
	if err != nil || domain == nil {
		return core.Failure[*D](
			core.NewOperationFailedError("could not convert the fetched entity to a record"),
			http.StatusInternalServerError,
		)
	}
	if cfg.Tracking {
		r.uow.Track(entity)
	}
	return core.Success(domain)
}

// GetAll implements core.Repository.GetAll. Unlike Get, every declared
// relation is loaded in addition to any explicitly requested includes.
func (r *Repository[D, E]) GetAll(
	ctx context.Context,
	spec core.Specification,
	opts ...core.QueryOption,
) core.Result[[]D] {
	cfg := core.ApplyQueryOptions(opts)
	relations, err := r.resolveIncludes(cfg.Includes)
	if err != nil {
		return core.Failure[[]D](core.NewOperationInvalidError(err.Error()), http.StatusBadRequest)
	}
	for _, declared := range r.table.Relations {
		if _, requested := relations[declared.Name]; !requested {
			relations[declared.Name] = declared
		}
	}
	where, args, err := compileSpecification(spec, r.mapper.Column)
	if err != nil {
		return core.Failure[[]D](core.NewOperationInvalidError(err.Error()), http.StatusBadRequest)
	}

	sql := fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s",
		strings.Join(r.table.Columns, ", "),
		r.table.Name,
		where,
	)
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return core.Failure[[]D](
			core.NewOperationFailedError(ConvertPgError(err).Error()),
			http.StatusInternalServerError,
		)
	}
	entities, err := pgx.CollectRows(rows, pgx.RowToStructByName[E])
	if err != nil {
		return core.Failure[[]D](
			core.NewOperationFailedError(ConvertPgError(err).Error()),
			http.StatusInternalServerError,
		)
	}

	domains := make([]D, len(entities))
	for i := range entities {
		if err := r.loadRelations(ctx, relations, &entities[i]); err != nil {
			return core.Failure[[]D](
				core.NewOperationFailedError(ConvertPgError(err).Error()),
				http.StatusInternalServerError,
			)
		}
		domain, err := r.mapper.ToDomain(&entities[i])
		if err != nil || domain == nil {
			return core.Failure[[]D](
				core.NewOperationFailedError("could not convert a fetched entity to a record"),
				http.StatusInternalServerError,
			)
		}
		if cfg.Tracking {
			r.uow.Track(entities[i])
		}
		domains[i] = *domain
	}
	return core.Success(domains)
}

// Update implements core.Repository.Update: stage a full-record UPDATE
// against the unit of work. Commit timing belongs to the unit of work.
func (r *Repository[D, E]) Update(ctx context.Context, domain *D) (*D, error) {
	entity, err := r.entityOf(domain)
	if err != nil {
		return nil, err
	}

	values := r.table.Values(entity)
	assignments := make([]string, 0, len(r.table.Columns)-1)
	args := make([]any, 0, len(r.table.Columns))
	for _, column := range r.table.Columns {
		if column == r.table.KeyColumn {
			continue
		}
		args = append(args, values[column])
		assignments = append(assignments, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	args = append(args, values[r.table.KeyColumn])
	sql := fmt.Sprintf(
		"UPDATE %s SET %s WHERE %s = $%d",
		r.table.Name,
		strings.Join(assignments, ", "),
		r.table.KeyColumn,
		len(args),
	)

	r.uow.Track(*entity)
	r.uow.Stage(func(ctx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctx, sql, args...)
		return err
	})
	return r.mapper.ToDomain(entity)
}

// Delete implements core.Repository.Delete: stage a removal.
func (r *Repository[D, E]) Delete(ctx context.Context, domain *D) (*D, error) {
	entity, err := r.entityOf(domain)
	if err != nil {
		return nil, err
	}

	values := r.table.Values(entity)
	sql := fmt.Sprintf(
		"DELETE FROM %s WHERE %s = $1",
		r.table.Name,
		r.table.KeyColumn,
	)
	key := values[r.table.KeyColumn]

	r.uow.Track(*entity)
	r.uow.Stage(func(ctx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctx, sql, key)
		return err
	})
	return r.mapper.ToDomain(entity)
}

// Attach implements core.Repository.Attach: begin tracking without staging
// any change.
func (r *Repository[D, E]) Attach(_ context.Context, domain *D) (*D, error) {
	entity, err := r.entityOf(domain)
	if err != nil {
		return nil, err
	}
	r.uow.Track(*entity)
	return r.mapper.ToDomain(entity)
}

// AnyExists implements core.Repository.AnyExists.
func (r *Repository[D, E]) AnyExists(ctx context.Context, spec core.Specification) (bool, error) {
	where, args, err := compileSpecification(spec, r.mapper.Column)
	if err != nil {
		return false, err
	}
	sql := fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE %s)", r.table.Name, where)
	var exists bool
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		return false, ConvertPgError(err)
	}
	return exists, nil
}

// GetIfExists implements core.Repository.GetIfExists: an untracked single
// fetch that returns nil when nothing matches.
func (r *Repository[D, E]) GetIfExists(ctx context.Context, spec core.Specification) (*D, error) {
	where, args, err := compileSpecification(spec, r.mapper.Column)
	if err != nil {
		return nil, err
	}
	sql := fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s LIMIT 1",
		strings.Join(r.table.Columns, ", "),
		r.table.Name,
		where,
	)
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, ConvertPgError(err)
	}
	entity, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[E])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, ConvertPgError(err)
	}
	return r.mapper.ToDomain(&entity)
}

// entityOf converts for the staging operations, where nil input and
// conversion failure are hard errors instead of Result failures.
func (r *Repository[D, E]) entityOf(domain *D) (*E, error) {
	if domain == nil {
		return nil, fmt.Errorf("cannot stage a change: %w", core.ErrNilValue)
	}
	entity, err := r.mapper.ToEntity(domain)
	if err != nil {
		return nil, fmt.Errorf("cannot convert the record to its entity: %w", err)
	}
	if entity == nil {
		return nil, errors.New("cannot convert the record to its entity: conversion yielded nothing")
	}
	return entity, nil
}

// resolveIncludes translates requested includes through the mapper and looks
// them up among the declared relations.
func (r *Repository[D, E]) resolveIncludes(
	includes []core.Include,
) (map[string]Relation[E], error) {
	relations := make(map[string]Relation[E], len(includes))
	for _, include := range includes {
		name, err := r.mapper.Relation(include.Relation)
		if err != nil {
			return nil, err
		}
		relation, ok := r.table.relation(name)
		if !ok {
			return nil, fmt.Errorf("relation %s: %w", include.Relation, core.ErrFieldMapping)
		}
		relations[name] = relation
	}
	return relations, nil
}

func (r *Repository[D, E]) loadRelations(
	ctx context.Context,
	relations map[string]Relation[E],
	entity *E,
) error {
	for _, relation := range relations {
		if err := relation.Load(ctx, r.db, entity); err != nil {
			return fmt.Errorf("cannot load relation %s: %w", relation.Name, err)
		}
	}
	return nil
}

func (r *Repository[D, E]) storeFailure(err error) core.Result[*D] {
	return core.Failure[*D](
		core.NewOperationFailedError(ConvertPgError(err).Error()),
		http.StatusInternalServerError,
	)
}
