package sqlengine

import (
	"errors"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"  // dialect registration

	"github.com/babytracker/babytracker/eventstore"
	"github.com/babytracker/babytracker/events"
)

type sqlQueryString = string

func (es EventStore) builder() goqu.DialectWrapper {
	return goqu.Dialect(es.dialect)
}

// buildInsertQuery appends a RETURNING clause by hand, goqu's sqlite3 dialect refuses to render one.
func (es EventStore) buildInsertQuery(event eventstore.StorableEvent) (sqlQueryString, error) {
	insertStmt := es.builder().
		Insert(es.eventTableName).
		Rows(goqu.Record{
			colKind:       string(event.Kind),
			colBabyName:   event.BabyName,
			colOccurredAt: formatOccurredAt(event.OccurredAt),
			colPayload:    string(event.PayloadJSON),
		})

	sqlQuery, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(eventstore.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery + " RETURNING " + colID, nil
}

func (es EventStore) buildUpdateQuery(kind events.Kind, id uint64, event eventstore.StorableEvent) (sqlQueryString, error) {
	updateStmt := es.builder().
		Update(es.eventTableName).
		Set(goqu.Record{
			colOccurredAt: formatOccurredAt(event.OccurredAt),
			colPayload:    string(event.PayloadJSON),
		}).
		Where(goqu.Ex{colID: id, colKind: string(kind)})

	sqlQuery, _, toSQLErr := updateStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(eventstore.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

func (es EventStore) buildDeleteQuery(kind events.Kind, id uint64) (sqlQueryString, error) {
	deleteStmt := es.builder().
		Delete(es.eventTableName).
		Where(goqu.Ex{colID: id, colKind: string(kind)})

	sqlQuery, _, toSQLErr := deleteStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(eventstore.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

func (es EventStore) buildSelectQuery(filter eventstore.Filter) (sqlQueryString, error) {
	selectStmt := es.selectColumns().
		Order(goqu.I(colID).Asc())

	selectStmt = es.addWhereClause(filter, selectStmt)

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(eventstore.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

func (es EventStore) buildListFeedingsQuery(filter eventstore.Filter, limit int) (sqlQueryString, error) {
	selectStmt := es.selectColumns().
		Where(goqu.C(colKind).Eq(string(events.KindFeeding))).
		Order(goqu.I(colOccurredAt).Desc(), goqu.I(colID).Asc()).
		Limit(uint(limit))

	selectStmt = es.addWhereClause(filter, selectStmt)

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(eventstore.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

func (es EventStore) selectColumns() *goqu.SelectDataset {
	return es.builder().
		From(es.eventTableName).
		Select(colID, colKind, colBabyName, colOccurredAt, colPayload)
}

// addWhereClause restricts to the filter's baby and to the half-open window [from, until).
// Where calls on a goqu dataset are combined with AND.
func (es EventStore) addWhereClause(filter eventstore.Filter, selectStmt *goqu.SelectDataset) *goqu.SelectDataset {
	expressions := make([]goqu.Expression, 0, 3)

	if filter.BabyName() != "" {
		expressions = append(expressions, goqu.C(colBabyName).Eq(filter.BabyName()))
	}

	if filter.HasOccurredFrom() {
		expressions = append(expressions, goqu.C(colOccurredAt).Gte(formatOccurredAt(filter.OccurredFrom())))
	}

	if filter.HasOccurredUntil() {
		expressions = append(expressions, goqu.C(colOccurredAt).Lt(formatOccurredAt(filter.OccurredUntil())))
	}

	if len(expressions) == 0 {
		return selectStmt
	}

	return selectStmt.Where(goqu.And(expressions...))
}
