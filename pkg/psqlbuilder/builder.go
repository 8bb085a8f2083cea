package psqlbuilder

import "github.com/Masterminds/squirrel"

// builder squirrel-билдер с плейсхолдерами PostgreSQL ($1, $2, ...)
var builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

func Select(columns ...string) squirrel.SelectBuilder {
	return builder.Select(columns...)
}

func Insert(into string) squirrel.InsertBuilder {
	return builder.Insert(into)
}

func Update(table string) squirrel.UpdateBuilder {
	return builder.Update(table)
}

// Subquery возвращает билдер с плейсхолдерами "?" для вложенных запросов.
// Внешний билдер сам перенумерует плейсхолдеры при вызове ToSql.
func Subquery(columns ...string) squirrel.SelectBuilder {
	return squirrel.Select(columns...)
}
