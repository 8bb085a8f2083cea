package sequence

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RentalDispatchService/pkg/dbmetrics"
)

// DefaultBookingSequence последовательность номеров бронирований (см. migrations)
const DefaultBookingSequence = "booking_number_seq"

var ErrNextValue = errors.New("sequence.generator: failed to get next value")

// Generator монотонный генератор номеров на основе PostgreSQL SEQUENCE.
// Номера не переиспользуются, пропуски возможны (откат транзакции не возвращает значение).
type Generator struct {
	db       dbmetrics.DBExecutor
	sequence string
}

func NewGenerator(db dbmetrics.DBExecutor, sequence string) *Generator {
	return &Generator{db: db, sequence: sequence}
}

// Next возвращает следующий номер
func (g *Generator) Next(ctx context.Context) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, g.db)

	var value int64
	if err := executor.QueryRowContext(ctx, "SELECT nextval($1::regclass)", g.sequence).Scan(&value); err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrNextValue, g.sequence, err)
	}
	return value, nil
}
