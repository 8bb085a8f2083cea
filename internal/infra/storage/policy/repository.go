package policy

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/m04kA/SMC-RentalDispatchService/internal/domain"
	"github.com/m04kA/SMC-RentalDispatchService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RentalDispatchService/pkg/psqlbuilder"
)

// Repository читает тарифы отмены компаний.
// Таблица принадлежит конфигурации компании, сервис её только читает.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория тарифов отмены
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetTiersByCompany возвращает тарифы компании по возрастанию порога.
// Пустой список не ошибка: калькулятор трактует его как "ни один тариф не подошёл".
func (r *Repository) GetTiersByCompany(ctx context.Context, companyID int64) ([]domain.CancellationTier, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("company_id", "hours_threshold", "rate_percent").
		From("cancellation_policy_tiers").
		Where(squirrel.Eq{"company_id": companyID}).
		OrderBy("hours_threshold ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetTiersByCompany - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetTiersByCompany - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	tiers := make([]domain.CancellationTier, 0)
	for rows.Next() {
		var tier domain.CancellationTier
		if err := rows.Scan(&tier.CompanyID, &tier.HoursThreshold, &tier.RatePercent); err != nil {
			return nil, fmt.Errorf("%w: GetTiersByCompany - scan tier: %v", ErrScanRow, err)
		}
		tiers = append(tiers, tier)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetTiersByCompany - rows error: %v", ErrScanRow, err)
	}

	return tiers, nil
}
