// Package models contains GORM persistence models that map to database tables.
// Domain entities stay free of ORM tags; each model converts to and from its
// entity with FromDomain and ToDomain.
package models

import (
	"time"

	"github.com/finops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// BaseModel provides common persistence fields for all models.
// It maps to the domain's BaseEntity.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null;index"`
	UpdatedAt time.Time `gorm:"not null"`
}

// ToDomain converts BaseModel to domain BaseEntity
func (m *BaseModel) ToDomain() shared.BaseEntity {
	return shared.BaseEntity{
		ID:        m.ID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomainBaseEntity populates BaseModel from domain BaseEntity
func (m *BaseModel) FromDomainBaseEntity(e shared.BaseEntity) {
	m.ID = e.ID
	m.CreatedAt = e.CreatedAt
	m.UpdatedAt = e.UpdatedAt
}

// All returns one zero value of every persisted model, in dependency order
func All() []any {
	return []any{
		&UserModel{},
		&JournalEntryModel{},
		&AccountPayableModel{},
		&AccountReceivableModel{},
		&BalanceSheetModel{},
		&BudgetModel{},
		&CashFlowForecastModel{},
		&CashFlowStatementModel{},
		&IncomeStatementModel{},
		&PurchaseOrderModel{},
		&ExpenseReportModel{},
		&WorkingCapitalModel{},
	}
}

// dateOnly normalises a calendar date to UTC midnight before it is stored
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dateOnlyPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := dateOnly(*t)
	return &d
}
